package domain

// Note is a free-text annotation on an account, written by a preparer
// while working the trial balance. Notes are removed by the core when
// their account is deleted.
type Note struct {
	NoteID     string `json:"noteID"`    // Primary Key (e.g., UUID)
	AccountID  string `json:"accountID"` // FK -> Account.accountID (Not Null)
	Content    string `json:"content"`
	AuthorID   string `json:"authorID"`
	AuthorName string `json:"authorName"`
	AuditFields
}
