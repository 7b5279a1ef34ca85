package domain

// Comment is a discussion entry on a client card. Only its author may
// delete it.
type Comment struct {
	CommentID  string `json:"commentID"` // Primary Key (e.g., UUID)
	ClientID   string `json:"clientID"`  // FK -> Client.clientID (Not Null)
	Content    string `json:"content"`
	AuthorID   string `json:"authorID"`
	AuthorName string `json:"authorName"`
	AuditFields
}
