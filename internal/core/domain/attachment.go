package domain

// Attachment is a document linked to an account. The file bytes live in
// external object storage; only the reference is kept here. Attachment rows
// are removed by the core when their account is deleted.
type Attachment struct {
	AttachmentID string `json:"attachmentID"` // Primary Key (e.g., UUID)
	AccountID    string `json:"accountID"`    // FK -> Account.accountID (Not Null)
	FileName     string `json:"fileName"`
	StorageKey   string `json:"storageKey"` // Object-storage key, opaque to the core
	AuditFields
}
