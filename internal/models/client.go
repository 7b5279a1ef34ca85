package models

// Client is the clients table row.
type Client struct {
	ClientID string `db:"client_id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	TaxForm  string `db:"tax_form"`
	StatusID string `db:"status_id"`
	Assignee string `db:"assignee"`
	AuditFields
}

// Status is the statuses table row, one pipeline column.
type Status struct {
	StatusID string `db:"status_id"`
	Title    string `db:"title"`
	AuditFields
}

// Comment is the comments table row, discussion on a client card.
type Comment struct {
	CommentID  string `db:"comment_id"`
	ClientID   string `db:"client_id"`
	Content    string `db:"content"`
	AuthorID   string `db:"author_id"`
	AuthorName string `db:"author_name"`
	AuditFields
}
