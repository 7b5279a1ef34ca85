package domain

// Status is one column of the client pipeline board. The set of statuses is
// mutable at runtime; clients reference a status by ID.
type Status struct {
	StatusID string `json:"statusID"` // Primary Key (e.g., UUID)
	Title    string `json:"title"`
	AuditFields
}
