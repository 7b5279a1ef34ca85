package domain

// Client represents a taxpayer entity serviced by the practice.
type Client struct {
	ClientID string `json:"clientID"` // Primary Key (e.g., UUID)
	Name     string `json:"name"`
	Email    string `json:"email"`    // Nullable contact email
	Phone    string `json:"phone"`    // Nullable contact phone
	TaxForm  string `json:"taxForm"`  // Assigned tax form (e.g., "1120S")
	StatusID string `json:"statusID"` // FK -> Status.statusID, pipeline position
	Assignee string `json:"assignee"` // Nullable preparer name
	AuditFields
}
