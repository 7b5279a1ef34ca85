package domain

import "time"

// TrialBalance is one accounting period's ledger snapshot for a client.
// A client may accumulate several over time; the "current" one is the most
// recently created. One is created lazily (calendar-year period) on first
// access to a client's trial balance view.
type TrialBalance struct {
	TrialBalanceID string    `json:"trialBalanceID"` // Primary Key (e.g., UUID)
	ClientID       string    `json:"clientID"`       // FK -> Client.clientID (Not Null)
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	AuditFields
}
