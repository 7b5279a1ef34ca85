package domain

import "time"

// Integration holds the QuickBooks connection for a client: the company
// (realm) being synced and the OAuth token pair. One integration per client.
// Deleting the integration forces the user to re-authorize.
type Integration struct {
	IntegrationID string    `json:"integrationID"` // Primary Key (e.g., UUID)
	ClientID      string    `json:"clientID"`      // FK -> Client.clientID, unique
	RealmID       string    `json:"realmID"`       // QuickBooks company ID
	AccessToken   string    `json:"-"`
	RefreshToken  string    `json:"-"`
	ExpiresAt     time.Time `json:"expiresAt"` // Access token expiry
	AuditFields
}

// Expired reports whether the access token needs a refresh before use.
func (i Integration) Expired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
