package dto

import "time"

// ConnectIntegrationRequest stores a QuickBooks connection for a client. The
// OAuth authorization-code exchange happens in the external connect flow;
// this endpoint only persists its result.
type ConnectIntegrationRequest struct {
	RealmID      string    `json:"realmID" binding:"required"`
	AccessToken  string    `json:"accessToken" binding:"required"`
	RefreshToken string    `json:"refreshToken" binding:"required"`
	ExpiresAt    time.Time `json:"expiresAt" binding:"required"`
}

// IntegrationStatusResponse reports whether a client has a QuickBooks
// connection and which company it points at.
type IntegrationStatusResponse struct {
	Connected bool      `json:"connected"`
	RealmID   string    `json:"realmID,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// SyncResponse is returned by a successful sync trigger.
type SyncResponse struct {
	Message      string               `json:"message"`
	Stats        SyncStats            `json:"stats"`
	TrialBalance TrialBalanceResponse `json:"trialBalance"`
}

// SyncStats summarizes what one sync run changed.
type SyncStats struct {
	AccountsCreated     int `json:"accountsCreated"`
	TransactionsCreated int `json:"transactionsCreated"`
	LinesSkipped        int `json:"linesSkipped"`
	AccountsRecomputed  int `json:"accountsRecomputed"`
}
