package services

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/quickbooks"
)

// QuickBooksGateway is the outbound port to the external accounting platform.
// The concrete client lives in internal/quickbooks; tests substitute a mock.
type QuickBooksGateway interface {
	RefreshTokens(ctx context.Context, refreshToken string) (quickbooks.Tokens, error)
	GetAccounts(ctx context.Context, accessToken, realmID string) ([]quickbooks.Account, error)
	GetAccountByID(ctx context.Context, accessToken, realmID, accountID string) (*quickbooks.Account, error)
	GetTransactions(ctx context.Context, accessToken, realmID string) ([]quickbooks.JournalEntry, error)
}

// SyncSvcFacade triggers and reports QuickBooks synchronization.
type SyncSvcFacade interface {
	// SyncClient pulls the remote chart of accounts and journal entries,
	// merges new accounts into the current trial balance, replays journal
	// lines as transactions, and recomputes adjusted balances. Returns
	// apperrors.ErrReauthorizationRequired when the stored refresh token is
	// no longer valid (the integration is deleted as a side effect).
	SyncClient(ctx context.Context, clientID string, userID string) (*dto.SyncStats, error)
}

// IntegrationSvcFacade manages a client's stored QuickBooks connection.
type IntegrationSvcFacade interface {
	// ConnectIntegration stores the token set produced by the external
	// OAuth connect flow.
	ConnectIntegration(ctx context.Context, clientID string, req dto.ConnectIntegrationRequest, userID string) (*domain.Integration, error)

	// GetIntegrationStatus reports whether the client is connected.
	GetIntegrationStatus(ctx context.Context, clientID string) (*dto.IntegrationStatusResponse, error)

	// DisconnectIntegration removes the stored connection.
	DisconnectIntegration(ctx context.Context, clientID string) error
}
