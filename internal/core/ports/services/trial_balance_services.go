package services

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/ledgerimport"
)

// TrialBalanceSvcFacade defines operations on a client's trial balance view.
type TrialBalanceSvcFacade interface {
	// GetOrCreateCurrent returns the client's most recent trial balance,
	// creating one spanning the current calendar year when none exists.
	GetOrCreateCurrent(ctx context.Context, clientID string, userID string) (*domain.TrialBalance, error)

	// GetCurrentView assembles the full trial balance response: accounts
	// with their transactions, the client's categories, and the advisory
	// balanced flag.
	GetCurrentView(ctx context.Context, clientID string, userID string) (*dto.TrialBalanceResponse, error)

	// ImportAccounts merges parsed spreadsheet rows into the client's
	// current trial balance, skipping rows whose name already exists.
	ImportAccounts(ctx context.Context, clientID string, parsed []ledgerimport.ParsedAccount, userID string) (*dto.ImportResponse, error)
}
