package repositories

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account within a trial balance by its
	// external ledger code. Used as the dedup key during sync.
	FindAccountByCode(ctx context.Context, trialBalanceID string, code string) (*domain.Account, error)

	// ListAccountsByTrialBalance retrieves all accounts of a trial balance,
	// ordered by category and fractional sort key.
	ListAccountsByTrialBalance(ctx context.Context, trialBalanceID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts persists a batch of new accounts in one round trip, so an
	// interrupted sync does not leave a half-written category.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account row. Callers are responsible for
	// cascading attachments and transactions first.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
