package repositories

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// TrialBalanceReader defines read operations for trial balances
type TrialBalanceReader interface {
	// FindTrialBalanceByID retrieves a trial balance by its unique identifier.
	FindTrialBalanceByID(ctx context.Context, trialBalanceID string) (*domain.TrialBalance, error)

	// FindLatestTrialBalance retrieves the most recently created trial
	// balance for a client, the "current" period.
	FindLatestTrialBalance(ctx context.Context, clientID string) (*domain.TrialBalance, error)
}

// TrialBalanceWriter defines write operations for trial balances
type TrialBalanceWriter interface {
	// SaveTrialBalance persists a new trial balance.
	SaveTrialBalance(ctx context.Context, trialBalance domain.TrialBalance) error
}

// TrialBalanceRepositoryFacade combines all trial-balance repository interfaces
type TrialBalanceRepositoryFacade interface {
	TrialBalanceReader
	TrialBalanceWriter
}
