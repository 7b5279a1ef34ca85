package services

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	"github.com/taxdesk/taxdesk_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts of a trial balance, ordered by
	// category and fractional sort key.
	ListAccounts(ctx context.Context, trialBalanceID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account, resolving its tax category and
	// assigning a fractional sort key at the end of that category.
	CreateAccount(ctx context.Context, clientID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount applies category moves, manual reorders and adjusted
	// figure edits.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account, cascading its attachments and
	// transactions first. Referential cleanup is the core's job, not the
	// database's.
	DeleteAccount(ctx context.Context, accountID string) error
}

// JournalSvcFacade posts manual journal entries from the trial balance view.
type JournalSvcFacade interface {
	// CreateJournalEntry creates one transaction per entry line and
	// increments the affected accounts' adjusted figures directly. This is a
	// deliberate separate path from sync's full recompute.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) ([]domain.Transaction, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
