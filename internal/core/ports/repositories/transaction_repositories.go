package repositories

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// ListTransactionsByAccount retrieves the full transaction log of an
	// account, oldest first. Adjusted balances are always recomputed from
	// this log.
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
// Transactions are append-only; there is no update.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction line.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransactionsByAccount removes all transactions of an account as
	// part of account deletion.
	DeleteTransactionsByAccount(ctx context.Context, accountID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
