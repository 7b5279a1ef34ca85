package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a journal line posts to the debit or credit
// side of an account.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Transaction is a single journal-entry line posted against an Account. By
// construction at most one of Debit/Credit is non-zero. Transactions are
// immutable once created; the adjusted balance of an account is always
// derivable from its full transaction history.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (e.g., UUID)
	AccountID     string          `json:"accountID"`     // FK -> Account.accountID (Not Null)
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	AuditFields
}
