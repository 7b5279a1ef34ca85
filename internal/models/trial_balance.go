package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalance is the trial_balances table row.
type TrialBalance struct {
	TrialBalanceID string    `db:"trial_balance_id"`
	ClientID       string    `db:"client_id"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	AuditFields
}

// TaxCategory is the tax_categories table row. Uniqueness of (client_id,
// lower(name)) is enforced by an index; lookups normalize case before
// matching.
type TaxCategory struct {
	TaxCategoryID string `db:"tax_category_id"`
	ClientID      string `db:"client_id"`
	Name          string `db:"name"`
	AuditFields
}

// Account is the accounts table row.
type Account struct {
	AccountID      string          `db:"account_id"`
	TrialBalanceID string          `db:"trial_balance_id"`
	TaxCategoryID  string          `db:"tax_category_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	AdjustedDebit  decimal.Decimal `db:"adjusted_debit"`
	AdjustedCredit decimal.Decimal `db:"adjusted_credit"`
	Order          float64         `db:"sort_order"`
	AuditFields
}

// Transaction is the transactions table row. Rows are append-only.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Date          time.Time       `db:"date"`
	Description   string          `db:"description"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	AuditFields
}

// Attachment is the attachments table row.
type Attachment struct {
	AttachmentID string `db:"attachment_id"`
	AccountID    string `db:"account_id"`
	FileName     string `db:"file_name"`
	StorageKey   string `db:"storage_key"`
	AuditFields
}

// Note is the account_notes table row.
type Note struct {
	NoteID     string `db:"note_id"`
	AccountID  string `db:"account_id"`
	Content    string `db:"content"`
	AuthorID   string `db:"author_id"`
	AuthorName string `db:"author_name"`
	AuditFields
}

// Integration is the quickbooks_integrations table row.
type Integration struct {
	IntegrationID string    `db:"integration_id"`
	ClientID      string    `db:"client_id"`
	RealmID       string    `db:"realm_id"`
	AccessToken   string    `db:"access_token"`
	RefreshToken  string    `db:"refresh_token"`
	ExpiresAt     time.Time `db:"expires_at"`
	AuditFields
}
