package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a single ledger line within a TrialBalance.
//
// Code is the external-system identifier (QuickBooks account ID, or a
// synthetic ACCnnnn code for spreadsheet imports) and serves as the dedup key
// against the source ledger. Debit/Credit hold the unadjusted figures as
// imported; AdjustedDebit/AdjustedCredit accumulate journal-entry activity on
// top of that baseline. Order is a fractional sort key, compared only
// relatively within a tax category; its absolute magnitude carries no
// meaning.
type Account struct {
	AccountID      string          `json:"accountID"`      // Primary Key (e.g., UUID)
	TrialBalanceID string          `json:"trialBalanceID"` // FK -> TrialBalance.trialBalanceID (Not Null)
	TaxCategoryID  string          `json:"taxCategoryID"`  // FK -> TaxCategory.taxCategoryID (Not Null)
	Code           string          `json:"code"`           // External ledger code, unique per trial balance
	Name           string          `json:"name"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	AdjustedDebit  decimal.Decimal `json:"adjustedDebit"`
	AdjustedCredit decimal.Decimal `json:"adjustedCredit"`
	Order          float64         `json:"order"` // Fractional sort key within the category
	AuditFields
}
