package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account under
// a trial balance. Either TaxCategoryID or CategoryName must be provided;
// a name is resolved (created if absent) through the category service, and
// when both are empty the account lands in "Uncategorized".
type CreateAccountRequest struct {
	TrialBalanceID string          `json:"trialBalanceID" binding:"required"`
	Code           string          `json:"code"` // Optional external code; generated when empty
	Name           string          `json:"name" binding:"required"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	TaxCategoryID  string          `json:"taxCategoryID"`
	CategoryName   string          `json:"categoryName"`
}

// ReorderPosition describes where an account was dropped within its (target)
// category, as the fractional sort keys of its new neighbors. Both nil means
// the category was empty (direct drop on the category header).
type ReorderPosition struct {
	BeforeOrder *float64 `json:"beforeOrder"` // Key of the account above, nil at the top
	AfterOrder  *float64 `json:"afterOrder"`  // Key of the account below, nil at the bottom
}

// UpdateAccountRequest defines the data allowed for updating an account:
// category reassignment, manual reordering and adjusted-figure edits.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name           *string          `json:"name"`
	TaxCategoryID  *string          `json:"taxCategoryID"`
	Position       *ReorderPosition `json:"position"`
	AdjustedDebit  *decimal.Decimal `json:"adjustedDebit"`
	AdjustedCredit *decimal.Decimal `json:"adjustedCredit"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string                `json:"accountID"`
	TrialBalanceID string                `json:"trialBalanceID"`
	TaxCategoryID  string                `json:"taxCategoryID"`
	Code           string                `json:"code"`
	Name           string                `json:"name"`
	Debit          decimal.Decimal       `json:"debit"`
	Credit         decimal.Decimal       `json:"credit"`
	AdjustedDebit  decimal.Decimal       `json:"adjustedDebit"`
	AdjustedCredit decimal.Decimal       `json:"adjustedCredit"`
	Order          float64               `json:"order"`
	Transactions   []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		TrialBalanceID: a.TrialBalanceID,
		TaxCategoryID:  a.TaxCategoryID,
		Code:           a.Code,
		Name:           a.Name,
		Debit:          a.Debit,
		Credit:         a.Credit,
		AdjustedDebit:  a.AdjustedDebit,
		AdjustedCredit: a.AdjustedCredit,
		Order:          a.Order,
		CreatedAt:      a.CreatedAt,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		res[i] = ToAccountResponse(&a)
	}
	return res
}

// TransactionResponse defines the data returned for a transaction line.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Date:          t.Date,
		Description:   t.Description,
		Debit:         t.Debit,
		Credit:        t.Credit,
	}
}

// ToListTransactionResponse converts transactions to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}
