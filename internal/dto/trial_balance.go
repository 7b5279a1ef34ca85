package dto

import (
	"time"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// TrialBalanceResponse is the full trial balance view: the period, every
// account with its transactions, the client's categories, and the advisory
// balanced flag. Balanced is a warning signal only and never blocks anything.
type TrialBalanceResponse struct {
	TrialBalanceID string                `json:"trialBalanceID"`
	ClientID       string                `json:"clientID"`
	StartDate      time.Time             `json:"startDate"`
	EndDate        time.Time             `json:"endDate"`
	Balanced       bool                  `json:"balanced"`
	Accounts       []AccountResponse     `json:"accounts"`
	Categories     []TaxCategoryResponse `json:"categories"`
}

// ImportResponse reports the outcome of a spreadsheet upload.
type ImportResponse struct {
	Created  int               `json:"created"`
	Skipped  int               `json:"skipped"` // Rows whose name already existed
	Accounts []AccountResponse `json:"accounts"`
}

// NewTrialBalanceResponse assembles the composite view.
func NewTrialBalanceResponse(tb *domain.TrialBalance, accounts []AccountResponse, categories []domain.TaxCategory, balanced bool) TrialBalanceResponse {
	return TrialBalanceResponse{
		TrialBalanceID: tb.TrialBalanceID,
		ClientID:       tb.ClientID,
		StartDate:      tb.StartDate,
		EndDate:        tb.EndDate,
		Balanced:       balanced,
		Accounts:       accounts,
		Categories:     ToListTaxCategoryResponse(categories),
	}
}
