package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryLine is one debit or credit line of a manual journal entry.
// Each line carries its own posting date and description.
type JournalEntryLine struct {
	AccountID   string          `json:"accountId" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=debit credit"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimalgtzero"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest defines a manual adjustment posted from the
// trial balance view. Each line creates one transaction and increments the
// account's adjusted figure on the matching side.
type CreateJournalEntryRequest struct {
	Entries []JournalEntryLine `json:"entries" binding:"required,min=1,dive"`
}
