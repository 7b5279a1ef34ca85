package quickbooks

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tokens is the OAuth token pair returned by a refresh.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Account is one row of the QuickBooks chart of accounts, as returned by the
// query API. Field names follow the QuickBooks wire format.
type Account struct {
	ID             string          `json:"Id"`
	Name           string          `json:"Name"`
	AccountType    string          `json:"AccountType"`
	AccountSubType string          `json:"AccountSubType"`
	Classification string          `json:"Classification"` // Asset, Liability, Equity, Revenue, Expense
	CurrentBalance decimal.Decimal `json:"CurrentBalance"`
	Active         bool            `json:"Active"`
}

// JournalEntry is a QuickBooks journal document with its posting lines.
type JournalEntry struct {
	ID        string        `json:"Id"`
	DocNumber string        `json:"DocNumber"`
	TxnDate   Date          `json:"TxnDate"`
	Lines     []JournalLine `json:"Line"`
}

// JournalLine is one debit or credit line of a journal entry.
type JournalLine struct {
	Description string          `json:"Description"`
	Amount      decimal.Decimal `json:"Amount"`
	Detail      LineDetail      `json:"JournalEntryLineDetail"`
}

// LineDetail carries the posting side and the referenced account.
type LineDetail struct {
	PostingType string     `json:"PostingType"` // "Debit" or "Credit"
	AccountRef  AccountRef `json:"AccountRef"`
}

// AccountRef points a journal line at a QuickBooks account by its ID.
type AccountRef struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// Date unmarshals QuickBooks' bare yyyy-mm-dd transaction dates.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
