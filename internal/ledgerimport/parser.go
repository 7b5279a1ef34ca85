// Package ledgerimport extracts candidate account records from an uploaded
// trial balance spreadsheet. Accountant exports vary wildly in layout, so the
// parser locates columns by keyword instead of position and tolerates noise
// rows. It only produces partial records; resolving tax categories, deduping
// against existing accounts and persisting are the caller's job.
package ledgerimport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// headerRowIndex is where exported trial balances carry their column headers:
// the rows above hold the company name, report title and period.
const headerRowIndex = 4

// ErrMalformedFile indicates the sheet is too short to contain the expected
// header row. The user must fix the file and re-upload; there is no retry.
var ErrMalformedFile = errors.New("could not find header row in ledger file")

// ErrMissingColumn indicates a required column could not be located in the
// header row.
var ErrMissingColumn = errors.New("missing required column")

// nameKeywords are matched case-insensitively against header cells to locate
// the account name column.
var nameKeywords = []string{"account", "name", "title", "description"}

// ParsedAccount is one candidate account extracted from the sheet, in file
// order. Adjusted figures always start at zero; they only pick up the
// baseline once a recomputation touches the account.
type ParsedAccount struct {
	Code   string // Synthetic ACCnnnn code, unique within the batch
	Name   string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Parse scans a 2-D cell grid (first worksheet, rows of cells) for account
// rows below the header. Rows with fewer than two populated cells or an empty
// resolved name are discarded.
func Parse(rows [][]string) ([]ParsedAccount, error) {
	if len(rows) <= headerRowIndex {
		return nil, ErrMalformedFile
	}
	header := rows[headerRowIndex]

	nameCol := findColumn(header, nameKeywords...)
	if nameCol == -1 {
		return nil, fmt.Errorf("%w: name", ErrMissingColumn)
	}
	debitCol := findColumn(header, "debit")
	creditCol := findColumn(header, "credit")

	start := headerRowIndex + 1
	accounts := make([]ParsedAccount, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if populatedCells(row) < 2 {
			continue
		}

		name := strings.TrimSpace(cellAt(row, nameCol))
		if name == "" {
			continue
		}

		accounts = append(accounts, ParsedAccount{
			// Codes count row offsets below the header, so they stay stable
			// for a given file even when noise rows are skipped.
			Code:   fmt.Sprintf("ACC%04d", i-start+1),
			Name:   name,
			Debit:  parseAmount(cellAt(row, debitCol)),
			Credit: parseAmount(cellAt(row, creditCol)),
		})
	}

	return accounts, nil
}

// findColumn returns the index of the first header cell containing any of the
// keywords (case-insensitive substring match), or -1.
func findColumn(header []string, keywords ...string) int {
	for i, cell := range header {
		lower := strings.ToLower(cell)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	return -1
}

func populatedCells(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// parseAmount cleans a spreadsheet money cell and returns its magnitude.
// Currency symbols, thousands separators and accountant's parentheses are
// stripped; parentheses mark a negative figure, but the sign is discarded
// after parsing because source trial balances never carry negative values in
// the debit/credit columns. Missing or unparseable cells default to zero.
func parseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.NewReplacer("$", "", ",", "", "(", "", ")", "").Replace(s)
	s = strings.TrimSpace(s)
	if negative {
		s = "-" + s
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return value.Abs()
}
