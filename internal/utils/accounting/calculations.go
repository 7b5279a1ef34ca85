package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// balanceTolerance absorbs rounding noise in the balanced check. A difference
// below a cent is treated as balanced, not as a real imbalance.
var balanceTolerance = decimal.NewFromFloat(0.01)

// IsDebitNormal reports whether an external ledger classification carries its
// balance on the debit side.
func IsDebitNormal(classification string) bool {
	return classification == "Asset" || classification == "Expense"
}

// IsCreditNormal reports whether an external ledger classification carries
// its balance on the credit side.
func IsCreditNormal(classification string) bool {
	return classification == "Liability" ||
		classification == "Equity" ||
		classification == "Revenue"
}

// SplitBalance assigns the absolute value of an external balance to the
// debit or credit column according to the classification's polarity. A
// classification satisfying neither predicate yields zero on both sides;
// that is a deliberate lenient default for unknown labels, not an error.
func SplitBalance(classification string, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	abs := balance.Abs()
	switch {
	case IsDebitNormal(classification):
		return abs, decimal.Zero
	case IsCreditNormal(classification):
		return decimal.Zero, abs
	default:
		return decimal.Zero, decimal.Zero
	}
}

// RecomputeAdjusted derives an account's adjusted figures from its unadjusted
// baseline plus the full transaction log. Always a full recomputation, never
// an increment, so repeated syncs cannot double-count.
func RecomputeAdjusted(account domain.Account, txns []domain.Transaction) (adjustedDebit, adjustedCredit decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, txn := range txns {
		totalDebit = totalDebit.Add(txn.Debit)
		totalCredit = totalCredit.Add(txn.Credit)
	}
	return account.Debit.Add(totalDebit), account.Credit.Add(totalCredit)
}

// IsBalanced sums unadjusted plus adjusted figures across both columns and
// reports whether the totals agree within tolerance. Matches the
// presentation layer's "Total" row, which shows unadjusted and adjusted
// columns side by side. Advisory only: an unbalanced trial balance is
// surfaced as a warning and never blocks an operation.
func IsBalanced(accounts []domain.Account) bool {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, a := range accounts {
		totalDebit = totalDebit.Add(a.Debit).Add(a.AdjustedDebit)
		totalCredit = totalCredit.Add(a.Credit).Add(a.AdjustedCredit)
	}
	return totalDebit.Sub(totalCredit).Abs().LessThan(balanceTolerance)
}
