// Package ordering implements the fractional sort keys used to position
// accounts within a tax category. Keys are real-valued so that inserting or
// moving one account never requires renumbering its siblings: a drop between
// two neighbors takes their midpoint, an append extends past the current
// maximum. Keys are only ever compared for relative order inside one
// category.
package ordering

// Step is the gap left between appended keys. Large gaps leave room for many
// midpoint insertions before float64 precision runs out.
const Step = 1024

// Initial is the key assigned to the first account in an empty category.
func Initial() float64 {
	return Step
}

// Append returns the key for an account added after all existing accounts in
// a category, given the current maximum key.
func Append(maxExisting float64) float64 {
	if maxExisting <= 0 {
		return Step
	}
	return maxExisting + Step
}

// AppendBatch returns the key for the i-th (0-based) account of a batch
// appended to a category whose current maximum key is maxExisting. Spreading
// the batch by full steps preserves the batch's relative order and keeps gaps
// for later manual inserts.
func AppendBatch(maxExisting float64, i int) float64 {
	if maxExisting <= 0 {
		return Step * float64(i+1)
	}
	return maxExisting + Step*float64(i+1)
}

// Between returns the key for an account dropped between two neighbors.
// Neither neighbor's key changes.
func Between(before, after float64) float64 {
	return before + (after-before)/2
}

// Before returns the key for an account dropped ahead of the current first
// account.
func Before(first float64) float64 {
	return first / 2
}

// After returns the key for an account dropped after the current last
// account.
func After(last float64) float64 {
	return last + Step
}
