package domain

// TaxCategory is a client-scoped grouping bucket for accounts (e.g. "Assets",
// "Uncategorized"). Names are unique per client under case-insensitive
// comparison; a category with referencing accounts cannot be deleted.
type TaxCategory struct {
	TaxCategoryID string `json:"taxCategoryID"` // Primary Key (e.g., UUID)
	ClientID      string `json:"clientID"`      // FK -> Client.clientID (Not Null)
	Name          string `json:"name"`          // Display casing preserved
	AuditFields
}

// UncategorizedName is the bucket used when an imported account carries no
// classification label.
const UncategorizedName = "Uncategorized"
