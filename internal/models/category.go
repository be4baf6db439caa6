package models

// Category labels an expense.
type Category struct {
	ID   string
	Name string
}

// Categories is the fixed catalogue of expense categories.
var Categories = []Category{
	{ID: "food", Name: "Food & Dining"},
	{ID: "accommodation", Name: "Accommodation"},
	{ID: "transport", Name: "Transportation"},
	{ID: "entertainment", Name: "Entertainment"},
	{ID: "shopping", Name: "Shopping"},
	{ID: "other", Name: "Other"},
}

// DefaultCategoryID is used when an expense is recorded without a category.
const DefaultCategoryID = "other"

// IsValidCategory reports whether id is in the catalogue.
func IsValidCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
