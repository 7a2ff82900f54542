package domain

// Product list sort orders.
const (
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
	SortByNameAsc   = "name_asc"
	SortByNameDesc  = "name_desc"
	SortByRating    = "rating"
)

// Product represents an item in the demo catalog.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	UnitPrice   int64   `json:"unit_price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}

// Category represents a product grouping in the catalog.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ValidSortByValues returns the set of valid product sort orders.
func ValidSortByValues() []string {
	return []string{SortByPriceAsc, SortByPriceDesc, SortByNameAsc, SortByNameDesc, SortByRating}
}

// IsValidSortBy checks whether the given value is a valid sort order.
// The empty string means default ordering and is valid.
func IsValidSortBy(sortBy string) bool {
	if sortBy == "" {
		return true
	}
	for _, v := range ValidSortByValues() {
		if v == sortBy {
			return true
		}
	}
	return false
}
