package domain

// CartLine represents one product's entry in the cart. Name, UnitPrice and
// ImageURL are snapshots captured when the product is first added; later
// catalog changes do not touch them.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Subtotal returns the line's price contribution (in cents).
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// TotalQuantity returns the total number of units across all lines.
func TotalQuantity(lines []CartLine) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// TotalPrice returns the combined price of all lines (in cents). It is always
// recomputed from the lines rather than stored anywhere.
func TotalPrice(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// CartView is the cart state as exposed over the API.
type CartView struct {
	Lines      []CartLine `json:"lines"`
	TotalCount int        `json:"total_count"`
	TotalPrice int64      `json:"total_price"`
}

// NewCartView derives a view from a lines snapshot.
func NewCartView(lines []CartLine) CartView {
	if lines == nil {
		lines = []CartLine{}
	}
	return CartView{
		Lines:      lines,
		TotalCount: TotalQuantity(lines),
		TotalPrice: TotalPrice(lines),
	}
}
