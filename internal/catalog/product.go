package catalog

// Product is a catalog entry. Price is nil for items that are listed but not
// for sale; such items can be previewed but never added to a cart.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image"`
}

// Sellable reports whether the product has a price and may enter a cart.
func (p Product) Sellable() bool {
	return p.Price != nil
}

// PriceValue returns the price, or 0 for priceless products.
func (p Product) PriceValue() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}
