package models

// CartItem is one product variant in a session's cart. VariantID identifies
// the purchasable variant; adding the same variant twice merges quantities
// rather than creating a second line.
type CartItem struct {
	VariantID string  `json:"variant_id"`
	Title     string  `json:"title"`
	Image     *string `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the full cart for one session, with totals derived from the items.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  float64    `json:"subtotal"`
}

// NewCart builds a Cart from a session's items, computing the derived totals.
func NewCart(sessionID string, items []CartItem) *Cart {
	if items == nil {
		items = []CartItem{}
	}
	c := &Cart{SessionID: sessionID, Items: items}
	for _, item := range items {
		c.ItemCount += item.Quantity
		c.Subtotal += item.Price * float64(item.Quantity)
	}
	return c
}
