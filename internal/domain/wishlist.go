package domain

// WishlistItem references a product without variant granularity. Quantity is
// the stock hint at save time, informational only.
type WishlistItem struct {
	ProductID  string `json:"productId"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Image      string `json:"image,omitempty"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
	Color      string `json:"color,omitempty"`
}
