package domain

// LineItem is one purchasable line in a cart: a quantity of a single product
// variant. AvailableQuantity is the stock ceiling captured when the line was
// first added; quantity edits clamp against it.
type LineItem struct {
	ProductID         string `json:"productId"`
	Name              string `json:"name"`
	UnitPriceCents    int64  `json:"unitPriceCents"`
	Currency          string `json:"currency"`
	Image             string `json:"image,omitempty"`
	Slug              string `json:"slug"`
	AvailableQuantity int    `json:"availableQuantity"`
	Color             string `json:"color,omitempty"`
	Size              string `json:"size,omitempty"`
	Quantity          int    `json:"quantity"`
}

// Cart is a read-only view of one session's cart. Lines keep insertion order,
// which is the display order. Totals are derived on every snapshot, never
// stored.
type Cart struct {
	Lines           []LineItem `json:"lineItems"`
	TotalItemCount  int        `json:"totalItemCount"`
	TotalPriceCents int64      `json:"totalPriceCents"`
}

// TotalCents sums unit price times quantity over all lines.
func TotalCents(lines []LineItem) int64 {
	var total int64
	for _, l := range lines {
		total += l.UnitPriceCents * int64(l.Quantity)
	}
	return total
}

// ItemCount sums quantities over all lines.
func ItemCount(lines []LineItem) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}
