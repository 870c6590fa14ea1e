package domain

import "time"

type Product struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	ShortDescription string       `json:"shortDescription,omitempty"`
	Description      string       `json:"description,omitempty"`
	PriceCents       int64        `json:"priceCents"`
	DiscountedCents  *int64       `json:"discountedCents,omitempty"`
	Currency         string       `json:"currency"`
	Quantity         int          `json:"quantity"`
	Category         *CategoryRef `json:"category,omitempty"`
	Variants         []Variant    `json:"productVariants,omitempty"`
	ReviewCount      int          `json:"reviews"`
	Tags             []string     `json:"tags,omitempty"`
	SKU              string       `json:"sku,omitempty"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

type Variant struct {
	Color     string `json:"color"`
	Size      string `json:"size"`
	Image     string `json:"image"`
	IsDefault bool   `json:"isDefault"`
}

type CategoryRef struct {
	Title string `json:"title"`
	Slug  string `json:"slug,omitempty"`
}

// EffectivePriceCents is the price a buyer pays: the discounted price when one
// is set, the list price otherwise.
func (p Product) EffectivePriceCents() int64 {
	if p.DiscountedCents != nil {
		return *p.DiscountedCents
	}
	return p.PriceCents
}

// DefaultVariant returns the variant flagged as default, falling back to the
// first variant when none is flagged.
func (p Product) DefaultVariant() *Variant {
	for i := range p.Variants {
		if p.Variants[i].IsDefault {
			return &p.Variants[i]
		}
	}
	if len(p.Variants) > 0 {
		return &p.Variants[0]
	}
	return nil
}
