package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// OrderInput is everything the pre-filled order message needs. Quantity
// defaults to 1; Color, Size and SKU lines appear only when set.
type OrderInput struct {
	ProductTitle string
	PriceCents   int64
	Currency     string
	ProductSlug  string
	Quantity     int
	Color        string
	Size         string
	SKU          string
}

// Builder produces wa.me deep links for manual order placement. Pure string
// templating; the business phone number and site origin come from config.
type Builder struct {
	phoneNumber string
	siteOrigin  string
}

func NewBuilder(phoneNumber, siteOrigin string) *Builder {
	return &Builder{
		phoneNumber: phoneNumber,
		siteOrigin:  strings.TrimRight(siteOrigin, "/"),
	}
}

// OrderLink builds the deep link with the order request message pre-filled.
func (b *Builder) OrderLink(in OrderInput) string {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	var msg strings.Builder
	msg.WriteString("*New Order Request*\n\n")
	fmt.Fprintf(&msg, "*Product:* %s\n", in.ProductTitle)
	fmt.Fprintf(&msg, "*Price:* %s\n", formatPrice(in.PriceCents, in.Currency))
	fmt.Fprintf(&msg, "*Quantity:* %d\n", qty)
	if in.Color != "" {
		fmt.Fprintf(&msg, "*Color:* %s\n", in.Color)
	}
	if in.Size != "" {
		fmt.Fprintf(&msg, "*Size:* %s\n", in.Size)
	}
	if in.SKU != "" {
		fmt.Fprintf(&msg, "*SKU:* %s\n", in.SKU)
	}
	fmt.Fprintf(&msg, "\n*Total:* %s\n", formatPrice(in.PriceCents*int64(qty), in.Currency))
	fmt.Fprintf(&msg, "\n*Product Link:* %s/products/%s\n", b.siteOrigin, in.ProductSlug)
	msg.WriteString("\nI would like to place this order.")

	return "https://wa.me/" + b.phoneNumber + "?text=" + url.QueryEscape(msg.String())
}

func formatPrice(cents int64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %d.%02d", strings.ToUpper(currency), cents/100, cents%100)
}
