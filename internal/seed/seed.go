package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"storefront/internal/domain"
)

// Apply writes demo catalog data files into dir for manual testing. Existing
// files are overwritten, so running it twice is safe.
func Apply(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	now := time.Now().UTC()
	discounted := int64(129900)

	products := []domain.Product{
		{
			ID:               "prod-001",
			Title:            "Havit HV-G69 USB Gamepad",
			Slug:             "havit-hv-g69-usb-gamepad",
			ShortDescription: "Ergonomic wired gamepad with dual vibration",
			PriceCents:       5900,
			Currency:         "USD",
			Quantity:         12,
			Category:         &domain.CategoryRef{Title: "Electronics", Slug: "electronics"},
			Variants: []domain.Variant{
				{Color: "Black", Size: "", Image: "/images/products/gamepad-black.png", IsDefault: true},
				{Color: "Red", Size: "", Image: "/images/products/gamepad-red.png"},
			},
			ReviewCount: 15,
			Tags:        []string{"gaming", "accessories"},
			SKU:         "SKU-GAMEPAD-G69",
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:               "prod-002",
			Title:            "Apple iMac M1 24-inch",
			Slug:             "apple-imac-m1-24-inch",
			ShortDescription: "All-in-one desktop with 4.5K Retina display",
			PriceCents:       149900,
			DiscountedCents:  &discounted,
			Currency:         "USD",
			Quantity:         3,
			Category:         &domain.CategoryRef{Title: "Electronics", Slug: "electronics"},
			Variants: []domain.Variant{
				{Color: "Blue", Size: "", Image: "/images/products/imac-blue.png", IsDefault: true},
				{Color: "Silver", Size: "", Image: "/images/products/imac-silver.png"},
			},
			ReviewCount: 42,
			Tags:        []string{"apple", "desktop"},
			SKU:         "SKU-IMAC-M1-24",
			UpdatedAt:   now.Add(-48 * time.Hour),
		},
		{
			ID:               "prod-003",
			Title:            "Classic Cotton T-Shirt",
			Slug:             "classic-cotton-t-shirt",
			ShortDescription: "Soft combed cotton, regular fit",
			PriceCents:       1999,
			Currency:         "USD",
			Quantity:         50,
			Category:         &domain.CategoryRef{Title: "Fashion", Slug: "fashion"},
			Variants: []domain.Variant{
				{Color: "White", Size: "M", Image: "/images/products/tshirt-white.png", IsDefault: true},
				{Color: "White", Size: "L", Image: "/images/products/tshirt-white.png"},
				{Color: "Navy", Size: "M", Image: "/images/products/tshirt-navy.png"},
			},
			ReviewCount: 8,
			Tags:        []string{"clothing", "basics"},
			SKU:         "SKU-TSHIRT-CLASSIC",
			UpdatedAt:   now.Add(-2 * time.Hour),
		},
		{
			ID:               "prod-004",
			Title:            "Ceramic Coffee Mug",
			Slug:             "ceramic-coffee-mug",
			ShortDescription: "350ml stoneware mug, dishwasher safe",
			PriceCents:       1299,
			Currency:         "USD",
			Quantity:         0,
			Category:         &domain.CategoryRef{Title: "Home & Kitchen", Slug: "home-kitchen"},
			Variants: []domain.Variant{
				{Color: "Green", Size: "", Image: "/images/products/mug-green.png", IsDefault: true},
			},
			ReviewCount: 3,
			Tags:        []string{"kitchen"},
			SKU:         "SKU-MUG-CERAMIC",
			UpdatedAt:   now.Add(-72 * time.Hour),
		},
	}

	categories := []domain.Category{
		{ID: "cat-001", Title: "Electronics", Slug: "electronics", Image: "/images/categories/electronics.png", ProductCount: 2},
		{ID: "cat-002", Title: "Fashion", Slug: "fashion", Image: "/images/categories/fashion.png", ProductCount: 1},
		{ID: "cat-003", Title: "Home & Kitchen", Slug: "home-kitchen", Image: "/images/categories/home.png", ProductCount: 1},
	}

	reviews := []domain.Review{
		{ID: "rev-001", ProductSlug: "havit-hv-g69-usb-gamepad", UserName: "Amina", Rating: 5, Comment: "Great value for the price.", IsApproved: true, CreatedAt: now.Add(-200 * time.Hour)},
		{ID: "rev-002", ProductSlug: "havit-hv-g69-usb-gamepad", UserName: "Brian", Rating: 4, Comment: "Solid build, slightly stiff triggers.", IsApproved: true, CreatedAt: now.Add(-150 * time.Hour)},
		{ID: "rev-003", ProductSlug: "havit-hv-g69-usb-gamepad", UserName: "Spam Bot", Rating: 1, Comment: "buy followers at ...", IsApproved: false, CreatedAt: now.Add(-100 * time.Hour)},
		{ID: "rev-004", ProductSlug: "apple-imac-m1-24-inch", UserName: "Cynthia", Rating: 5, Comment: "The display alone is worth it.", IsApproved: true, CreatedAt: now.Add(-90 * time.Hour)},
	}

	files := map[string]any{
		"products.json":   products,
		"categories.json": categories,
		"reviews.json":    reviews,
	}
	for name, v := range files {
		if err := writeJSON(filepath.Join(dir, name), v); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
