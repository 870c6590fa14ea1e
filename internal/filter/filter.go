package filter

import (
	"sort"
	"strings"

	"storefront/internal/domain"
)

// Sort selects the ordering of the filtered result.
type Sort string

const (
	SortDefault   Sort = "default"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
)

// ParseSort maps a query value onto a Sort, defaulting to SortDefault for
// anything unrecognized.
func ParseSort(v string) Sort {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(SortPriceAsc):
		return SortPriceAsc
	case string(SortPriceDesc):
		return SortPriceDesc
	default:
		return SortDefault
	}
}

// Spec describes the desired view over the catalog. The zero value filters
// nothing. PriceMax <= 0 means no upper bound; empty size/color sets mean no
// constraint.
type Spec struct {
	Category string
	PriceMin int64
	PriceMax int64
	Sizes    []string
	Colors   []string
	SortBy   Sort
}

// Apply produces the filtered, ordered subset of products. The pipeline runs
// in a fixed order: category, price range, sizes, colors, then sort. The
// input slice is never mutated; the result is always a fresh slice,
// recomputed wholesale on every call.
func Apply(products []domain.Product, spec Spec) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if spec.Category != "" && categorySlug(p) != spec.Category {
			continue
		}
		if p.PriceCents < spec.PriceMin {
			continue
		}
		if spec.PriceMax > 0 && p.PriceCents > spec.PriceMax {
			continue
		}
		if len(spec.Sizes) > 0 && !hasSize(p, spec.Sizes) {
			continue
		}
		if len(spec.Colors) > 0 && !hasColor(p, spec.Colors) {
			continue
		}
		out = append(out, p)
	}

	switch spec.SortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents < out[j].PriceCents })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents > out[j].PriceCents })
	}
	return out
}

// PriceBounds returns the lowest and highest list price in the catalog, for
// seeding a price-range control. Both are zero for an empty catalog.
func PriceBounds(products []domain.Product) (min, max int64) {
	for i, p := range products {
		if i == 0 || p.PriceCents < min {
			min = p.PriceCents
		}
		if p.PriceCents > max {
			max = p.PriceCents
		}
	}
	return min, max
}

func categorySlug(p domain.Product) string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Slug
}

func hasSize(p domain.Product, sizes []string) bool {
	for _, v := range p.Variants {
		for _, s := range sizes {
			if v.Size == s {
				return true
			}
		}
	}
	return false
}

func hasColor(p domain.Product, colors []string) bool {
	for _, v := range p.Variants {
		for _, c := range colors {
			if strings.EqualFold(v.Color, c) {
				return true
			}
		}
	}
	return false
}
