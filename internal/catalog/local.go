package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"storefront/internal/domain"
)

// localRepo serves the catalog from JSON data files parsed once at
// construction. It stands in for a database: read-only, filter and sort in
// memory, small enough that wholesale scans are fine.
type localRepo struct {
	products   []domain.Product
	categories []domain.Category
	bySlug     map[string]int
	byID       map[string]int
	logger     *log.Logger
}

// NewLocal loads products.json and categories.json from dir.
func NewLocal(dir string, logger *log.Logger) (Repository, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &localRepo{
		bySlug: make(map[string]int),
		byID:   make(map[string]int),
		logger: logger,
	}

	if err := readJSONFile(filepath.Join(dir, "products.json"), &r.products); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if err := readJSONFile(filepath.Join(dir, "categories.json"), &r.categories); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	for i, p := range r.products {
		r.bySlug[p.Slug] = i
		r.byID[p.ID] = i
	}
	logger.Printf("catalog: loaded %d products, %d categories from %s", len(r.products), len(r.categories), dir)
	return r, nil
}

func (r *localRepo) ListProducts(_ context.Context, opts ListOptions) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if opts.ExcludeID != "" && p.ID == opts.ExcludeID {
			continue
		}
		out = append(out, p)
	}

	orderProducts(out, opts.OrderBy, opts.Order)

	if opts.Take > 0 && opts.Take < len(out) {
		out = out[:opts.Take]
	}
	return out, nil
}

func (r *localRepo) GetProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	i, ok := r.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := r.products[i]
	return &p, nil
}

func (r *localRepo) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := r.products[i]
	return &p, nil
}

// RelatedProducts picks products sharing the subject's category, a tag, or a
// title word, excluding the subject itself, in catalog order.
func (r *localRepo) RelatedProducts(_ context.Context, slug string, limit int) ([]domain.Product, error) {
	i, ok := r.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	subject := r.products[i]

	var out []domain.Product
	for _, p := range r.products {
		if p.ID == subject.ID {
			continue
		}
		if !related(subject, p) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *localRepo) ListCategories(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *localRepo) GetCategoryBySlug(_ context.Context, slug string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			cat := c
			return &cat, nil
		}
	}
	return nil, domain.ErrNotFound
}

func related(subject, candidate domain.Product) bool {
	if subject.Category != nil && candidate.Category != nil &&
		strings.Contains(strings.ToLower(candidate.Category.Title), strings.ToLower(subject.Category.Title)) {
		return true
	}
	for _, st := range subject.Tags {
		for _, ct := range candidate.Tags {
			if st == ct {
				return true
			}
		}
	}
	for _, word := range strings.Fields(strings.ToLower(subject.Title)) {
		if len(word) < 4 {
			continue
		}
		if strings.Contains(strings.ToLower(candidate.Title), word) {
			return true
		}
	}
	return false
}

func orderProducts(products []domain.Product, field, order string) {
	desc := strings.EqualFold(order, OrderDesc)
	var less func(a, b domain.Product) bool
	switch field {
	case ByUpdatedAt:
		less = func(a, b domain.Product) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case ByPrice:
		less = func(a, b domain.Product) bool { return a.PriceCents < b.PriceCents }
	case ByReviews:
		less = func(a, b domain.Product) bool { return a.ReviewCount < b.ReviewCount }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
