package catalog

import (
	"context"

	"storefront/internal/domain"
)

// Order directions for ListOptions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sortable fields for ListOptions.
const (
	ByUpdatedAt = "updatedAt"
	ByPrice     = "price"
	ByReviews   = "reviews"
)

// ListOptions narrows and orders a product listing. The zero value lists the
// whole catalog in file order.
type ListOptions struct {
	OrderBy   string
	Order     string
	Take      int
	ExcludeID string
}

// Repository is the read-only catalog collaborator. Implementations never
// mutate catalog data and always hand out copies.
type Repository interface {
	ListProducts(ctx context.Context, opts ListOptions) ([]domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	RelatedProducts(ctx context.Context, slug string, limit int) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
}
