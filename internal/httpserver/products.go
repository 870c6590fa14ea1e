package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/filter"
)

const relatedProductLimit = 4

func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := catalog.ListOptions{
			OrderBy: c.Query("orderBy"),
			Order:   c.Query("order"),
		}
		if take, err := strconv.Atoi(c.Query("take")); err == nil {
			opts.Take = take
		}

		products, err := repo.ListProducts(c.Request.Context(), opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
			return
		}

		spec := filterSpecFromQuery(c)
		filtered := filter.Apply(products, spec)
		min, max := filter.PriceBounds(products)

		c.JSON(http.StatusOK, gin.H{
			"products": filtered,
			"total":    len(filtered),
			"priceRange": gin.H{
				"min": min,
				"max": max,
			},
		})
	}
}

// filterSpecFromQuery maps query parameters onto a filter spec. Prices are
// minor units; sizes and colors are comma separated.
func filterSpecFromQuery(c *gin.Context) filter.Spec {
	spec := filter.Spec{
		Category: strings.TrimSpace(c.Query("category")),
		SortBy:   filter.ParseSort(c.Query("sort")),
	}
	if v, err := strconv.ParseInt(c.Query("minPrice"), 10, 64); err == nil {
		spec.PriceMin = v
	}
	if v, err := strconv.ParseInt(c.Query("maxPrice"), 10, 64); err == nil {
		spec.PriceMax = v
	}
	spec.Sizes = splitList(c.Query("sizes"))
	spec.Colors = splitList(c.Query("colors"))
	return spec
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		product, err := repo.GetProductBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
			return
		}

		related, err := repo.RelatedProducts(c.Request.Context(), slug, relatedProductLimit)
		if err != nil {
			related = nil
		}

		c.JSON(http.StatusOK, gin.H{
			"product": product,
			"related": related,
		})
	}
}

func listCategoriesHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
