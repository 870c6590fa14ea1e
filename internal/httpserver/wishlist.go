package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/wishlist"
)

type wishlistItemRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Image      string `json:"image"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
	Color      string `json:"color"`
}

func (r wishlistItemRequest) toDomain() domain.WishlistItem {
	return domain.WishlistItem{
		ProductID:  r.ProductID,
		Title:      r.Title,
		Slug:       r.Slug,
		Image:      r.Image,
		PriceCents: r.PriceCents,
		Quantity:   r.Quantity,
		Color:      r.Color,
	}
}

func listWishlistHandler(store *wishlist.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := store.List(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func addWishlistHandler(store *wishlist.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in wishlistItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		items := store.Add(c.Request.Context(), sessionID(c), in.toDomain())
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func toggleWishlistHandler(store *wishlist.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in wishlistItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		items, added := store.Toggle(c.Request.Context(), sessionID(c), in.toDomain())
		c.JSON(http.StatusOK, gin.H{"items": items, "added": added})
	}
}

func removeWishlistHandler(store *wishlist.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := store.Remove(c.Request.Context(), sessionID(c), c.Param("productId"))
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
