package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

// lineItemRef addresses one cart line by its composite identity.
type lineItemRef struct {
	ProductID string `json:"productId" binding:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type setQuantityRequest struct {
	lineItemRef
	Quantity int `json:"quantity"`
}

func getCartHandler(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Snapshot(c.Request.Context(), sessionID(c)))
	}
}

func addCartItemHandler(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cart.AddItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		snapshot, err := store.AddItem(c.Request.Context(), sessionID(c), in)
		if err != nil {
			if errors.Is(err, domain.ErrOutOfStock) {
				c.JSON(http.StatusConflict, gin.H{"error": "this product is out of stock"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}

func setCartQuantityHandler(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in setQuantityRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		key := cart.Key(in.ProductID, in.Color, in.Size)
		snapshot, err := store.SetQuantity(c.Request.Context(), sessionID(c), key, in.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "line item not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}

func removeCartItemHandler(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := cart.Key(c.Query("productId"), c.Query("color"), c.Query("size"))
		if key.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
			return
		}
		c.JSON(http.StatusOK, store.RemoveItem(c.Request.Context(), sessionID(c), key))
	}
}

func clearCartHandler(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Clear(c.Request.Context(), sessionID(c)))
	}
}
