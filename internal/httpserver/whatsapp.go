package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/whatsapp"
)

type whatsappOrderRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Quantity int    `json:"quantity"`
	Color    string `json:"color"`
	Size     string `json:"size"`
}

func whatsappOrderHandler(repo catalog.Repository, builder *whatsapp.Builder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in whatsappOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		product, err := repo.GetProductBySlug(c.Request.Context(), in.Slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
			return
		}

		link := builder.OrderLink(whatsapp.OrderInput{
			ProductTitle: product.Title,
			PriceCents:   product.EffectivePriceCents(),
			Currency:     product.Currency,
			ProductSlug:  product.Slug,
			Quantity:     in.Quantity,
			Color:        in.Color,
			Size:         in.Size,
			SKU:          product.SKU,
		})
		c.JSON(http.StatusOK, gin.H{"url": link})
	}
}
