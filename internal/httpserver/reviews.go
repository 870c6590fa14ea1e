package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/review"
)

func reviewsHandler(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := svc.ForProduct(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reviews": reviews,
			"summary": review.Summarize(reviews),
		})
	}
}
