package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/checkout"
)

func checkoutHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		order, err := svc.PlaceOrder(c.Request.Context(), sessionID(c), in)
		if err != nil {
			var verr *checkout.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":  "please correct the highlighted fields",
					"fields": verr.Fields,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
