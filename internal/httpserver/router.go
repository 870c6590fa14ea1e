package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, corsOrigins []string, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(corsOrigins), metricsMiddleware())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", sessionMiddleware())
	{
		api.GET("/products", listProductsHandler(deps.Catalog))
		api.GET("/products/:slug", getProductHandler(deps.Catalog))
		api.GET("/categories", listCategoriesHandler(deps.Catalog))
		api.GET("/reviews/:slug", reviewsHandler(deps.Reviews))

		api.GET("/cart", getCartHandler(deps.Cart))
		api.POST("/cart/items", addCartItemHandler(deps.Cart))
		api.PATCH("/cart/items", setCartQuantityHandler(deps.Cart))
		api.DELETE("/cart/items", removeCartItemHandler(deps.Cart))
		api.DELETE("/cart", clearCartHandler(deps.Cart))

		api.GET("/wishlist", listWishlistHandler(deps.Wishlist))
		api.POST("/wishlist", addWishlistHandler(deps.Wishlist))
		api.POST("/wishlist/toggle", toggleWishlistHandler(deps.Wishlist))
		api.DELETE("/wishlist/:productId", removeWishlistHandler(deps.Wishlist))

		api.POST("/checkout", checkoutHandler(deps.Checkout))
		api.POST("/whatsapp-order", whatsappOrderHandler(deps.Catalog, deps.WhatsApp))
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, sessionHeader)
	cfg.ExposeHeaders = append(cfg.ExposeHeaders, sessionHeader)
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	return cors.New(cfg)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
