package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/review"
	"storefront/internal/whatsapp"
	"storefront/internal/wishlist"
)

// Deps carries the collaborators the router wires handlers to.
type Deps struct {
	Catalog  catalog.Repository
	Reviews  *review.Service
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Checkout *checkout.Service
	WhatsApp *whatsapp.Builder
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with all storefront routes.
func New(addr string, logger *log.Logger, corsOrigins []string, deps Deps) (*Server, error) {
	router := buildRouter(logger, corsOrigins, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
