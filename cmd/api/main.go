package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/httpserver"
	"storefront/internal/review"
	"storefront/internal/snapshot"
	"storefront/internal/whatsapp"
	"storefront/internal/wishlist"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	catalogRepo, err := catalog.NewLocal(cfg.DataDir, logger)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	reviewSvc, err := review.NewService(cfg.DataDir, logger)
	if err != nil {
		logger.Fatalf("load reviews: %v", err)
	}

	snapStore, err := buildSnapshotStore(cfg, logger)
	if err != nil {
		logger.Fatalf("init snapshot store: %v", err)
	}

	cartStore := cart.NewStore(snapStore, logger)
	wishlistStore := wishlist.NewStore(snapStore, logger)
	checkoutSvc := checkout.New(cartStore, cfg.CheckoutDelay, logger)
	whatsappBuilder := whatsapp.NewBuilder(cfg.WhatsAppNumber, cfg.SiteOrigin)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, cfg.CORSOrigins, httpserver.Deps{
		Catalog:  catalogRepo,
		Reviews:  reviewSvc,
		Cart:     cartStore,
		Wishlist: wishlistStore,
		Checkout: checkoutSvc,
		WhatsApp: whatsappBuilder,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func buildSnapshotStore(cfg *config.Config, logger *log.Logger) (snapshot.Store, error) {
	switch cfg.SnapshotBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		logger.Printf("snapshots: redis backend at %s", cfg.RedisAddr)
		return snapshot.NewRedisStore(client, cfg.SnapshotTTL), nil
	case "file":
		logger.Printf("snapshots: file backend at %s", cfg.SnapshotDir)
		return snapshot.NewFileStore(cfg.SnapshotDir)
	default:
		logger.Printf("snapshots: in-memory backend, no durability")
		return snapshot.NewMemoryStore(), nil
	}
}
