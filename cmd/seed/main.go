package main

import (
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/seed"
)

func main() {
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if err := seed.Apply(cfg.DataDir); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied to %s", cfg.DataDir)
}
