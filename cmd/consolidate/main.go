// Package main provides a tool to fold pending reviewer feedback into the
// confirmed vocabulary and retrain the lookup model.
//
// Intended for cron or manual runs against the same data directory as the
// server; a running server picks up the published artifact via its watcher.
//
// Usage:
//
//	go run ./cmd/consolidate
//	DATA_PATH=~/normkit go run ./cmd/consolidate
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/normkit/normalize-server/internal/config"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/model"
	"github.com/normkit/normalize-server/internal/service"
	"github.com/normkit/normalize-server/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	s, err := store.Open(cfg.DatabasePath(), logr)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	trainer := service.NewTrainerService(s, model.NewHolder(), logr, cfg.Model.ArtifactPath)

	result, m, err := trainer.ConsolidateAndRetrain(context.Background())
	if err != nil {
		log.Fatalf("Consolidation failed: %v", err)
	}

	fmt.Printf("Run %s: %d feedback records consolidated\n", result.RunID, result.Applied)
	fmt.Printf("Model %s published to %s with %d entries\n", m.Version(), cfg.Model.ArtifactPath, m.Size())
}
