// Package main provides a tool to seed the matching vocabulary from a JSON
// import document.
//
// Learned color mappings are preserved: only brand, category, spec, and
// attribute entries are replaced.
//
// Usage:
//
//	go run ./cmd/seed --file vocabulary.json
//	DATA_PATH=~/normkit go run ./cmd/seed --file vocabulary.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/normkit/normalize-server/internal/config"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/service"
	"github.com/normkit/normalize-server/internal/store"
)

var file = flag.String("file", "", "Vocabulary import document (default: stdin)")

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var in io.Reader = os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatalf("Failed to open import document: %v", err)
		}
		defer f.Close()
		in = f
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

	svc := service.NewVocabularyService(s, logr)

	n, err := svc.Seed(context.Background(), in)
	if err != nil {
		log.Fatalf("Failed to seed vocabulary: %v", err)
	}

	fmt.Printf("Seeded %d vocabulary entries into %s\n", n, cfg.DatabasePath())
}
