// Package id generates the prefixed identifiers this service stamps on
// consolidation runs and retrained model snapshots.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// size is the length of the random part. These IDs tag log lines and model
// artifacts, not external resources, so 12 URL-safe characters are plenty.
const size = 12

// NewRunID returns an identifier for one consolidation run,
// e.g. "run-x3K9bQ_7ZpWm".
func NewRunID() (string, error) {
	return Generate("run")
}

// NewModelVersion returns the version string for a retrained model snapshot,
// e.g. "model-F4hT2sLq01vN". The version travels with the artifact and shows
// up in health and reload responses.
func NewModelVersion() (string, error) {
	return Generate("model")
}

// Generate creates a prefix-nanoid identifier.
// Returns an error if the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New(size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}
