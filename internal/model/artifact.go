package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/normkit/normalize-server/internal/errors"
)

// artifactFormat is bumped when the on-disk layout changes.
const artifactFormat = 1

// artifact is the on-disk snapshot layout. Plain JSON with sorted keys, so
// the same lookup table always serializes to the same bytes.
type artifact struct {
	Format  int               `json:"format"`
	Version string            `json:"version"`
	BuiltAt time.Time         `json:"built_at"`
	Entries map[string]string `json:"entries"`
}

// Save writes the model to path atomically: the artifact is written to a temp
// file in the same directory and renamed into place, so a concurrent Load (or
// the file watcher) never observes a half-written artifact.
func Save(m *Model, path string) error {
	data, err := json.MarshalIndent(artifact{
		Format:  artifactFormat,
		Version: m.version,
		BuiltAt: m.builtAt,
		Entries: m.lookup,
	}, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to encode model artifact")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Storage("failed to create artifact directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Storage("failed to create temp artifact", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Storage("failed to write model artifact", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Storage("failed to close model artifact", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Storage("failed to publish model artifact", err)
	}
	return nil
}

// Load reads a model snapshot from path. A missing file is a NOT_FOUND error
// so callers can distinguish "not trained yet" from a corrupt artifact.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("model artifact %s does not exist", path).WithCause(err)
		}
		return nil, errors.Storage("failed to read model artifact", err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to decode model artifact")
	}
	if a.Format != artifactFormat {
		return nil, errors.Internal(fmt.Sprintf("unsupported model artifact format %d", a.Format))
	}

	return New(a.Entries, a.Version, a.BuiltAt), nil
}
