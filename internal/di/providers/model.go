package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/normkit/normalize-server/internal/config"
	"github.com/normkit/normalize-server/internal/errors"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/model"
)

// ModelHolderHandle wraps the active model holder.
type ModelHolderHandle struct {
	*model.Holder
}

// ProvideModelHolder provides the model holder, pre-loaded from the published
// artifact when one exists. A missing artifact is not fatal: the server starts
// with identity predictions until the first retrain publishes one.
func ProvideModelHolder(i do.Injector) (*ModelHolderHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	holder := model.NewHolder()

	m, err := model.Load(cfg.Model.ArtifactPath)
	switch {
	case err == nil:
		holder.Store(m)
		log.Info("Model loaded from artifact",
			"path", cfg.Model.ArtifactPath,
			"version", m.Version(),
			"entries", m.Size(),
		)
	case errors.Is(err, errors.ErrNotFound):
		log.Warn("No model artifact found, starting without a model", "path", cfg.Model.ArtifactPath)
	default:
		log.WithError(err).Warn("Failed to load model artifact, starting without a model",
			"path", cfg.Model.ArtifactPath)
	}

	return &ModelHolderHandle{Holder: holder}, nil
}

// ModelWatcherHandle wraps the artifact watcher with its cancel function.
type ModelWatcherHandle struct {
	watcher *model.Watcher
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ModelWatcherHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

// ProvideModelWatcher provides the artifact hot-reload watcher.
// Disabled via config it returns an inert handle.
func ProvideModelWatcher(i do.Injector) (*ModelWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	holderHandle := do.MustInvoke[*ModelHolderHandle](i)

	if !cfg.Model.WatchArtifact {
		log.Info("Model artifact watching disabled by configuration")
		return &ModelWatcherHandle{}, nil
	}

	w, err := model.NewWatcher(cfg.Model.ArtifactPath, holderHandle.Holder, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("Model watcher stopped")
		}
	}()

	log.Info("Watching model artifact for changes", "path", cfg.Model.ArtifactPath)

	return &ModelWatcherHandle{watcher: w, cancel: cancel}, nil
}
