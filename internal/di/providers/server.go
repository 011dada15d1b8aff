package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/normkit/normalize-server/internal/api"
	"github.com/normkit/normalize-server/internal/config"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	holderHandle := do.MustInvoke[*ModelHolderHandle](i)

	services := &api.Services{
		Ingest:     do.MustInvoke[*service.IngestService](i),
		Review:     do.MustInvoke[*service.ReviewService](i),
		Trainer:    do.MustInvoke[*service.TrainerService](i),
		Vocabulary: do.MustInvoke[*service.VocabularyService](i),
		Models:     holderHandle.Holder,
	}

	handler := api.NewServer(cfg, services, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
