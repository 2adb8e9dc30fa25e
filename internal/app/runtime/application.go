// Package runtime wires core dependencies and manages the server lifecycle.
package runtime

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/leafwall/leafwall/internal/api/httpserver"
	"github.com/leafwall/leafwall/internal/api/httpserver/router"
	"github.com/leafwall/leafwall/internal/config"
	"github.com/leafwall/leafwall/internal/services/health"
	"github.com/leafwall/leafwall/internal/services/leaves"
	"github.com/leafwall/leafwall/internal/storage"
	"github.com/leafwall/leafwall/pkg/logger"
)

// Application wires core dependencies and manages the HTTP server lifecycle.
type Application struct {
	cfg        *config.Config
	log        *logger.Logger
	httpServer *httpserver.Server
	store      storage.LeafStore
	leavesSvc  *leaves.Service
	healthSvc  *health.Service
}

// NewApplication constructs an application instance with default wiring.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	store := buildStore(cfg, log)
	leavesSvc := leaves.New(store, log.WithField("component", "leaves"))
	healthSvc := health.New(store, cfg.Environment, log.WithField("component", "health"))

	handler := router.New(cfg, log, leavesSvc, healthSvc)
	httpSrv := httpserver.New(cfg.Server, log, handler)

	return &Application{
		cfg:        cfg,
		log:        log,
		httpServer: httpSrv,
		store:      store,
		leavesSvc:  leavesSvc,
		healthSvc:  healthSvc,
	}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.log.Infof("HTTP server listening on %s (storage: %s, env: %s)",
			a.httpServer.Addr(), a.store.Mode(), a.cfg.Environment)
		if err := a.httpServer.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return a.httpServer.Shutdown(shutdownCtx)
}

func buildStore(cfg *config.Config, log *logger.Logger) storage.LeafStore {
	switch cfg.Storage.Mode {
	case config.StorageModeMemory:
		log.Info("using in-memory leaf store; records are lost on restart")
		return storage.NewMemoryStore()
	default:
		return storage.NewFileStore(cfg.Storage.DataDir, log.WithField("component", "storage"))
	}
}
