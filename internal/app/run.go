package app

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Run starts the HTTP API and blocks until ctx is cancelled, then shuts
// the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("🔌 connectgrid serving.", "address", a.config.Listen, "plugins", len(a.registry.Plugins()))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.store.Close()
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.store.Close()
	if err != nil {
		a.logger.Error("Server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Server shut down gracefully.")
	return nil
}
