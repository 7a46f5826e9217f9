// Package httpd implements the HTTP server command for triggering and
// inspecting briefing runs.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/gobrief/cmd/common"
	"github.com/jonesrussell/gobrief/internal/api"
)

const (
	errorChannelBufferSize = 1
	defaultShutdownTimeout = 30 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server exposing run history and a manual trigger
endpoint. The server runs continuously until interrupted with Ctrl+C.`,
		RunE: runHTTPD,
	}
}

// runHTTPD executes the httpd command.
func runHTTPD(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := common.NewRunner(ctx, deps)
	if err != nil {
		return err
	}
	defer result.Cleanup()

	handler := api.NewRunsHandler(result.Store, result.Runner, deps.Logger)
	router := api.SetupRouter(deps.Logger, handler)

	serverCfg := deps.Config.Server
	server := &http.Server{
		Addr:              serverCfg.Address,
		Handler:           router,
		ReadTimeout:       serverCfg.ReadTimeout,
		WriteTimeout:      serverCfg.WriteTimeout,
		IdleTimeout:       serverCfg.IdleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		deps.Logger.Info("HTTP server listening", "address", serverCfg.Address)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	select {
	case serveErr := <-errChan:
		return fmt.Errorf("server error: %w", serveErr)
	case <-ctx.Done():
		deps.Logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		return fmt.Errorf("failed to shut down server: %w", shutdownErr)
	}

	deps.Logger.Info("HTTP server stopped successfully")
	return nil
}
