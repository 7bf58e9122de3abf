package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindseye-dev/portfolio/internal/logger"
	"github.com/mindseye-dev/portfolio/internal/router"
	"github.com/mindseye-dev/portfolio/internal/setup"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withDependencies(ctx, func(deps *setup.Dependencies) error {
		httpCfg := cfg.Public.Http
		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", httpCfg.Port),
			Handler:      router.New(deps.Handler, httpCfg.AllowedOrigins, deps.Media.Root()),
			ReadTimeout:  httpCfg.ReadTimeout,
			WriteTimeout: httpCfg.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Log.Info("server started", "addr", srv.Addr, "assets", deps.Media.Root())
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
