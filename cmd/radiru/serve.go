package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"radiru/internal/platform/config"
	"radiru/internal/platform/logger"
	"radiru/internal/platform/metrics"
	"radiru/internal/radiru"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stream URLs over HTTP",
		Long: `Serve stream URLs over HTTP.

  GET /stations                                  locations and channels
  GET /stations/{location}/{channel}             resolved URL as JSON
  GET /stations/{location}/{channel}/master.m3u8 redirect to the stream
  GET /stations/{location}/playlist.m3u          M3U playlist of the location's channels
  GET /metrics                                   Prometheus metrics

With --ephemeral-cache the config document is kept in memory and the cache
file is neither read nor written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), a, ":"+strconv.Itoa(port))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.GetEnvInt("PORT", 8080), "listen port")
	cmd.Flags().BoolVar(&root.ephemeralCache, "ephemeral-cache", false, "keep the config document in memory only")
	return cmd
}

func newRouter(a *app) *chi.Mux {
	h := radiru.NewHandler(a.svc, a.log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logger.RequestLogger(a.log))
	r.Use(metrics.RequestMiddleware(a.metrics))
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	h.Routes(r)
	return r
}

// serve runs the HTTP server until ctx is cancelled, then drains connections.
func serve(ctx context.Context, a *app, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	a.log.Info("server starting", slog.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("shutdown error", slog.String("error", err.Error()))
		return err
	}
	a.log.Info("server stopped")
	return nil
}
