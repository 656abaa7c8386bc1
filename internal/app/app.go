package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ferdiebergado/rcli/internal/config"
	"github.com/ferdiebergado/rcli/internal/fileserver"
	"github.com/ferdiebergado/rcli/internal/platform/metrics"
	"github.com/ferdiebergado/rcli/internal/platform/router"
)

type App struct {
	server          *http.Server
	metricsServer   *http.Server
	opts            *config.ServerOptions
	dir             *fileserver.Dir
	router          router.Router
	metrics         *metrics.Metrics
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration

	mu    sync.Mutex
	addr  net.Addr
	ready chan struct{}
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}
}

// Handler returns the fully wired HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Ready is closed once the listener is bound.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Addr returns the bound listener address, or "" before Ready is closed.
func (a *App) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.addr == nil {
		return ""
	}
	return a.addr.String()
}

func (a *App) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}

	a.mu.Lock()
	a.addr = ln.Addr()
	a.mu.Unlock()
	close(a.ready)

	serverErr := make(chan error, 2)
	go func() {
		slog.Info("Serving directory...", "root", a.dir.Path(), "address", ln.Addr().String())
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	if a.metricsServer != nil {
		go func() {
			slog.Info("Metrics listening...", "address", a.metricsServer.Addr)
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- fmt.Errorf("metrics listen and serve: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
		}
	}

	return errors.Join(errs...)
}

func New(opts *config.ServerOptions, dir *fileserver.Dir, providers *Providers) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:    net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		Handler: providers.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  opts.ReadTimeout.Duration,
		WriteTimeout: opts.WriteTimeout.Duration,
		IdleTimeout:  opts.IdleTimeout.Duration,
	}

	a := &App{
		server:          server,
		opts:            opts,
		dir:             dir,
		router:          providers.Router,
		metrics:         providers.Metrics,
		middlewares:     providers.Middlewares,
		stop:            stop,
		shutdownTimeout: opts.ShutdownTimeout.Duration,
		ready:           make(chan struct{}),
	}

	if opts.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", providers.Metrics.Handler())
		a.metricsServer = &http.Server{
			Addr:              opts.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: opts.ReadTimeout.Duration,
		}
	}

	a.registerMiddlewares()
	a.setupRoutes()

	return a
}
