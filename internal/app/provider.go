package app

import (
	"net/http"

	"github.com/ferdiebergado/goexpress"

	"github.com/ferdiebergado/rcli/internal/middleware"
	"github.com/ferdiebergado/rcli/internal/platform/metrics"
	"github.com/ferdiebergado/rcli/internal/platform/router"
)

type Providers struct {
	Router      router.Router
	Metrics     *metrics.Metrics
	Middlewares []func(http.Handler) http.Handler
}

// NewProviders wires the default router, metrics and middleware chain.
func NewProviders() *Providers {
	m := metrics.New()

	return &Providers{
		Router:  router.NewGoexpressRouter(),
		Metrics: m,
		Middlewares: []func(http.Handler) http.Handler{
			goexpress.RecoverFromPanic,
			middleware.InjectWriter,
			middleware.RequestID,
			middleware.LogRequest,
			middleware.Observe(m),
			middleware.ContextGuard,
		},
	}
}
