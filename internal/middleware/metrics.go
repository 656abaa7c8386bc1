package middleware

import (
	"net/http"
	"time"

	"github.com/ferdiebergado/rcli/internal/platform/metrics"
)

// Observe records every request in m.
func Observe(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			writer := wrap(w, r)

			m.RequestStarted()
			defer func() {
				m.RequestFinished(r.Method, writer.Status(), time.Since(start))
			}()

			next.ServeHTTP(writer, r)
		})
	}
}
