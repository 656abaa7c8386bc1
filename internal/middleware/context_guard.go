package middleware

import (
	"log/slog"
	"net/http"
)

// ContextGuard skips the handler when the request was canceled or timed out
// before it could be served.
func ContextGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.Context().Err(); err != nil {
			slog.Warn("Request context done before handling", "url", r.URL.String(), "error", err)
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}

		next.ServeHTTP(w, r)
	})
}
