package middleware

import "net/http"

// InjectWriter makes every downstream handler write through a *ResponseWriter.
func InjectWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(wrap(w, r), r)
	})
}
