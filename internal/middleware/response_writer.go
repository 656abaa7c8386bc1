package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
)

const defaultStatus = http.StatusOK

// ResponseWriter is an http.ResponseWriter wrapper that records the status code
// and the number of bytes sent, and stops writing once the request context is done.
//
//nolint:containedctx //This ResponseWriter wrapper requires a context to gracefully handle canceled requests.
type ResponseWriter struct {
	http.ResponseWriter
	ctx context.Context

	status        int
	headerWritten bool
	mu            sync.Mutex
	bytesSent     atomic.Int64
}

func (w *ResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.headerWritten {
		return
	}

	w.ResponseWriter.WriteHeader(statusCode)
	w.status = statusCode
	w.headerWritten = true
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if err := w.ctx.Err(); err != nil {
		slog.Warn("context error occurred", "error", err)
		return 0, err
	}

	w.mu.Lock()
	w.headerWritten = true
	w.mu.Unlock()

	n, err := w.ResponseWriter.Write(b)
	w.bytesSent.Add(int64(n))
	return n, err
}

func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *ResponseWriter) BytesWritten() int {
	return int(w.bytesSent.Load())
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func NewResponseWriter(ctx context.Context, w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		ctx:            ctx,
		status:         defaultStatus,
	}
}

// wrap returns w as a *ResponseWriter, wrapping it when needed.
func wrap(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return NewResponseWriter(r.Context(), w)
}
