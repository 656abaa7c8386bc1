package fileserver

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	contentTypeHTML = "text/html"
	contentTypeText = "text/plain; charset=utf-8"
)

var listing = template.Must(template.New("listing").Parse(
	`<html><body><ul>{{range .}}<li><a href="{{.Href}}">{{.Name}}</a></li>{{end}}</ul></body></html>`,
))

// Handler answers every request by resolving its URL path against a Dir.
type Handler struct {
	dir *Dir
}

var _ http.Handler = (*Handler)(nil)

func NewHandler(dir *Dir) *Handler {
	return &Handler{dir: dir}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Resolving path", "root", h.dir.Path(), "path", r.URL.Path)

	res, err := h.dir.Resolve(r.URL.Path)
	if err != nil {
		slog.Warn("Error reading path", "path", r.URL.Path, "error", err)
		respondText(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch res.Kind {
	case KindMissing:
		respondText(w, http.StatusNotFound, fmt.Sprintf("File %s not found", res.Path))
	case KindDirectory:
		h.serveDirectory(w, res)
	case KindFile:
		slog.Debug("Read file", "path", res.Path, "bytes", len(res.Content))
		// Content-Type is left to net/http sniffing.
		w.Header().Set("Content-Length", strconv.Itoa(len(res.Content)))
		_, _ = w.Write(res.Content)
	}
}

func (h *Handler) serveDirectory(w http.ResponseWriter, res *Result) {
	var buf bytes.Buffer
	if err := listing.Execute(&buf, res.Entries); err != nil {
		slog.Error("Error rendering listing", "path", res.Path, "error", err)
		respondText(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func respondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
