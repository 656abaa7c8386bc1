package app

import (
	"net/http"
	"strings"

	"github.com/ferdiebergado/rcli/internal/fileserver"
)

func (a *App) setupRoutes() {
	if prefix := a.opts.MountPrefix; prefix != "" {
		browse := http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.FileServerFS(a.dir.FS()))
		a.router.Handle(http.MethodGet+" "+prefix, browse)
	}

	a.router.Get("/", fileserver.NewHandler(a.dir).ServeHTTP)
}
