// Package assets serves the embedded stylesheet and browser scripts.
package assets

import (
	"io/fs"
	"net/http"

	module "github.com/louisbranch/saasify/internal/services/web/module"
	"github.com/louisbranch/saasify/internal/services/web/platform/httpx"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
	"github.com/louisbranch/saasify/internal/services/web/static"
)

const assetCacheControl = "public, max-age=3600"

// Module owns /static.
type Module struct {
	files fs.FS
}

// New returns the static asset module backed by the embedded files.
func New(module.Dependencies) Module {
	return Module{files: static.FS}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "static"
}

// Mount serves the embedded files under the static prefix.
func (m Module) Mount() (module.Mount, error) {
	files := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(m.files)))
	mux := http.NewServeMux()
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix+"{$}", http.NotFoundHandler())
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix+"{file...}", cacheable(files))
	mux.Handle(routepath.StaticPrefix, httpx.MethodNotAllowed(http.MethodGet, http.MethodHead))
	return module.Mount{Prefix: routepath.StaticPrefix, Handler: mux}, nil
}

func cacheable(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", assetCacheControl)
		next.ServeHTTP(w, r)
	})
}
