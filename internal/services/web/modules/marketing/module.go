// Package marketing serves the public marketing pages and the health check.
package marketing

import (
	"net/http"

	module "github.com/louisbranch/saasify/internal/services/web/module"
	"github.com/louisbranch/saasify/internal/services/web/platform/publichandler"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

// Module owns the root prefix and renders 404 for unknown paths.
type Module struct {
	base publichandler.Base
}

// New returns the marketing module.
func New(deps module.Dependencies) Module {
	return Module{base: publichandler.FromDependencies(deps)}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "marketing"
}

// Mount wires marketing routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.base))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
