// Package checkout serves the checkout page, the email capture step and the
// success and failure pages the payment provider redirects to.
package checkout

import (
	"net/http"
	"strings"

	module "github.com/louisbranch/saasify/internal/services/web/module"
	"github.com/louisbranch/saasify/internal/services/web/platform/publichandler"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

const (
	defaultEnvironment = "sandbox"
	defaultLocale      = "en-US"
)

// Module owns the /checkout prefix.
type Module struct {
	base     publichandler.Base
	service  service
	deps     module.Dependencies
	settings module.CheckoutSettings
}

// New returns the checkout module.
func New(deps module.Dependencies) Module {
	settings := deps.Checkout
	if strings.TrimSpace(settings.Environment) == "" {
		settings.Environment = defaultEnvironment
	}
	if strings.TrimSpace(settings.Locale) == "" {
		settings.Locale = defaultLocale
	}
	return Module{
		base:     publichandler.FromDependencies(deps),
		service:  newService(deps),
		deps:     deps,
		settings: settings,
	}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "checkout"
}

// Mount wires checkout routes under the checkout prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m))
	return module.Mount{Prefix: routepath.CheckoutPrefix, Handler: mux}, nil
}
