// Package scriptproxy serves the payment provider's flow script from the
// site's own origin.
package scriptproxy

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	scripts "github.com/louisbranch/saasify/internal/scriptproxy"
	module "github.com/louisbranch/saasify/internal/services/web/module"
	"github.com/louisbranch/saasify/internal/services/web/platform/httpx"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

const (
	// ScriptSourceHeader reports where the served script came from.
	ScriptSourceHeader = "X-Script-Source"

	cacheableScript = "public, max-age=86400, s-maxage=86400, stale-while-revalidate=604800"
	loadFailed      = "Failed to load Checkout.com script"
)

// Module owns /api/proxy.
type Module struct {
	source module.ScriptSource
	logger *zap.Logger
}

// New returns the script proxy module.
func New(deps module.Dependencies) Module {
	return Module{source: deps.Scripts, logger: deps.Log()}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "scriptproxy"
}

// Mount wires the proxy route.
func (m Module) Mount() (module.Mount, error) {
	if m.source == nil {
		return module.Mount{}, errors.New("scriptproxy: script source is required")
	}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.CheckoutScript, m.handleCheckoutScript)
	mux.Handle(routepath.CheckoutScript, httpx.MethodNotAllowed(http.MethodGet))
	mux.Handle(routepath.ProxyPrefix, http.NotFoundHandler())
	return module.Mount{Prefix: routepath.ProxyPrefix, Handler: mux}, nil
}

func (m Module) handleCheckoutScript(w http.ResponseWriter, r *http.Request) {
	script, err := m.source.Fetch(r.Context())
	if err != nil {
		m.logger.Error("load checkout script", zap.Error(err))
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, loadFailed)
		return
	}
	header := w.Header()
	header.Set("Content-Type", "application/javascript; charset=utf-8")
	header.Set(ScriptSourceHeader, string(script.Source))
	if script.Source == scripts.SourceFallback {
		header.Set("Cache-Control", "no-store")
	} else {
		header.Set("Cache-Control", cacheableScript)
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(script.Body)
}
