package modules

import (
	"github.com/louisbranch/saasify/internal/services/web/modules/assets"
	"github.com/louisbranch/saasify/internal/services/web/modules/checkout"
	"github.com/louisbranch/saasify/internal/services/web/modules/marketing"
	"github.com/louisbranch/saasify/internal/services/web/modules/paymentsapi"
	"github.com/louisbranch/saasify/internal/services/web/modules/scriptproxy"
)

// DefaultPageModules returns the HTML surfaces and their assets. Marketing
// owns the root prefix and therefore the 404 page.
func DefaultPageModules(deps Dependencies) []Module {
	return []Module{
		marketing.New(deps),
		checkout.New(deps),
		assets.New(deps),
	}
}

// DefaultAPIModules returns the JSON and script relay routes mounted under
// /api/.
func DefaultAPIModules(deps Dependencies) []Module {
	return []Module{
		paymentsapi.NewSessions(deps),
		paymentsapi.NewPayments(deps),
		scriptproxy.New(deps),
	}
}
