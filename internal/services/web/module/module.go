// Package module defines the feature contract used by web composition.
package module

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/louisbranch/saasify/internal/ledger"
	"github.com/louisbranch/saasify/internal/payments"
	"github.com/louisbranch/saasify/internal/platform/logging"
	"github.com/louisbranch/saasify/internal/scriptproxy"
	"github.com/louisbranch/saasify/internal/services/web/platform/requestmeta"
	"go.uber.org/zap"
)

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) string

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// PaymentGateway relays requests to the payment provider.
type PaymentGateway interface {
	CreatePaymentSession(ctx context.Context, req payments.SessionRequest) (json.RawMessage, error)
	GetPaymentSession(ctx context.Context, id string) (json.RawMessage, error)
	GetPayment(ctx context.Context, id string) (json.RawMessage, error)
}

// ScriptSource returns the provider's flow script.
type ScriptSource interface {
	Fetch(ctx context.Context) (scriptproxy.Script, error)
}

// CheckoutSettings are the browser-facing values the checkout page renders.
type CheckoutSettings struct {
	PublicKey     string
	Environment   string
	Locale        string
	FlowScriptURL string
}

// Dependencies carries the shared collaborators modules are built from.
type Dependencies struct {
	Payments        PaymentGateway
	Ledger          ledger.Store
	Scripts         ScriptSource
	Channels        payments.Channels
	Checkout        CheckoutSettings
	PublicBaseURL   string
	SchemePolicy    requestmeta.SchemePolicy
	Logger          *zap.Logger
	ResolveLanguage ResolveLanguage
	Now             func() time.Time
}

// Clock returns Now or time.Now.
func (d Dependencies) Clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}

// Log returns the configured logger or a no-op logger.
func (d Dependencies) Log() *zap.Logger {
	return logging.OrNop(d.Logger)
}
