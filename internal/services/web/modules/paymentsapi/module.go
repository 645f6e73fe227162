// Package paymentsapi relays payment session and payment requests between
// the browser and the payment provider, attaching the secret key server-side.
package paymentsapi

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/saasify/internal/services/web/module"
	"github.com/louisbranch/saasify/internal/services/web/platform/httpx"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

var errGatewayRequired = errors.New("paymentsapi: payment gateway is required")

// SessionsModule serves /api/payment-sessions.
type SessionsModule struct {
	deps module.Dependencies
}

// NewSessions returns the payment sessions relay.
func NewSessions(deps module.Dependencies) SessionsModule {
	return SessionsModule{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (SessionsModule) ID() string {
	return "payment-sessions"
}

// Mount wires the session relay routes.
func (m SessionsModule) Mount() (module.Mount, error) {
	if m.deps.Payments == nil {
		return module.Mount{}, errGatewayRequired
	}
	h := newHandlers(m.deps)
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodPost+" "+routepath.PaymentSessions, h.handleCreateSession)
	mux.HandleFunc(http.MethodPost+" "+routepath.PaymentSessionsPrefix+"{$}", h.handleCreateSession)
	mux.HandleFunc(http.MethodGet+" "+routepath.PaymentSessions, h.handleLatestSession)
	mux.HandleFunc(http.MethodGet+" "+routepath.PaymentSessionsPrefix+"{$}", h.handleMissingSessionID)
	mux.HandleFunc(http.MethodGet+" "+routepath.PaymentSessionPattern, h.handleGetSession)
	mux.Handle(routepath.PaymentSessions, httpx.MethodNotAllowed(http.MethodGet, http.MethodPost))
	mux.Handle(routepath.PaymentSessionsPrefix+"{$}", httpx.MethodNotAllowed(http.MethodGet, http.MethodPost))
	mux.Handle(routepath.PaymentSessionPattern, httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(routepath.PaymentSessionsPrefix+"{rest...}", h.handleNotFound)
	return module.Mount{Prefix: routepath.PaymentSessionsPrefix, Handler: mux}, nil
}

// PaymentsModule serves /api/payments.
type PaymentsModule struct {
	deps module.Dependencies
}

// NewPayments returns the payment details relay.
func NewPayments(deps module.Dependencies) PaymentsModule {
	return PaymentsModule{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (PaymentsModule) ID() string {
	return "payments"
}

// Mount wires the payment relay routes.
func (m PaymentsModule) Mount() (module.Mount, error) {
	if m.deps.Payments == nil {
		return module.Mount{}, errGatewayRequired
	}
	h := newHandlers(m.deps)
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Payments, h.handleMissingPaymentID)
	mux.HandleFunc(http.MethodGet+" "+routepath.PaymentsPrefix+"{$}", h.handleMissingPaymentID)
	mux.HandleFunc(http.MethodGet+" "+routepath.PaymentPattern, h.handleGetPayment)
	mux.Handle(routepath.Payments, httpx.MethodNotAllowed(http.MethodGet))
	mux.Handle(routepath.PaymentsPrefix+"{$}", httpx.MethodNotAllowed(http.MethodGet))
	mux.Handle(routepath.PaymentPattern, httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(routepath.PaymentsPrefix+"{rest...}", h.handleNotFound)
	return module.Mount{Prefix: routepath.PaymentsPrefix, Handler: mux}, nil
}
