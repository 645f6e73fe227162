package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/saasify/internal/catalog"
	checkoutflow "github.com/louisbranch/saasify/internal/checkout"
	"github.com/louisbranch/saasify/internal/ledger"
	"github.com/louisbranch/saasify/internal/payments"
	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
	module "github.com/louisbranch/saasify/internal/services/web/module"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	sessionCreateFailedKey     = "checkout.error.session_create"
	sessionCreateFailedMessage = "Failed to create payment session"
	noSessionKey               = "success.error.no_session"
	noSessionMessage           = "No session ID provided"
	noDataKey                  = "success.error.no_data"
	noDataMessage              = "No payment or session data available"
	paymentFetchKey            = "success.error.payment"
	paymentFetchMessage        = "Failed to fetch payment details"
)

// Provider redirect query parameters.
const (
	paramPaymentSessionID = "cko-payment-session-id"
	paramSessionID        = "cko-session-id"
	paramFallbackSession  = "session_id"
	paramPaymentID        = "cko-payment-id"
)

type service struct {
	gateway  module.PaymentGateway
	ledger   ledger.Store
	channels payments.Channels
	now      func() time.Time
	logger   *zap.Logger
}

func newService(deps module.Dependencies) service {
	return service{
		gateway:  deps.Payments,
		ledger:   deps.Ledger,
		channels: deps.Channels,
		now:      deps.Clock(),
		logger:   deps.Log(),
	}
}

// startPayment advances a flow that has captured an email through session
// creation and records the session for the visitor. A provider failure moves
// the flow to failed and is returned.
func (s service) startPayment(ctx context.Context, flow *checkoutflow.Flow, visitorID string, origin string) error {
	if err := flow.ScriptLoaded(); err != nil {
		return err
	}
	if s.gateway == nil {
		_ = flow.Fail(sessionCreateFailedMessage)
		return apperrors.EK(apperrors.KindUnavailable, sessionCreateFailedKey, "payment gateway is not configured")
	}

	plan := flow.Plan()
	req, err := payments.BuildSessionRequest(sessionInput(plan, flow.Email()), origin, s.now(), s.channels)
	if err != nil {
		_ = flow.Fail(sessionCreateFailedMessage)
		return err
	}
	raw, err := s.gateway.CreatePaymentSession(ctx, req)
	if err != nil {
		s.logProviderError("create payment session", err)
		_ = flow.Fail(sessionCreateFailedMessage)
		return apperrors.Error{Kind: apperrors.KindUpstream, Key: sessionCreateFailedKey, Message: sessionCreateFailedMessage, Cause: err}
	}
	if err := flow.SessionCreated(payments.SessionID(raw), raw); err != nil {
		_ = flow.Fail(sessionCreateFailedMessage)
		return err
	}
	s.record(ctx, ledger.Record{
		SessionID:   flow.SessionID(),
		VisitorID:   visitorID,
		PlanID:      plan.ID,
		Email:       flow.Email(),
		AmountMinor: plan.AmountMinor(),
		Currency:    plan.Currency,
	})
	return nil
}

func sessionInput(plan catalog.Plan, email string) payments.SessionInput {
	amount := plan.AmountMinor()
	items, _ := payments.MarshalItems([]payments.Item{{
		Name:        plan.Name + " Plan",
		Quantity:    1,
		UnitPrice:   amount,
		TotalAmount: amount,
		Reference:   plan.ItemReference(),
	}})
	return payments.SessionInput{
		Amount:   amount,
		Currency: plan.Currency,
		Items:    items,
		Customer: &payments.Customer{Email: email},
		Plan:     plan.ID,
	}
}

// record stores the session; ledger failures only cost the success-page
// fallback, so they are logged rather than surfaced.
func (s service) record(ctx context.Context, record ledger.Record) {
	if s.ledger == nil || strings.TrimSpace(record.VisitorID) == "" {
		return
	}
	if err := s.ledger.Put(ctx, record); err != nil {
		s.logger.Warn("record payment session", zap.String("session_id", record.SessionID), zap.Error(err))
	}
}

func (s service) logProviderError(op string, err error) {
	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	var upstream *payments.UpstreamError
	if errors.As(err, &upstream) {
		fields = append(fields, zap.Int("upstream_status", upstream.StatusCode))
	}
	s.logger.Error("payment provider request failed", fields...)
}

// redirectParams are the identifiers the provider appends to the success URL.
type redirectParams struct {
	PaymentSessionID  string            `json:"paymentSessionId,omitempty"`
	GeneralSessionID  string            `json:"generalSessionId,omitempty"`
	FallbackSessionID string            `json:"fallbackSessionId,omitempty"`
	PaymentID         string            `json:"paymentId,omitempty"`
	AllParams         map[string]string `json:"allParams"`
}

func parseRedirectParams(query url.Values) redirectParams {
	all := make(map[string]string, len(query))
	for key := range query {
		all[key] = query.Get(key)
	}
	return redirectParams{
		PaymentSessionID:  strings.TrimSpace(query.Get(paramPaymentSessionID)),
		GeneralSessionID:  strings.TrimSpace(query.Get(paramSessionID)),
		FallbackSessionID: strings.TrimSpace(query.Get(paramFallbackSession)),
		PaymentID:         strings.TrimSpace(query.Get(paramPaymentID)),
		AllParams:         all,
	}
}

// sessionID prefers the payment-session id over the generic session_id.
func (p redirectParams) sessionID() string {
	if p.PaymentSessionID != "" {
		return p.PaymentSessionID
	}
	return p.FallbackSessionID
}

// receipt is everything the success page shows.
type receipt struct {
	Params    redirectParams
	SessionID string
	PaymentID string
	Session   json.RawMessage
	Payment   json.RawMessage
	Record    *ledger.Record
	LoadedAt  time.Time
}

// loadReceipt resolves the session and payment behind a provider redirect,
// falling back to the visitor's latest ledger record when the redirect
// carries no identifiers.
func (s service) loadReceipt(ctx context.Context, params redirectParams, visitorID string) (receipt, error) {
	out := receipt{Params: params, SessionID: params.sessionID(), PaymentID: params.PaymentID, LoadedAt: s.now()}

	if out.SessionID == "" && out.PaymentID == "" {
		record, ok := s.latest(ctx, visitorID)
		if !ok {
			return out, apperrors.EK(apperrors.KindInvalidInput, noSessionKey, noSessionMessage)
		}
		out.Record = &record
		out.SessionID = record.SessionID
	} else if out.SessionID != "" {
		if record, ok := s.lookup(ctx, out.SessionID, visitorID); ok {
			out.Record = &record
		}
	}

	if err := s.fetchDetails(ctx, &out); err != nil {
		return out, err
	}
	if out.Session == nil && out.Payment == nil && out.Record == nil {
		return out, apperrors.EK(apperrors.KindNotFound, noDataKey, noDataMessage)
	}
	return out, nil
}

func (s service) fetchDetails(ctx context.Context, out *receipt) error {
	if s.gateway == nil {
		return nil
	}
	switch {
	case out.SessionID != "" && out.PaymentID != "":
		group, groupCtx := errgroup.WithContext(ctx)
		var session json.RawMessage
		group.Go(func() error {
			session = s.fetchSession(groupCtx, out.SessionID)
			return nil
		})
		var payment json.RawMessage
		group.Go(func() error {
			var err error
			payment, err = s.fetchPayment(groupCtx, out.PaymentID)
			return err
		})
		err := group.Wait()
		out.Session = session
		if err != nil {
			return err
		}
		out.Payment = payment
	case out.SessionID != "":
		out.Session = s.fetchSession(ctx, out.SessionID)
		if linked := payments.Summarize(out.Session).PaymentID; linked != "" {
			payment, err := s.fetchPayment(ctx, linked)
			if err != nil {
				return err
			}
			out.PaymentID = linked
			out.Payment = payment
		}
	case out.PaymentID != "":
		payment, err := s.fetchPayment(ctx, out.PaymentID)
		if err != nil {
			return err
		}
		out.Payment = payment
	}
	return nil
}

// fetchSession is best effort; the page can still render from the payment
// or the ledger record.
func (s service) fetchSession(ctx context.Context, id string) json.RawMessage {
	raw, err := s.gateway.GetPaymentSession(ctx, id)
	if err != nil {
		s.logger.Warn("fetch payment session", zap.String("session_id", id), zap.Error(err))
		return nil
	}
	return raw
}

func (s service) fetchPayment(ctx context.Context, id string) (json.RawMessage, error) {
	raw, err := s.gateway.GetPayment(ctx, id)
	if err != nil {
		s.logProviderError("get payment", err)
		return nil, apperrors.Error{Kind: apperrors.KindUpstream, Key: paymentFetchKey, Message: paymentFetchMessage, Cause: err}
	}
	return raw, nil
}

func (s service) latest(ctx context.Context, visitorID string) (ledger.Record, bool) {
	if s.ledger == nil || visitorID == "" {
		return ledger.Record{}, false
	}
	record, ok, err := s.ledger.Latest(ctx, visitorID)
	if err != nil {
		s.logger.Warn("load latest payment session", zap.Error(err))
		return ledger.Record{}, false
	}
	return record, ok
}

// lookup returns the record for sessionID when it belongs to the visitor.
func (s service) lookup(ctx context.Context, sessionID string, visitorID string) (ledger.Record, bool) {
	if s.ledger == nil || visitorID == "" {
		return ledger.Record{}, false
	}
	record, ok, err := s.ledger.Get(ctx, sessionID)
	if err != nil {
		s.logger.Warn("load payment session record", zap.String("session_id", sessionID), zap.Error(err))
		return ledger.Record{}, false
	}
	if !ok || record.VisitorID != visitorID {
		return ledger.Record{}, false
	}
	return record, true
}

// retryPath returns the checkout page for the plan and email recorded
// against sessionID, or "" when the session is unknown.
func (s service) retryPath(ctx context.Context, sessionID string, visitorID string) string {
	if sessionID == "" {
		return ""
	}
	if record, ok := s.lookup(ctx, sessionID, visitorID); ok && record.PlanID != "" {
		if plan, found := catalog.Lookup(record.PlanID); found {
			return routepath.CheckoutRetry(plan.ID, record.Email)
		}
	}
	return ""
}

// combined is the aggregate document shown on the success page.
type combined struct {
	Session       json.RawMessage `json:"session,omitempty"`
	Payment       json.RawMessage `json:"payment,omitempty"`
	StoredData    *ledger.Record  `json:"storedData,omitempty"`
	URLParameters redirectParams  `json:"urlParameters"`
	Timestamp     string          `json:"timestamp"`
}

func (r receipt) combinedJSON() ([]byte, error) {
	doc := combined{
		Session:       r.Session,
		Payment:       r.Payment,
		StoredData:    r.Record,
		URLParameters: r.Params,
		Timestamp:     r.LoadedAt.UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode combined response: %w", err)
	}
	return data, nil
}
