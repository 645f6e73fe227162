package paymentsapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/saasify/internal/ledger"
	"github.com/louisbranch/saasify/internal/payments"
	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
	"github.com/louisbranch/saasify/internal/platform/requestctx"
	module "github.com/louisbranch/saasify/internal/services/web/module"
	"github.com/louisbranch/saasify/internal/services/web/platform/httpx"
	"github.com/louisbranch/saasify/internal/services/web/platform/requestmeta"
)

const (
	msgCreateFailed      = "Failed to create payment session"
	msgSessionFetch      = "Failed to fetch session details"
	msgPaymentFetch      = "Failed to fetch payment details"
	msgSessionIDRequired = "Session ID is required"
	msgPaymentIDRequired = "Payment ID is required"
	msgNoSession         = "No session ID available"
	msgNotFound          = "Not found"
)

type handlers struct {
	gateway       module.PaymentGateway
	ledger        ledger.Store
	channels      payments.Channels
	publicBaseURL string
	schemePolicy  requestmeta.SchemePolicy
	now           func() time.Time
	logger        *zap.Logger
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{
		gateway:       deps.Payments,
		ledger:        deps.Ledger,
		channels:      deps.Channels,
		publicBaseURL: deps.PublicBaseURL,
		schemePolicy:  deps.SchemePolicy,
		now:           deps.Clock(),
		logger:        deps.Log(),
	}
}

func (h handlers) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var input payments.SessionInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	origin := requestmeta.Origin(r, h.schemePolicy, h.publicBaseURL)
	req, err := payments.BuildSessionRequest(input, origin, h.now(), h.channels)
	if err != nil {
		_ = httpx.WriteJSONError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	ctx := r.Context()
	raw, err := h.gateway.CreatePaymentSession(ctx, req)
	if err != nil {
		h.logProviderError("create payment session", err)
		_ = httpx.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   msgCreateFailed,
			"details": payments.ErrorDetails(err),
		})
		return
	}

	h.record(ctx, ledger.Record{
		SessionID:   payments.SessionID(raw),
		VisitorID:   requestctx.VisitorIDFromContext(ctx),
		PlanID:      input.Plan,
		Email:       customerEmail(input.Customer),
		AmountMinor: input.Amount,
		Currency:    input.Currency,
	})
	_ = httpx.WriteRawJSON(w, http.StatusOK, raw)
}

func (h handlers) handleLatestSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	visitorID := requestctx.VisitorIDFromContext(ctx)
	if h.ledger == nil || visitorID == "" {
		_ = httpx.WriteJSONError(w, http.StatusNotFound, msgNoSession)
		return
	}
	record, ok, err := h.ledger.Latest(ctx, visitorID)
	if err != nil {
		h.logger.Error("load latest payment session", zap.Error(err))
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, msgSessionFetch)
		return
	}
	if !ok {
		_ = httpx.WriteJSONError(w, http.StatusNotFound, msgNoSession)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"id": record.SessionID})
}

func (h handlers) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.handleMissingSessionID(w, r)
		return
	}
	raw, err := h.gateway.GetPaymentSession(r.Context(), id)
	if err != nil {
		h.logProviderError("get payment session", err)
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, msgSessionFetch)
		return
	}
	_ = httpx.WriteRawJSON(w, http.StatusOK, raw)
}

func (h handlers) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.handleMissingPaymentID(w, r)
		return
	}
	raw, err := h.gateway.GetPayment(r.Context(), id)
	if err != nil {
		h.logProviderError("get payment", err)
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, msgPaymentFetch)
		return
	}
	_ = httpx.WriteRawJSON(w, http.StatusOK, raw)
}

func (h handlers) handleMissingSessionID(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusBadRequest, msgSessionIDRequired)
}

func (h handlers) handleMissingPaymentID(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusBadRequest, msgPaymentIDRequired)
}

func (h handlers) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusNotFound, msgNotFound)
}

// record keeps the session for the visitor; failures are logged and the
// provider response is still returned.
func (h handlers) record(ctx context.Context, record ledger.Record) {
	if h.ledger == nil || record.VisitorID == "" || record.SessionID == "" {
		return
	}
	if err := h.ledger.Put(ctx, record); err != nil {
		h.logger.Warn("record payment session", zap.String("session_id", record.SessionID), zap.Error(err))
	}
}

func (h handlers) logProviderError(op string, err error) {
	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	var upstream *payments.UpstreamError
	if errors.As(err, &upstream) {
		fields = append(fields, zap.Int("upstream_status", upstream.StatusCode))
	}
	h.logger.Error("payment provider request failed", fields...)
}

func customerEmail(customer *payments.Customer) string {
	if customer == nil {
		return ""
	}
	return strings.TrimSpace(customer.Email)
}
