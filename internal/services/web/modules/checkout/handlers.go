package checkout

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/saasify/internal/catalog"
	checkoutflow "github.com/louisbranch/saasify/internal/checkout"
	"github.com/louisbranch/saasify/internal/payments"
	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
	"github.com/louisbranch/saasify/internal/platform/requestctx"
	module "github.com/louisbranch/saasify/internal/services/web/module"
	webi18n "github.com/louisbranch/saasify/internal/services/web/platform/i18n"
	"github.com/louisbranch/saasify/internal/services/web/platform/pagerender"
	"github.com/louisbranch/saasify/internal/services/web/platform/publichandler"
	"github.com/louisbranch/saasify/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/saasify/internal/services/web/platform/weberror"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/saasify/internal/services/web/templates"
	"go.uber.org/zap"
)

// maxFormBytes caps the email form body.
const maxFormBytes = 64 << 10

type handlers struct {
	publichandler.Base
	service       service
	settings      module.CheckoutSettings
	publicBaseURL string
	schemePolicy  requestmeta.SchemePolicy
}

func newHandlers(m Module) handlers {
	return handlers{
		Base:          m.base,
		service:       m.service,
		settings:      m.settings,
		publicBaseURL: m.deps.PublicBaseURL,
		schemePolicy:  m.deps.SchemePolicy,
	}
}

func (h handlers) handleCheckout(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	plan := catalog.Resolve(r.URL.Query().Get(routepath.PlanQueryKey))
	h.writeCheckout(w, r, loc, lang, http.StatusOK, webtemplates.CheckoutView{
		Loc:   loc,
		Stage: string(checkoutflow.StageEmail),
		Plan:  checkoutPlan(loc, lang, plan),
		Email: strings.TrimSpace(r.URL.Query().Get(routepath.EmailQueryKey)),
	})
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form submission", err))
		return
	}
	loc, lang := h.PageLocalizer(w, r)
	plan := catalog.Resolve(r.PostForm.Get("plan"))
	email := r.PostForm.Get("email")
	view := webtemplates.CheckoutView{Loc: loc, Plan: checkoutPlan(loc, lang, plan), Email: strings.TrimSpace(email)}

	flow := checkoutflow.NewFlow(plan)
	if err := flow.SubmitEmail(email); err != nil {
		view.Stage = string(flow.Stage())
		view.Error = weberror.PublicMessage(loc, err)
		h.writeCheckout(w, r, loc, lang, http.StatusBadRequest, view)
		return
	}

	ctx := r.Context()
	origin := requestmeta.Origin(r, h.schemePolicy, h.publicBaseURL)
	err := h.service.startPayment(ctx, flow, requestctx.VisitorIDFromContext(ctx), origin)
	view.Stage = string(flow.Stage())
	view.Email = flow.Email()
	view.Loading = flow.Loading()
	if err != nil {
		status := apperrors.HTTPStatus(err)
		if flow.Stage() != checkoutflow.StageFailed {
			h.WriteError(w, r, err)
			return
		}
		if status < http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		view.Error = webtemplates.T(loc, "checkout.error.session_create")
		view.Payment = h.paymentPanel(origin, flow)
		if err := flow.Retry(); err == nil {
			view.RetryURL = routepath.CheckoutRetry(flow.Plan().ID, flow.Email())
		}
		h.writeCheckout(w, r, loc, lang, status, view)
		return
	}
	view.Payment = h.paymentPanel(origin, flow)
	h.writeCheckout(w, r, loc, lang, http.StatusOK, view)
}

func (h handlers) paymentPanel(origin string, flow *checkoutflow.Flow) *webtemplates.PaymentPanel {
	panel := &webtemplates.PaymentPanel{
		SessionID:            flow.SessionID(),
		PublicKey:            h.settings.PublicKey,
		Environment:          h.settings.Environment,
		Locale:               h.settings.Locale,
		ScriptURL:            routepath.CheckoutScript,
		FlowScriptURL:        h.settings.FlowScriptURL,
		SuccessURL:           routepath.Absolute(origin, routepath.CheckoutSuccess),
		FailureURL:           routepath.Absolute(origin, routepath.CheckoutFailure),
		AppearanceJSON:       appearanceJSON(),
		ComponentOptionsJSON: componentOptionsJSON(),
	}
	if session := flow.Session(); len(session) > 0 {
		panel.SessionJSON = string(session)
	}
	return panel
}

func (h handlers) handleSuccess(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	ctx := r.Context()
	params := parseRedirectParams(r.URL.Query())
	receipt, err := h.service.loadReceipt(ctx, params, requestctx.VisitorIDFromContext(ctx))
	view := webtemplates.SuccessView{Loc: loc}
	status := http.StatusOK
	if err != nil {
		status = apperrors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.Logger().Error("load payment receipt", zap.Error(err))
		}
		view.Error = weberror.PublicMessage(loc, err)
	} else {
		view = h.successView(loc, lang, receipt)
	}
	h.writePage(w, r, loc, lang, status, webtemplates.T(loc, "page.success"), webtemplates.SuccessPage(view))
}

func (h handlers) successView(loc webtemplates.Localizer, lang string, receipt receipt) webtemplates.SuccessView {
	tag := webi18n.TagOf(lang)
	session := payments.Summarize(receipt.Session)
	payment := payments.Summarize(receipt.Payment)
	view := webtemplates.SuccessView{Loc: loc}

	view.Reference = firstNonEmpty(payment.Reference, session.Reference, receipt.SessionID)
	switch {
	case payment.Amount > 0:
		view.Amount = webi18n.FormatAmount(tag, payment.Amount, payment.Currency)
	case session.Amount > 0:
		view.Amount = webi18n.FormatAmount(tag, session.Amount, session.Currency)
	case receipt.Record != nil && receipt.Record.AmountMinor > 0:
		view.Amount = webi18n.FormatAmount(tag, receipt.Record.AmountMinor, receipt.Record.Currency)
	}
	view.Status = firstNonEmpty(payment.Status, session.Status, webtemplates.T(loc, "success.status_completed"))

	date := receipt.LoadedAt
	if receipt.Record != nil && !receipt.Record.CreatedAt.IsZero() {
		date = receipt.Record.CreatedAt
	}
	view.Date = webi18n.FormatDate(tag, date)
	if receipt.Record != nil {
		if plan, ok := catalog.Lookup(receipt.Record.PlanID); ok {
			view.Plan = plan.Name
		}
	}

	if combined, err := receipt.combinedJSON(); err == nil {
		view.Blocks = append(view.Blocks, webtemplates.JSONBlock{ID: "combined-json", Title: webtemplates.T(loc, "success.combined"), Body: string(combined)})
	}
	if block, ok := jsonBlock("session-json", webtemplates.T(loc, "success.session"), receipt.Session); ok {
		view.Blocks = append(view.Blocks, block)
	}
	if block, ok := jsonBlock("payment-json", webtemplates.T(loc, "success.payment"), receipt.Payment); ok {
		view.Blocks = append(view.Blocks, block)
	}
	if receipt.Record != nil {
		if block, ok := jsonBlock("record-json", webtemplates.T(loc, "success.record"), []byte(mustJSON(receipt.Record))); ok {
			view.Blocks = append(view.Blocks, block)
		}
	}
	return view
}

func (h handlers) handleFailure(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	ctx := r.Context()
	query := r.URL.Query()
	sessionID := strings.TrimSpace(query.Get(routepath.SessionIDQueryKey))
	view := webtemplates.FailureView{
		Loc:       loc,
		Message:   strings.TrimSpace(query.Get(routepath.ErrorQueryKey)),
		SessionID: sessionID,
		RetryURL:  h.service.retryPath(ctx, sessionID, requestctx.VisitorIDFromContext(ctx)),
	}
	h.writePage(w, r, loc, lang, http.StatusOK, webtemplates.T(loc, "page.failure"), webtemplates.FailurePage(view))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) writeCheckout(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, lang string, status int, view webtemplates.CheckoutView) {
	var scripts []string
	if view.Payment != nil && view.Stage != string(checkoutflow.StageFailed) {
		scripts = []string{routepath.StaticCheckoutScript}
	}
	h.WritePage(w, r, pagerender.Page{
		Title:       webtemplates.T(loc, "page.checkout"),
		Description: webtemplates.T(loc, "page.home"),
		StatusCode:  status,
		Lang:        lang,
		Loc:         loc,
		Body:        webtemplates.CheckoutPage(view),
		Scripts:     scripts,
	})
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, lang string, status int, title string, body templ.Component) {
	h.WritePage(w, r, pagerender.Page{
		Title:       title,
		Description: webtemplates.T(loc, "page.home"),
		StatusCode:  status,
		Lang:        lang,
		Loc:         loc,
		Body:        body,
	})
}

func checkoutPlan(loc webtemplates.Localizer, lang string, plan catalog.Plan) webtemplates.CheckoutPlan {
	tag := webi18n.TagOf(lang)
	return webtemplates.CheckoutPlan{
		ID:          plan.ID,
		Name:        plan.Name,
		Description: plan.Description,
		PriceLabel:  webtemplates.T(loc, "pricing.per_month", webi18n.FormatWholeAmount(tag, plan.PriceMonthly, plan.Currency)),
		TotalLabel:  webi18n.FormatAmount(tag, plan.AmountMinor(), plan.Currency),
	}
}

func jsonBlock(id string, title string, raw []byte) (webtemplates.JSONBlock, bool) {
	if len(raw) == 0 {
		return webtemplates.JSONBlock{}, false
	}
	return webtemplates.JSONBlock{ID: id, Title: title, Body: indentJSON(raw)}, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}

// indentJSON pretty-prints raw, returning it unchanged when it is not JSON.
func indentJSON(raw []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}
