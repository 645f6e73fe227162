package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

// CheckoutPlan is the order summary for the selected plan.
type CheckoutPlan struct {
	ID          string
	Name        string
	Description string
	PriceLabel  string
	TotalLabel  string
}

// PaymentPanel carries what the browser needs to mount the flow component.
type PaymentPanel struct {
	SessionID            string
	SessionJSON          string
	PublicKey            string
	Environment          string
	Locale               string
	ScriptURL            string
	FlowScriptURL        string
	SuccessURL           string
	FailureURL           string
	AppearanceJSON       string
	ComponentOptionsJSON string
}

// CheckoutView is the checkout page state.
type CheckoutView struct {
	Loc     Localizer
	Stage   string
	Plan    CheckoutPlan
	Email   string
	Error   string
	Loading bool
	Payment *PaymentPanel
	// RetryURL overrides the panel's retry link.
	RetryURL string
}

// CheckoutPage renders the order summary next to either the email form or
// the payment panel.
func CheckoutPage(view CheckoutView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("section", "id", "checkout", "class", "checkout", "data-stage", view.Stage)
		h.element("h1", T(view.Loc, "page.checkout"))
		writeOrderSummary(h, view)
		if view.Payment == nil && view.Stage != "failed" {
			writeEmailForm(h, view)
		} else {
			writePaymentPanel(h, view)
		}
		h.close("section")
		return h.err
	})
}

func writeOrderSummary(h *htmlWriter, view CheckoutView) {
	h.open("aside", "id", "order-summary", "class", "panel")
	h.element("h2", T(view.Loc, "checkout.summary.title"))
	h.element("h3", T(view.Loc, "checkout.summary.plan", view.Plan.Name))
	h.element("p", view.Plan.Description)
	h.element("p", view.Plan.PriceLabel, "class", "price")
	if view.Plan.TotalLabel != "" {
		h.open("p", "class", "total")
		h.text(T(view.Loc, "checkout.summary.total") + ": ")
		h.element("strong", view.Plan.TotalLabel)
		h.close("p")
	}
	h.close("aside")
}

func writeEmailForm(h *htmlWriter, view CheckoutView) {
	h.open("form", "id", "email-form", "class", "panel", "method", "post", "action", routepath.Checkout, "novalidate", "novalidate")
	h.open("input", "type", "hidden", "name", "plan", "value", view.Plan.ID)
	h.element("label", T(view.Loc, "checkout.email.label"), "for", "email")
	attrs := []string{
		"type", "email",
		"id", "email",
		"name", "email",
		"value", view.Email,
		"placeholder", T(view.Loc, "checkout.email.placeholder"),
		"autocomplete", "email",
		"required", "required",
	}
	if view.Error != "" {
		attrs = append(attrs, "aria-invalid", "true", "aria-describedby", "email-error")
	}
	h.open("input", attrs...)
	if view.Error != "" {
		h.element("p", view.Error, "id", "email-error", "class", "error", "role", "alert")
	}
	h.element("button", T(view.Loc, "checkout.email.submit"), "type", "submit", "class", "button")
	h.close("form")
}

func writePaymentPanel(h *htmlWriter, view CheckoutView) {
	attrs := []string{"id", "payment-panel", "class", "panel", "data-stage", view.Stage}
	if p := view.Payment; p != nil {
		attrs = append(attrs,
			"data-session-id", p.SessionID,
			"data-session", p.SessionJSON,
			"data-public-key", p.PublicKey,
			"data-environment", p.Environment,
			"data-locale", p.Locale,
			"data-script-url", p.ScriptURL,
			"data-flow-script-url", p.FlowScriptURL,
			"data-success-url", p.SuccessURL,
			"data-failure-url", p.FailureURL,
			"data-appearance", p.AppearanceJSON,
			"data-component-options", p.ComponentOptionsJSON,
			"data-default-error", T(view.Loc, "checkout.error.payment_failed"),
		)
	}
	h.open("div", attrs...)
	h.element("h2", T(view.Loc, "checkout.payment.title"))
	h.element("p", view.Email, "class", "muted", "id", "payment-email")

	loadingAttrs := []string{"id", "flow-loading", "class", "loading"}
	if !view.Loading {
		loadingAttrs = append(loadingAttrs, "hidden", "hidden")
	}
	h.element("p", T(view.Loc, "checkout.payment.loading"), loadingAttrs...)
	h.open("div", "id", "flow-container")
	h.close("div")

	errorAttrs := []string{"id", "flow-error", "class", "error", "role", "alert"}
	if view.Error == "" {
		errorAttrs = append(errorAttrs, "hidden", "hidden")
	}
	h.open("div", errorAttrs...)
	h.element("p", view.Error, "id", "flow-error-message")
	retry := view.RetryURL
	if retry == "" {
		retry = routepath.CheckoutRetry(view.Plan.ID, view.Email)
	}
	h.link(retry, T(view.Loc, "checkout.payment.retry"), "class", "button", "id", "flow-retry")
	h.close("div")

	h.element("p", T(view.Loc, "checkout.payment.secure"), "class", "muted")
	h.close("div")
}
