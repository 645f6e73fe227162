package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

// JSONBlock is a titled, pre-formatted JSON document.
type JSONBlock struct {
	ID    string
	Title string
	Body  string
}

// SuccessView is the payment confirmation state.
type SuccessView struct {
	Loc       Localizer
	Error     string
	Reference string
	Amount    string
	Status    string
	Date      string
	Plan      string
	Blocks    []JSONBlock
}

// FailureView is the payment failure state.
type FailureView struct {
	Loc       Localizer
	Message   string
	SessionID string
	RetryURL  string
}

// SuccessPage renders the confirmation, or the error panel when the payment
// could not be loaded.
func SuccessPage(view SuccessView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		if view.Error != "" {
			h.open("section", "id", "success-error", "class", "panel error")
			h.element("h1", T(view.Loc, "success.error.title"))
			h.element("p", view.Error, "role", "alert")
			h.link(routepath.Root, T(view.Loc, "success.home"), "class", "button")
			h.close("section")
			return h.err
		}

		h.open("section", "id", "success", "class", "panel success")
		h.element("h1", T(view.Loc, "success.title"))
		h.element("p", T(view.Loc, "success.subtitle"), "class", "lead")
		h.open("dl", "class", "summary")
		writeTerm(h, T(view.Loc, "success.reference"), view.Reference, "reference")
		writeTerm(h, T(view.Loc, "success.amount"), view.Amount, "amount")
		writeTerm(h, T(view.Loc, "success.status"), view.Status, "status")
		writeTerm(h, T(view.Loc, "success.date"), view.Date, "date")
		writeTerm(h, T(view.Loc, "success.plan"), view.Plan, "plan")
		h.close("dl")
		if len(view.Blocks) > 0 {
			h.element("h2", T(view.Loc, "success.details"))
			for _, block := range view.Blocks {
				h.open("details", "class", "json-block", "id", block.ID)
				h.element("summary", block.Title)
				h.open("pre")
				h.element("code", block.Body)
				h.close("pre")
				h.close("details")
			}
		}
		h.link(routepath.Root, T(view.Loc, "success.home"), "class", "button")
		h.close("section")
		return h.err
	})
}

func writeTerm(h *htmlWriter, label string, value string, id string) {
	if value == "" {
		return
	}
	h.element("dt", label)
	h.element("dd", value, "id", "summary-"+id)
}

// FailurePage renders the declined payment page with a retry link.
func FailurePage(view FailureView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		message := view.Message
		if message == "" {
			message = T(view.Loc, "failure.default")
		}
		retry := view.RetryURL
		if retry == "" {
			retry = routepath.Checkout
		}
		h.open("section", "id", "failure", "class", "panel error")
		h.element("h1", T(view.Loc, "failure.title"))
		h.element("p", message, "id", "failure-message", "role", "alert")
		if view.SessionID != "" {
			h.element("p", T(view.Loc, "failure.session", view.SessionID), "class", "muted")
		}
		h.element("h2", T(view.Loc, "failure.reasons"))
		h.list("ul", []string{
			T(view.Loc, "failure.reason.1"),
			T(view.Loc, "failure.reason.2"),
			T(view.Loc, "failure.reason.3"),
			T(view.Loc, "failure.reason.4"),
		}, "id", "failure-reasons")
		h.open("p", "class", "actions")
		h.link(retry, T(view.Loc, "failure.retry"), "class", "button", "id", "failure-retry")
		h.raw(" ")
		h.link(routepath.Root, T(view.Loc, "failure.home"), "class", "button secondary")
		h.close("p")
		h.close("section")
		return h.err
	})
}
