package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

// ErrorPageTitle returns the document title for an error status.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, "page.not_found")
	}
	return T(loc, "page.error")
}

// ErrorState renders the not-found or generic error panel.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		status := normalizeErrorStatus(statusCode)
		body := T(loc, "error.generic.body")
		if status == http.StatusNotFound {
			body = T(loc, "error.not_found.body")
		}
		h.open("section", "id", "error-state", "class", "panel error", "data-status", itoa(status))
		h.element("p", itoa(status), "class", "status-code")
		h.element("h1", ErrorPageTitle(status, loc))
		h.element("p", body)
		h.link(routepath.Root, T(loc, "error.back_home"), "class", "button")
		h.close("section")
		return h.err
	})
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
