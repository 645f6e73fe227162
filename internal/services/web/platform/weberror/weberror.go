// Package weberror renders shared error responses for web modules.
package weberror

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
	module "github.com/louisbranch/saasify/internal/services/web/module"
	"github.com/louisbranch/saasify/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/saasify/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/saasify/internal/services/web/templates"
)

// ShouldRenderErrorPage reports whether status should use the error-page UX.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(webi18n.T(loc, key)); localized != "" && localized != key {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteErrorPage writes a localized error page for a not-found or server
// error status.
func WriteErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, resolveLanguage module.ResolveLanguage) {
	if w == nil {
		return
	}
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	loc, lang := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	layout := webtemplates.Layout(webtemplates.LayoutView{
		Title: webtemplates.ErrorPageTitle(statusCode, loc),
		Lang:  lang,
		Loc:   loc,
	})
	var buf bytes.Buffer
	ctx := templ.WithChildren(httpx.RequestContext(r), webtemplates.ErrorState(statusCode, loc))
	if err := layout.Render(ctx, &buf); err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}

// WriteError writes a user-safe error response: error pages for not-found
// and server errors, plain-text messages for everything else.
func WriteError(w http.ResponseWriter, r *http.Request, err error, resolveLanguage module.ResolveLanguage) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderErrorPage(statusCode) {
		WriteErrorPage(w, r, statusCode, resolveLanguage)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
