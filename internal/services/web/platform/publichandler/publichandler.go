// Package publichandler provides a shared base for page module handlers.
// It centralizes error handling, localization and page rendering that would
// otherwise be duplicated across modules.
package publichandler

import (
	"net/http"

	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
	"github.com/louisbranch/saasify/internal/platform/logging"
	module "github.com/louisbranch/saasify/internal/services/web/module"
	webi18n "github.com/louisbranch/saasify/internal/services/web/platform/i18n"
	"github.com/louisbranch/saasify/internal/services/web/platform/pagerender"
	"github.com/louisbranch/saasify/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/saasify/internal/services/web/templates"
	"go.uber.org/zap"
)

// Base provides shared error handling and page rendering. Embed it in
// handler structs.
type Base struct {
	resolveLanguage module.ResolveLanguage
	logger          *zap.Logger
}

// Option configures a Base.
type Option func(*Base)

// WithResolveLanguage attaches a language override resolver.
func WithResolveLanguage(resolve module.ResolveLanguage) Option {
	return func(b *Base) { b.resolveLanguage = resolve }
}

// WithLogger attaches the logger used for render and server failures.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Base) { b.logger = logger }
}

// NewBase builds a handler base with the given options.
func NewBase(opts ...Option) Base {
	var b Base
	for _, o := range opts {
		o(&b)
	}
	b.logger = logging.OrNop(b.logger)
	return b
}

// FromDependencies builds a base from shared module dependencies.
func FromDependencies(deps module.Dependencies) Base {
	return NewBase(WithResolveLanguage(deps.ResolveLanguage), WithLogger(deps.Log()))
}

// Logger returns the handler logger.
func (b Base) Logger() *zap.Logger {
	return logging.OrNop(b.logger)
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r, b.resolveLanguage)
}

// WritePage renders a full page, falling back to the server error page when
// rendering fails.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, page); err != nil {
		b.Logger().Error("render page", zap.String("path", requestPath(r)), zap.Error(err))
		weberror.WriteErrorPage(w, r, http.StatusInternalServerError, b.resolveLanguage)
	}
}

// WriteNotFound renders a localized 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteErrorPage(w, r, http.StatusNotFound, b.resolveLanguage)
}

// WriteError renders a user-safe error response. Server-side failures are
// logged with their cause.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	if status := apperrors.HTTPStatus(err); status >= http.StatusInternalServerError {
		b.Logger().Error("request failed", zap.String("path", requestPath(r)), zap.Int("status", status), zap.Error(err))
	}
	weberror.WriteError(w, r, err, b.resolveLanguage)
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
