// Package visitorcookie issues the anonymous visitor id that keys the
// checkout ledger.
package visitorcookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/louisbranch/saasify/internal/platform/requestctx"
	"github.com/louisbranch/saasify/internal/services/web/platform/httpx"
	"github.com/louisbranch/saasify/internal/services/web/platform/requestmeta"
)

// Name is the visitor cookie name.
const Name = "saasify_visitor"

// MaxAge is the visitor cookie lifetime.
const MaxAge = 365 * 24 * time.Hour

// Read returns the visitor id when the cookie holds a valid UUID.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	id, err := uuid.Parse(strings.TrimSpace(cookie.Value))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Write sets the visitor cookie.
func Write(w http.ResponseWriter, r *http.Request, visitorID string, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(visitorID),
		Path:     "/",
		MaxAge:   int(MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware resolves the visitor id, issuing a fresh one when the cookie is
// missing or malformed, and stores it in the request context.
//
// Paths under a sharedPrefixes entry serve publicly cacheable responses and
// never receive a new cookie; an existing one is still read into the context.
func Middleware(policy requestmeta.SchemePolicy, sharedPrefixes ...string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID, ok := Read(r)
			if !ok {
				if isShared(r.URL.Path, sharedPrefixes) {
					next.ServeHTTP(w, r)
					return
				}
				visitorID = uuid.NewString()
				Write(w, r, visitorID, policy)
			}
			ctx := requestctx.WithVisitorID(r.Context(), visitorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isShared(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
