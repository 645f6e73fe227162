package visitorcookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/louisbranch/saasify/internal/platform/requestctx"
	"github.com/louisbranch/saasify/internal/services/web/platform/requestmeta"
)

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seen string
	h := Middleware(requestmeta.SchemePolicy{})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestctx.VisitorIDFromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, seen
}

func TestMiddlewareIssuesCookieForNewVisitor(t *testing.T) {
	t.Parallel()

	rr, seen := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("visitor id %q is not a uuid: %v", seen, err)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != Name || cookie.Value != seen {
		t.Fatalf("cookie = %s=%s, want %s=%s", cookie.Name, cookie.Value, Name, seen)
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
	if cookie.MaxAge != int(MaxAge.Seconds()) {
		t.Fatalf("MaxAge = %d", cookie.MaxAge)
	}
	if cookie.Secure {
		t.Fatal("plain http request should not get a secure cookie")
	}
}

func TestMiddlewareReusesValidCookie(t *testing.T) {
	t.Parallel()

	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: existing})

	rr, seen := serve(t, req)
	if seen != existing {
		t.Fatalf("visitor id = %q, want %q", seen, existing)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for a known visitor")
	}
}

func TestMiddlewareReplacesMalformedCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: "not-a-uuid"})

	rr, seen := serve(t, req)
	if seen == "not-a-uuid" || seen == "" {
		t.Fatalf("visitor id = %q, want fresh id", seen)
	}
	if len(rr.Result().Cookies()) != 1 {
		t.Fatal("expected replacement cookie")
	}
}

func TestWriteMarksSecureOverHTTPS(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodGet, "https://shop.test/", nil), uuid.NewString(), requestmeta.SchemePolicy{})
	if !rr.Result().Cookies()[0].Secure {
		t.Fatal("expected secure cookie over https")
	}
}

func TestMiddlewareSkipsSharedPrefixes(t *testing.T) {
	t.Parallel()

	var seen string
	h := Middleware(requestmeta.SchemePolicy{}, "/api/proxy/", "/static/")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestctx.VisitorIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/proxy/checkout-script", nil))
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("shared path must not issue a visitor cookie")
	}
	if seen != "" {
		t.Fatalf("visitor id = %q, want empty", seen)
	}

	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/static/app.css", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: existing})
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != existing {
		t.Fatalf("visitor id = %q, want %q", seen, existing)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("expected no cookie for a known visitor")
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pricing", nil))
	if len(rr.Result().Cookies()) != 1 {
		t.Fatal("page path should issue a visitor cookie")
	}
}
