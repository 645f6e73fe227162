package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/louisbranch/saasify/internal/ledger"
	"github.com/louisbranch/saasify/internal/payments"
	"github.com/louisbranch/saasify/internal/scriptproxy"
	"github.com/louisbranch/saasify/internal/services/web/platform/httpx"
	"github.com/louisbranch/saasify/internal/services/web/platform/visitorcookie"
)

type stubGateway struct{}

func (stubGateway) CreatePaymentSession(context.Context, payments.SessionRequest) (json.RawMessage, error) {
	return json.RawMessage(`{"id":"ps_server"}`), nil
}

func (stubGateway) GetPaymentSession(_ context.Context, id string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":"` + id + `","status":"Approved"}`), nil
}

func (stubGateway) GetPayment(_ context.Context, id string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":"` + id + `","status":"Captured"}`), nil
}

type stubScripts struct{}

func (stubScripts) Fetch(context.Context) (scriptproxy.Script, error) {
	return scriptproxy.Script{Body: []byte("window.ok=true;"), Source: scriptproxy.SourceUpstream}, nil
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	handler, err := NewHandler(Config{
		Payments: stubGateway{},
		Ledger:   ledger.NewMemoryStore(0),
		Scripts:  stubScripts{},
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return handler
}

func TestNewHandlerServesPagesWithVisitorCookie(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Header().Get(httpx.RequestIDHeader) == "" {
		t.Fatalf("missing %s header", httpx.RequestIDHeader)
	}
	found := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == visitorcookie.Name && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("visitor cookie not issued")
	}
}

func TestNewHandlerRoutesEveryModule(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	tests := []struct {
		path   string
		status int
		want   string
	}{
		{path: "/pricing", status: http.StatusOK, want: "Starter"},
		{path: "/checkout?plan=growth", status: http.StatusOK, want: "Growth Plan"},
		{path: "/checkout/failure", status: http.StatusOK, want: "Try Again"},
		{path: "/api/payments/pay_1", status: http.StatusOK, want: `"Captured"`},
		{path: "/api/payment-sessions/ps_1", status: http.StatusOK, want: `"Approved"`},
		{path: "/api/proxy/checkout-script", status: http.StatusOK, want: "window.ok=true;"},
		{path: "/static/app.css", status: http.StatusOK, want: "--color-primary"},
		{path: "/up", status: http.StatusOK, want: "ok"},
		{path: "/missing", status: http.StatusNotFound, want: "Page not found"},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.status {
			t.Fatalf("GET %s status = %d, want %d", tc.path, rec.Code, tc.status)
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Fatalf("GET %s body missing %q", tc.path, tc.want)
		}
	}
}

func TestNewHandlerLatestSessionFollowsVisitor(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	create := httptest.NewRequest(http.MethodPost, "/api/payment-sessions", strings.NewReader(`{"amount":2900,"currency":"USD"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, create)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, want %d", rec.Code, http.StatusOK)
	}
	var visitor *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == visitorcookie.Name {
			visitor = cookie
		}
	}
	if visitor == nil {
		t.Fatal("visitor cookie not issued")
	}

	latest := httptest.NewRequest(http.MethodGet, "/api/payment-sessions", nil)
	latest.AddCookie(visitor)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, latest)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ps_server"`) {
		t.Fatalf("latest = %d %q, want ps_server", rec.Code, rec.Body.String())
	}

	other := httptest.NewRequest(http.MethodGet, "/api/payment-sessions", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("other visitor status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestNewHandlerRejectsCrossOriginPost(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	form := url.Values{"plan": {"starter"}, "email": {"buyer@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestNewHandlerAcceptsPostBehindTrustedProxy(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(Config{
		Payments:              stubGateway{},
		Ledger:                ledger.NewMemoryStore(0),
		Scripts:               stubScripts{},
		TrustForwardedHeaders: true,
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	form := url.Values{"plan": {"starter"}, "email": {"buyer@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "http://127.0.0.1:3000/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-Host", "shop.example.com")
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("Origin", "https://shop.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestNewHandlerDoesNotSetVisitorCookieOnCacheableAssets(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	for _, path := range []string{"/api/proxy/checkout-script", "/static/app.css"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
		if got := rec.Header().Get("Set-Cookie"); got != "" {
			t.Fatalf("GET %s Set-Cookie = %q, want none", path, got)
		}
	}
}

func TestNewHandlerRequiresPaymentGateway(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{Scripts: stubScripts{}}); err == nil {
		t.Fatal("expected error without payment gateway")
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), Config{
		HTTPAddr: "127.0.0.1:0",
		Payments: stubGateway{},
		Scripts:  stubScripts{},
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := server.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe() error = %v", err)
	}
}

func TestNilServerIsSafe(t *testing.T) {
	t.Parallel()

	var server *Server
	server.Close()
	if err := server.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
}
