package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsCrossOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		origin  string
		referer string
		proto   string
		fwdHost string
		policy  SchemePolicy
		want    bool
	}{
		{name: "no headers", target: "http://shop.test/checkout", want: false},
		{name: "same origin", target: "http://shop.test/checkout", origin: "http://shop.test", want: false},
		{name: "same origin explicit default port", target: "http://shop.test/checkout", origin: "http://shop.test:80", want: false},
		{name: "other host", target: "http://shop.test/checkout", origin: "http://evil.test", want: true},
		{name: "other port", target: "http://shop.test:3000/checkout", origin: "http://shop.test:4000", want: true},
		{name: "scheme mismatch", target: "http://shop.test/checkout", origin: "https://shop.test", want: true},
		{name: "referer fallback", target: "http://shop.test/checkout", referer: "http://shop.test/pricing", want: false},
		{name: "null origin uses referer", target: "http://shop.test/checkout", origin: "null", referer: "http://evil.test/", want: true},
		{name: "untrusted forwarded proto ignored", target: "http://shop.test/checkout", origin: "https://shop.test", proto: "https", want: true},
		{name: "trusted forwarded proto", target: "http://shop.test/checkout", origin: "https://shop.test", proto: "https", policy: SchemePolicy{TrustForwardedHeaders: true}, want: false},
		{name: "trusted forwarded host", target: "http://127.0.0.1:3000/checkout", origin: "https://shop.example.com", proto: "https", fwdHost: "shop.example.com", policy: SchemePolicy{TrustForwardedHeaders: true}, want: false},
		{name: "untrusted forwarded host ignored", target: "http://127.0.0.1:3000/checkout", origin: "https://shop.example.com", proto: "https", fwdHost: "shop.example.com", want: true},
		{name: "trusted forwarded host mismatch", target: "http://127.0.0.1:3000/checkout", origin: "https://evil.example.com", proto: "https", fwdHost: "shop.example.com", policy: SchemePolicy{TrustForwardedHeaders: true}, want: true},
		{name: "garbage origin", target: "http://shop.test/checkout", origin: "::", want: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, tc.target, nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if tc.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tc.proto)
			}
			if tc.fwdHost != "" {
				req.Header.Set("X-Forwarded-Host", tc.fwdHost)
			}
			if got := IsCrossOrigin(req, tc.policy); got != tc.want {
				t.Fatalf("IsCrossOrigin() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOrigin(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "http://localhost:3000/api/payment-sessions", nil)
	if got := Origin(req, SchemePolicy{}, ""); got != "http://localhost:3000" {
		t.Fatalf("Origin() = %q", got)
	}
	if got := Origin(req, SchemePolicy{}, "https://saasify.example/ "); got != "https://saasify.example" {
		t.Fatalf("Origin() with base = %q", got)
	}

	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "shop.example")
	if got := Origin(req, SchemePolicy{}, ""); got != "http://localhost:3000" {
		t.Fatalf("Origin() untrusted = %q", got)
	}
	if got := Origin(req, SchemePolicy{TrustForwardedHeaders: true}, ""); got != "https://shop.example" {
		t.Fatalf("Origin() trusted = %q", got)
	}
	if got := Origin(nil, SchemePolicy{}, ""); got != "" {
		t.Fatalf("Origin(nil) = %q", got)
	}
}

func TestIsUnsafeMethod(t *testing.T) {
	t.Parallel()

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		if IsUnsafeMethod(method) {
			t.Fatalf("%s should be safe", method)
		}
	}
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		if !IsUnsafeMethod(method) {
			t.Fatalf("%s should be unsafe", method)
		}
	}
}

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	if IsHTTPS(nil, SchemePolicy{}) {
		t.Fatalf("expected nil request to be non-https")
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	if IsHTTPS(req, SchemePolicy{}) {
		t.Fatalf("expected forwarded header to be ignored by default")
	}
	if !IsHTTPS(req, SchemePolicy{TrustForwardedHeaders: true}) {
		t.Fatalf("expected trusted forwarded header to be used")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	if !IsHTTPS(req, SchemePolicy{}) {
		t.Fatalf("expected TLS request to be https")
	}
}
