package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "not found", err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{name: "unavailable", err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{name: "upstream", err: E(KindUpstream, "provider"), want: http.StatusBadGateway},
		{name: "unknown", err: E(KindUnknown, "boom"), want: http.StatusInternalServerError},
		{name: "untyped", err: stderrors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("%s: HTTPStatus() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestHTTPStatusSeesThroughWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("create session: %w", E(KindInvalidInput, "email is required"))
	if got := HTTPStatus(err); got != http.StatusBadRequest {
		t.Fatalf("HTTPStatus() = %d, want %d", got, http.StatusBadRequest)
	}
	if !Is(err, KindInvalidInput) {
		t.Fatal("expected Is to match wrapped kind")
	}
}

func TestErrorStringFallbacks(t *testing.T) {
	t.Parallel()

	if got := (Error{Kind: KindNotFound}).Error(); got != "not_found" {
		t.Fatalf("Error() = %q, want %q", got, "not_found")
	}
	cause := stderrors.New("dial tcp: refused")
	if got := (Error{Kind: KindUnavailable, Cause: cause}).Error(); got != "unavailable: dial tcp: refused" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("timeout")
	err := Wrap(KindUpstream, "fetch payment", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if got := err.Error(); got != "fetch payment" {
		t.Fatalf("Error() = %q, want %q", got, "fetch payment")
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(nil); got != "" {
		t.Fatalf("LocalizationKey(nil) = %q", got)
	}
	if got := LocalizationKey(stderrors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q", got)
	}
	if got := LocalizationKey(EK(KindInvalidInput, " checkout.error.email_invalid ", "bad email")); got != "checkout.error.email_invalid" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	if got := KindOf(nil); got != "" {
		t.Fatalf("KindOf(nil) = %q", got)
	}
	if got := KindOf(stderrors.New("x")); got != KindUnknown {
		t.Fatalf("KindOf(untyped) = %q", got)
	}
	if Is(nil, KindUnknown) {
		t.Fatal("nil error should not match any kind")
	}
}
