package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Health != "/up" {
		t.Fatalf("Health = %q", Health)
	}
	if CheckoutPrefix != Checkout+"/" {
		t.Fatalf("CheckoutPrefix = %q", CheckoutPrefix)
	}
	if PaymentSessionsPrefix != PaymentSessions+"/" {
		t.Fatalf("PaymentSessionsPrefix = %q", PaymentSessionsPrefix)
	}
	if PaymentsPrefix != Payments+"/" {
		t.Fatalf("PaymentsPrefix = %q", PaymentsPrefix)
	}
	if CheckoutScript != "/api/proxy/checkout-script" {
		t.Fatalf("CheckoutScript = %q", CheckoutScript)
	}
}

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := PaymentSession("ps_1"); got != "/api/payment-sessions/ps_1" {
		t.Fatalf("PaymentSession() = %q", got)
	}
	if got := Payment(" pay/1 "); got != "/api/payments/pay%2F1" {
		t.Fatalf("Payment() = %q", got)
	}
	if got := CheckoutForPlan("growth"); got != "/checkout?plan=growth" {
		t.Fatalf("CheckoutForPlan() = %q", got)
	}
	if got := CheckoutForPlan(" "); got != "/checkout" {
		t.Fatalf("CheckoutForPlan(blank) = %q", got)
	}
	if got := CheckoutRetry("starter", " buyer@example.com "); got != "/checkout?email=buyer%40example.com&plan=starter" {
		t.Fatalf("CheckoutRetry() = %q", got)
	}
	if got := CheckoutRetry("starter", ""); got != "/checkout?plan=starter" {
		t.Fatalf("CheckoutRetry(no email) = %q", got)
	}
	if got := Absolute("https://example.com/", CheckoutSuccess); got != "https://example.com/checkout/success" {
		t.Fatalf("Absolute() = %q", got)
	}
}

func TestCheckoutFailureWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message   string
		sessionID string
		want      string
	}{
		{want: "/checkout/failure"},
		{message: "Card declined", want: "/checkout/failure?error=Card+declined"},
		{message: "Oops", sessionID: "ps_1", want: "/checkout/failure?error=Oops&session_id=ps_1"},
	}
	for _, tc := range tests {
		if got := CheckoutFailureWith(tc.message, tc.sessionID); got != tc.want {
			t.Fatalf("CheckoutFailureWith(%q, %q) = %q, want %q", tc.message, tc.sessionID, got, tc.want)
		}
	}
}
