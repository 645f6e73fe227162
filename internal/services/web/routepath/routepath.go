// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                  = "/"
	Pricing               = "/pricing"
	Features              = "/features"
	About                 = "/about"
	Terms                 = "/terms"
	Privacy               = "/privacy"
	Health                = "/up"
	Checkout              = "/checkout"
	CheckoutPrefix        = "/checkout/"
	CheckoutSuccess       = "/checkout/success"
	CheckoutFailure       = "/checkout/failure"
	APIPrefix             = "/api/"
	PaymentSessions       = "/api/payment-sessions"
	PaymentSessionsPrefix = "/api/payment-sessions/"
	PaymentSessionPattern = PaymentSessionsPrefix + "{id}"
	Payments              = "/api/payments"
	PaymentsPrefix        = "/api/payments/"
	PaymentPattern        = PaymentsPrefix + "{id}"
	ProxyPrefix           = "/api/proxy/"
	CheckoutScript        = "/api/proxy/checkout-script"
	StaticPrefix          = "/static/"
	StaticStylesheet      = "/static/app.css"
	StaticCheckoutScript  = "/static/checkout.js"
	PlanQueryKey          = "plan"
	ErrorQueryKey         = "error"
	SessionIDQueryKey     = "session_id"
	EmailQueryKey         = "email"
)

// PaymentSession returns the session relay route for id.
func PaymentSession(id string) string {
	return PaymentSessionsPrefix + escapeSegment(id)
}

// Payment returns the payment relay route for id.
func Payment(id string) string {
	return PaymentsPrefix + escapeSegment(id)
}

// CheckoutForPlan returns the checkout page for a plan id.
func CheckoutForPlan(planID string) string {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return Checkout
	}
	return Checkout + "?" + PlanQueryKey + "=" + url.QueryEscape(planID)
}

// CheckoutRetry returns the checkout page for a plan with the email form
// prefilled.
func CheckoutRetry(planID string, email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return CheckoutForPlan(planID)
	}
	values := url.Values{}
	values.Set(EmailQueryKey, email)
	if planID = strings.TrimSpace(planID); planID != "" {
		values.Set(PlanQueryKey, planID)
	}
	return Checkout + "?" + values.Encode()
}

// CheckoutFailureWith returns the failure page carrying an error message and
// session id when present.
func CheckoutFailureWith(message string, sessionID string) string {
	values := url.Values{}
	if message = strings.TrimSpace(message); message != "" {
		values.Set(ErrorQueryKey, message)
	}
	if sessionID = strings.TrimSpace(sessionID); sessionID != "" {
		values.Set(SessionIDQueryKey, sessionID)
	}
	if len(values) == 0 {
		return CheckoutFailure
	}
	return CheckoutFailure + "?" + values.Encode()
}

// Absolute joins a public origin and a path.
func Absolute(origin string, path string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/") + path
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
