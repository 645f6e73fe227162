package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishMessages = map[string]string{
	"site.name":         "SaaSify",
	"nav.home":          "Home",
	"nav.pricing":       "Pricing",
	"nav.features":      "Features",
	"nav.about":         "About",
	"nav.get_started":   "Get started",
	"footer.terms":      "Terms of Service",
	"footer.privacy":    "Privacy Policy",
	"footer.copyright":  "© %d SaaSify. All rights reserved.",
	"page.home":         "The all-in-one platform for creators",
	"page.pricing":      "Pricing",
	"page.features":     "Features",
	"page.about":        "About",
	"page.terms":        "Terms of Service",
	"page.privacy":      "Privacy Policy",
	"page.checkout":     "Checkout",
	"page.success":      "Payment successful",
	"page.failure":      "Payment failed",
	"page.not_found":    "Page not found",
	"page.error":        "Something went wrong",
	"pricing.heading":   "Simple, transparent pricing",
	"pricing.subtitle":  "Choose the plan that fits your business. Upgrade or cancel anytime.",
	"pricing.per_month": "%s/month",
	"pricing.popular":   "Most popular",
	"pricing.cta":       "Get started",

	"checkout.summary.title":       "Order summary",
	"checkout.summary.plan":        "%s Plan",
	"checkout.summary.total":       "Total due today",
	"checkout.email.label":         "Email address",
	"checkout.email.placeholder":   "you@example.com",
	"checkout.email.submit":        "Continue to payment",
	"checkout.payment.title":       "Payment details",
	"checkout.payment.loading":     "Loading payment form...",
	"checkout.payment.retry":       "Try again",
	"checkout.payment.secure":      "Payments are processed securely by our payment partner.",

	"checkout.error.email_required":  "Please enter your email address.",
	"checkout.error.email_invalid":   "Please enter a valid email address.",
	"checkout.error.session_missing": "Payment session could not be created.",
	"checkout.error.session_create":  "Failed to create payment session",
	"checkout.error.payment_failed":  "Payment failed. Please try again.",

	"success.title":            "Payment successful!",
	"success.subtitle":         "Thank you for your purchase. A confirmation has been sent to your email.",
	"success.reference":        "Order reference",
	"success.amount":           "Amount",
	"success.status":           "Status",
	"success.date":             "Date",
	"success.plan":             "Plan",
	"success.status_completed": "Completed",
	"success.details":          "Response details",
	"success.combined":         "Combined response",
	"success.session":          "Session",
	"success.payment":          "Payment",
	"success.record":           "Checkout record",
	"success.home":             "Return to home",
	"success.error.title":      "We could not load your payment",
	"success.error.no_session": "No session ID provided",
	"success.error.no_data":    "No payment or session data available",
	"success.error.payment":    "Failed to fetch payment details",

	"failure.title":    "Payment failed",
	"failure.default":  "Your payment could not be processed at this time.",
	"failure.reasons":  "Common reasons",
	"failure.reason.1": "Insufficient funds",
	"failure.reason.2": "Incorrect card details",
	"failure.reason.3": "The card was declined by the issuer",
	"failure.reason.4": "3D Secure authentication was not completed",
	"failure.retry":    "Try Again",
	"failure.session":  "Session ID: %s",
	"failure.home":     "Return to home",

	"error.not_found.body": "The page you are looking for does not exist.",
	"error.generic.body":   "Please try again in a moment.",
	"error.back_home":      "Back to home",

	"date.long":       "%[2]s %[1]d, %[3]d",
	"month.january":   "January",
	"month.february":  "February",
	"month.march":     "March",
	"month.april":     "April",
	"month.may":       "May",
	"month.june":      "June",
	"month.july":      "July",
	"month.august":    "August",
	"month.september": "September",
	"month.october":   "October",
	"month.november":  "November",
	"month.december":  "December",
}

func init() {
	for key, value := range englishMessages {
		_ = message.SetString(language.AmericanEnglish, key, value)
		_ = message.SetString(language.English, key, value)
	}
}
