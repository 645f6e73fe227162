// Package ledger records the payment sessions created for each anonymous
// visitor so the receipt page and the session API can find the visitor's
// most recent checkout.
//
// Records are keyed by visitor id, never shared across visitors, and expire
// after a TTL. The ledger is a convenience index; the payment provider stays
// the source of truth for session and payment state.
package ledger
