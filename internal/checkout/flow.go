// Package checkout models the checkout state machine shared by the server
// rendered pages and the browser script.
//
// The server advances a flow from email capture through session creation;
// the browser takes over once the hosted payment component is mounted.
package checkout

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	"github.com/louisbranch/saasify/internal/catalog"
	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
)

// Stage names one step of the checkout flow. The values are rendered into
// data attributes and must match the browser script.
type Stage string

const (
	StageEmail           Stage = "email"
	StageLoadingScript   Stage = "loading_script"
	StageCreatingSession Stage = "creating_session"
	StageMounting        Stage = "mounting"
	StageReady           Stage = "ready"
	StageCompleted       Stage = "completed"
	StageFailed          Stage = "failed"
)

// DefaultFailureMessage is shown when a failure carries no message.
const DefaultFailureMessage = "Payment failed. Please try again."

// Terminal reports whether no further forward transition is possible.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// Flow is the state of one checkout attempt. It is not safe for concurrent use.
type Flow struct {
	plan      catalog.Plan
	stage     Stage
	email     string
	sessionID string
	session   json.RawMessage
	paymentID string
	errMsg    string
}

// NewFlow starts a flow for plan at the email stage.
func NewFlow(plan catalog.Plan) *Flow {
	return &Flow{plan: plan, stage: StageEmail}
}

func (f *Flow) Stage() Stage { return f.stage }
func (f *Flow) Plan() catalog.Plan { return f.plan }
func (f *Flow) Email() string { return f.email }
func (f *Flow) SessionID() string { return f.sessionID }
func (f *Flow) Session() json.RawMessage { return f.session }
func (f *Flow) PaymentID() string { return f.paymentID }
func (f *Flow) Error() string { return f.errMsg }

// Loading reports whether the flow is waiting on the script, the provider or
// the component mount.
func (f *Flow) Loading() bool {
	switch f.stage {
	case StageLoadingScript, StageCreatingSession, StageMounting:
		return true
	default:
		return false
	}
}

// SubmitEmail validates and stores the customer email.
func (f *Flow) SubmitEmail(email string) error {
	if err := f.expect(StageEmail); err != nil {
		return err
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	f.email = normalized
	f.stage = StageLoadingScript
	return nil
}

// ScriptLoaded records that the provider script is available.
func (f *Flow) ScriptLoaded() error {
	if err := f.expect(StageLoadingScript); err != nil {
		return err
	}
	f.stage = StageCreatingSession
	return nil
}

// SessionCreated stores the provider session and moves on to mounting.
func (f *Flow) SessionCreated(sessionID string, raw json.RawMessage) error {
	if err := f.expect(StageCreatingSession); err != nil {
		return err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "checkout.error.session_missing", "payment session id is required")
	}
	f.sessionID = sessionID
	f.session = append(json.RawMessage(nil), raw...)
	f.stage = StageMounting
	return nil
}

// Mounted records the provider component ready callback.
func (f *Flow) Mounted() error {
	if err := f.expect(StageMounting); err != nil {
		return err
	}
	f.stage = StageReady
	return nil
}

// Complete records a successful payment.
func (f *Flow) Complete(paymentID string) error {
	if err := f.expect(StageReady); err != nil {
		return err
	}
	f.paymentID = strings.TrimSpace(paymentID)
	f.stage = StageCompleted
	return nil
}

// Fail moves any non-terminal flow to the failed stage.
func (f *Flow) Fail(message string) error {
	if f.stage.Terminal() {
		return transitionError(f.stage, StageFailed)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		message = DefaultFailureMessage
	}
	f.errMsg = message
	f.stage = StageFailed
	return nil
}

// Retry returns a failed flow to email capture, keeping the email.
func (f *Flow) Retry() error {
	if err := f.expect(StageFailed); err != nil {
		return err
	}
	f.stage = StageEmail
	f.errMsg = ""
	f.sessionID = ""
	f.session = nil
	f.paymentID = ""
	return nil
}

func (f *Flow) expect(stage Stage) error {
	if f.stage != stage {
		return transitionError(f.stage, stage)
	}
	return nil
}

func transitionError(from, to Stage) error {
	return apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("checkout: cannot move from %s to %s", from, to))
}

// NormalizeEmail trims and validates a bare email address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", apperrors.EK(apperrors.KindInvalidInput, "checkout.error.email_required", "Please enter your email address.")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return "", apperrors.EK(apperrors.KindInvalidInput, "checkout.error.email_invalid", "Please enter a valid email address.")
	}
	return email, nil
}
