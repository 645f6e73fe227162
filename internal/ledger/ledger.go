package ledger

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
)

// DefaultTTL is how long records stay visible.
const DefaultTTL = 24 * time.Hour

// Record is one created payment session.
type Record struct {
	SessionID   string    `json:"session_id"`
	VisitorID   string    `json:"visitor_id"`
	PlanID      string    `json:"plan_id,omitempty"`
	Email       string    `json:"email,omitempty"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists ledger records.
type Store interface {
	Put(ctx context.Context, record Record) error
	Latest(ctx context.Context, visitorID string) (Record, bool, error)
	Get(ctx context.Context, sessionID string) (Record, bool, error)
	Close() error
}

// Normalize trims record fields, validates the keys and stamps CreatedAt
// when it is unset.
func Normalize(record Record, now time.Time) (Record, error) {
	record.SessionID = strings.TrimSpace(record.SessionID)
	record.VisitorID = strings.TrimSpace(record.VisitorID)
	record.PlanID = strings.TrimSpace(record.PlanID)
	record.Email = strings.TrimSpace(record.Email)
	record.Currency = strings.ToUpper(strings.TrimSpace(record.Currency))
	if record.SessionID == "" {
		return Record{}, apperrors.E(apperrors.KindInvalidInput, "ledger: session id is required")
	}
	if record.VisitorID == "" {
		return Record{}, apperrors.E(apperrors.KindInvalidInput, "ledger: visitor id is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

// Expired reports whether record is older than ttl at now. A non-positive
// ttl never expires.
func Expired(record Record, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && !record.CreatedAt.Add(ttl).After(now)
}
