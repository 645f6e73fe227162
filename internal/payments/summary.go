package payments

import (
	"encoding/json"
	"strings"
)

// Summary is the subset of a session or payment the receipt page displays.
type Summary struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
	PaymentID string `json:"payment_id"`
}

// Summarize extracts the display fields from a provider object. Unknown
// shapes yield the zero Summary.
func Summarize(raw json.RawMessage) Summary {
	var summary Summary
	if len(raw) == 0 {
		return summary
	}
	if err := json.Unmarshal(raw, &summary); err != nil {
		return Summary{}
	}
	summary.ID = strings.TrimSpace(summary.ID)
	summary.PaymentID = strings.TrimSpace(summary.PaymentID)
	return summary
}

// SessionID returns the id field of a created session.
func SessionID(raw json.RawMessage) string {
	return Summarize(raw).ID
}
