package payments

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarizeReadsDisplayFields(t *testing.T) {
	raw := json.RawMessage(`{"id":" ps_1 ","status":"Captured","amount":7900,"currency":"USD","reference":"ORDER-1","payment_id":"pay_1","extra":true}`)

	got := Summarize(raw)

	require.Equal(t, Summary{ID: "ps_1", Status: "Captured", Amount: 7900, Currency: "USD", Reference: "ORDER-1", PaymentID: "pay_1"}, got)
	require.Equal(t, "ps_1", SessionID(raw))
}

func TestSummarizeIgnoresUnknownShapes(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`[1,2]`), json.RawMessage(`not json`)} {
		require.Equal(t, Summary{}, Summarize(raw))
	}
}
