package payments

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
)

var testChannels = Channels{Default: "pc_default", Alternative: "pc_alt"}

func encode(t *testing.T, req SessionRequest) map[string]any {
	t.Helper()
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestBuildSessionRequestDefaults(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000123)
	req, err := BuildSessionRequest(SessionInput{Amount: 2900, Currency: "USD"}, "https://shop.example/", now, testChannels)
	require.NoError(t, err)

	body := encode(t, req)
	require.EqualValues(t, 2900, body["amount"])
	require.Equal(t, "USD", body["currency"])
	require.Equal(t, "Regular", body["payment_type"])
	require.Equal(t, "SaaSify", body["display_name"])
	require.Equal(t, "ORDER-1700000000123", body["reference"])
	require.Equal(t, "Payment for subscription", body["description"])
	require.Equal(t, "https://shop.example/checkout/success", body["success_url"])
	require.Equal(t, "https://shop.example/checkout/failure", body["failure_url"])
	require.Equal(t, true, body["capture"])
	require.Equal(t, "en-GB", body["locale"])
	require.Equal(t, "pc_default", body["processing_channel_id"])
	require.Equal(t, map[string]any{"enabled": true, "attempt_n3d": false}, body["3ds"])
	require.Equal(t, []any{}, body["items"])
	require.Equal(t, []any{"card"}, body["enabled_payment_methods"])
	require.Equal(t, []any{}, body["disabled_payment_methods"])
	require.Equal(t, map[string]any{"email": "customer@example.com", "name": "Customer"}, body["customer"])

	address := map[string]any{
		"address_line1": "123 Test Street",
		"city":          "London",
		"state":         "LDN",
		"zip":           "W1T 4TJ",
		"country":       "GB",
	}
	require.Equal(t, map[string]any{"address": address}, body["billing"])
	require.Equal(t, map[string]any{"address": address}, body["shipping"])
	require.Equal(t, map[string]any{"card": map[string]any{"store_payment_details": "enabled"}}, body["payment_method_configuration"])
}

func TestBuildSessionRequestCopiesCallerValues(t *testing.T) {
	t.Parallel()

	items, err := MarshalItems([]Item{{Name: "Growth Plan", Quantity: 1, UnitPrice: 7900, TotalAmount: 7900, Reference: "PLAN-growth"}})
	require.NoError(t, err)

	input := SessionInput{
		Amount:                     7900,
		Currency:                   "USD",
		Items:                      items,
		Customer:                   &Customer{Email: "buyer@example.com", Name: "Ada"},
		Billing:                    json.RawMessage(`{"address":{"country":"US","city":"Boston"},"phone":{"number":"555"}}`),
		Shipping:                   json.RawMessage(`{"address":{"country":"CA"}}`),
		PaymentMethodConfiguration: json.RawMessage(`{"applepay":{"total_type":"final"},"card":{"foo":"bar","store_payment_details":"disabled"}}`),
		EnabledPaymentMethods:      []string{"card", "applepay"},
		DisabledPaymentMethods:     []string{"paypal"},
		Locale:                     "en-US",
		Plan:                       "growth",
	}
	req, err := BuildSessionRequest(input, "http://localhost:3000", time.Now(), testChannels)
	require.NoError(t, err)

	body := encode(t, req)
	require.Equal(t, "Payment for growth", body["description"])
	require.Equal(t, "en-US", body["locale"])
	require.Equal(t, map[string]any{"email": "buyer@example.com", "name": "Ada"}, body["customer"])
	require.Equal(t, "Boston", body["billing"].(map[string]any)["address"].(map[string]any)["city"])
	require.Contains(t, body["billing"].(map[string]any), "phone")
	require.Equal(t, "CA", body["shipping"].(map[string]any)["address"].(map[string]any)["country"])
	require.Equal(t, []any{"card", "applepay"}, body["enabled_payment_methods"])
	require.Equal(t, []any{"paypal"}, body["disabled_payment_methods"])
	require.Len(t, body["items"], 1)
	require.Equal(t, map[string]any{
		"applepay": map[string]any{"total_type": "final"},
		"card":     map[string]any{"foo": "bar", "store_payment_details": "enabled"},
	}, body["payment_method_configuration"])
}

func TestBuildSessionRequestSelectsAlternativeChannel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		country string
		want    string
	}{
		{country: "FR", want: "pc_alt"},
		{country: "pt", want: "pc_alt"},
		{country: "SA", want: "pc_alt"},
		{country: "GB", want: "pc_default"},
		{country: "US", want: "pc_default"},
	}
	for _, tc := range tests {
		billing := json.RawMessage(`{"address":{"country":"` + tc.country + `"}}`)
		req, err := BuildSessionRequest(SessionInput{Billing: billing}, "http://x", time.Now(), testChannels)
		require.NoError(t, err)
		require.Equal(t, tc.want, req.ProcessingChannelID, tc.country)
	}
}

func TestBuildSessionRequestRejectsNonObjectConfiguration(t *testing.T) {
	t.Parallel()

	_, err := BuildSessionRequest(SessionInput{PaymentMethodConfiguration: json.RawMessage(`[1,2]`)}, "http://x", time.Now(), testChannels)
	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	summary := Summarize(json.RawMessage(`{"id":" ps_1 ","status":"Approved","amount":2900,"currency":"USD","reference":"ORDER-1","payment_id":"pay_9","extra":true}`))
	require.Equal(t, Summary{ID: "ps_1", Status: "Approved", Amount: 2900, Currency: "USD", Reference: "ORDER-1", PaymentID: "pay_9"}, summary)
	require.Equal(t, Summary{}, Summarize(nil))
	require.Equal(t, Summary{}, Summarize(json.RawMessage(`"not an object"`)))
	require.Equal(t, "ps_2", SessionID(json.RawMessage(`{"id":"ps_2"}`)))
}
