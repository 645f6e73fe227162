package payments

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
)

const (
	displayName     = "SaaSify"
	paymentType     = "Regular"
	defaultLocale   = "en-GB"
	defaultEmail    = "customer@example.com"
	defaultCustomer = "Customer"
)

// Channels holds the provider processing channel ids.
type Channels struct {
	Default     string
	Alternative string
}

// alternativeChannelCountries are billed through the alternative channel.
var alternativeChannelCountries = map[string]bool{"FR": true, "PT": true, "SA": true}

// FallbackAddress is used for billing and shipping when the caller sends none.
var FallbackAddress = Address{
	AddressLine1: "123 Test Street",
	City:         "London",
	State:        "LDN",
	Zip:          "W1T 4TJ",
	Country:      "GB",
}

// Address is a postal address in provider format.
type Address struct {
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Customer identifies the payer.
type Customer struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Item is one order line.
type Item struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	TotalAmount int64  `json:"total_amount"`
	Reference   string `json:"reference,omitempty"`
}

// SessionInput is the browser-supplied body of a session creation request.
// Billing, shipping and items are relayed as given.
type SessionInput struct {
	Amount                     int64           `json:"amount"`
	Currency                   string          `json:"currency"`
	Items                      json.RawMessage `json:"items,omitempty"`
	Customer                   *Customer       `json:"customer,omitempty"`
	Billing                    json.RawMessage `json:"billing,omitempty"`
	Shipping                   json.RawMessage `json:"shipping,omitempty"`
	PaymentMethodConfiguration json.RawMessage `json:"payment_method_configuration,omitempty"`
	EnabledPaymentMethods      []string        `json:"enabled_payment_methods,omitempty"`
	DisabledPaymentMethods     []string        `json:"disabled_payment_methods,omitempty"`
	Locale                     string          `json:"locale,omitempty"`
	Plan                       string          `json:"plan,omitempty"`
}

// ThreeDS configures 3-D Secure authentication.
type ThreeDS struct {
	Enabled    bool `json:"enabled"`
	AttemptN3D bool `json:"attempt_n3d"`
}

// SessionRequest is the JSON body sent to the provider's payment-sessions endpoint.
type SessionRequest struct {
	Amount                     int64           `json:"amount"`
	Currency                   string          `json:"currency"`
	PaymentType                string          `json:"payment_type"`
	DisplayName                string          `json:"display_name"`
	Reference                  string          `json:"reference"`
	Description                string          `json:"description"`
	Billing                    json.RawMessage `json:"billing"`
	Shipping                   json.RawMessage `json:"shipping"`
	Customer                   Customer        `json:"customer"`
	SuccessURL                 string          `json:"success_url"`
	FailureURL                 string          `json:"failure_url"`
	Capture                    bool            `json:"capture"`
	Locale                     string          `json:"locale"`
	ProcessingChannelID        string          `json:"processing_channel_id,omitempty"`
	ThreeDS                    ThreeDS         `json:"3ds"`
	Items                      json.RawMessage `json:"items"`
	EnabledPaymentMethods      []string        `json:"enabled_payment_methods"`
	DisabledPaymentMethods     []string        `json:"disabled_payment_methods"`
	PaymentMethodConfiguration map[string]any  `json:"payment_method_configuration"`
}

// BuildSessionRequest fills provider defaults around input. origin is the
// scheme and host the browser returns to after the hosted flow.
func BuildSessionRequest(input SessionInput, origin string, now time.Time, channels Channels) (SessionRequest, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")

	fallback, err := json.Marshal(struct {
		Address Address `json:"address"`
	}{Address: FallbackAddress})
	if err != nil {
		return SessionRequest{}, fmt.Errorf("encode fallback address: %w", err)
	}
	billing := orDefault(input.Billing, fallback)
	shipping := orDefault(input.Shipping, fallback)

	pmc, err := mergePaymentMethodConfiguration(input.PaymentMethodConfiguration)
	if err != nil {
		return SessionRequest{}, err
	}

	plan := strings.TrimSpace(input.Plan)
	if plan == "" {
		plan = "subscription"
	}
	req := SessionRequest{
		Amount:                     input.Amount,
		Currency:                   input.Currency,
		PaymentType:                paymentType,
		DisplayName:                displayName,
		Reference:                  fmt.Sprintf("ORDER-%d", now.UnixMilli()),
		Description:                "Payment for " + plan,
		Billing:                    billing,
		Shipping:                   shipping,
		Customer:                   Customer{Email: defaultEmail, Name: defaultCustomer},
		SuccessURL:                 origin + "/checkout/success",
		FailureURL:                 origin + "/checkout/failure",
		Capture:                    true,
		Locale:                     defaultLocale,
		ProcessingChannelID:        channels.Default,
		ThreeDS:                    ThreeDS{Enabled: true},
		Items:                      orDefault(input.Items, json.RawMessage(`[]`)),
		EnabledPaymentMethods:      input.EnabledPaymentMethods,
		DisabledPaymentMethods:     input.DisabledPaymentMethods,
		PaymentMethodConfiguration: pmc,
	}
	if input.Customer != nil {
		if email := strings.TrimSpace(input.Customer.Email); email != "" {
			req.Customer.Email = email
		}
		if name := strings.TrimSpace(input.Customer.Name); name != "" {
			req.Customer.Name = name
		}
	}
	if locale := strings.TrimSpace(input.Locale); locale != "" {
		req.Locale = locale
	}
	if len(req.EnabledPaymentMethods) == 0 {
		req.EnabledPaymentMethods = []string{"card"}
	}
	if req.DisabledPaymentMethods == nil {
		req.DisabledPaymentMethods = []string{}
	}
	if alternativeChannelCountries[billingCountry(billing)] && channels.Alternative != "" {
		req.ProcessingChannelID = channels.Alternative
	}
	return req, nil
}

func orDefault(raw, fallback json.RawMessage) json.RawMessage {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return fallback
	}
	return raw
}

func billingCountry(billing json.RawMessage) string {
	var parsed struct {
		Address struct {
			Country string `json:"country"`
		} `json:"address"`
	}
	if err := json.Unmarshal(billing, &parsed); err != nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(parsed.Address.Country))
}

// mergePaymentMethodConfiguration preserves caller keys and forces card
// details storage on.
func mergePaymentMethodConfiguration(raw json.RawMessage) (map[string]any, error) {
	merged := map[string]any{}
	if trimmed := strings.TrimSpace(string(raw)); trimmed != "" && trimmed != "null" {
		if err := json.Unmarshal(raw, &merged); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidInput, "payment_method_configuration must be an object", err)
		}
		if merged == nil {
			merged = map[string]any{}
		}
	}
	card, _ := merged["card"].(map[string]any)
	if card == nil {
		card = map[string]any{}
	}
	card["store_payment_details"] = "enabled"
	merged["card"] = card
	return merged, nil
}

// MarshalItems encodes order lines for SessionInput.Items.
func MarshalItems(items []Item) (json.RawMessage, error) {
	if items == nil {
		items = []Item{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return encoded, nil
}
