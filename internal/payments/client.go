// Package payments talks to the hosted payment provider's REST API.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
	"github.com/louisbranch/saasify/internal/platform/timeouts"
)

// DefaultBaseURL is the provider sandbox API.
const DefaultBaseURL = "https://api.sandbox.checkout.com"

// maxResponseBytes caps provider response bodies.
const maxResponseBytes = 1 << 20

// Config configures a provider Client.
type Config struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client calls the provider API with the server-side secret key.
type Client struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
}

// UpstreamError is a non-2xx provider response.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("payment provider returned status %d", e.StatusCode)
}

// NewClient builds a Client. A nil HTTPClient gets an instrumented default.
func NewClient(cfg Config) (*Client, error) {
	rawBase := strings.TrimSpace(cfg.BaseURL)
	if rawBase == "" {
		rawBase = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(rawBase, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid provider base url %q", rawBase)
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("provider secret key is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = timeouts.ProviderRequest
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{baseURL: base, secretKey: strings.TrimSpace(cfg.SecretKey), httpClient: httpClient}, nil
}

// CreatePaymentSession creates a hosted payment session and returns the
// provider's JSON response.
func (c *Client) CreatePaymentSession(ctx context.Context, req SessionRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode session request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/payment-sessions", body)
}

// GetPaymentSession fetches one payment session.
func (c *Client) GetPaymentSession(ctx context.Context, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.E(apperrors.KindInvalidInput, "Session ID is required")
	}
	return c.do(ctx, http.MethodGet, "/payment-sessions/"+url.PathEscape(id), nil)
}

// GetPayment fetches one payment.
func (c *Client) GetPayment(ctx context.Context, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.E(apperrors.KindInvalidInput, "Payment ID is required")
	}
	return c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL.String() + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, fmt.Sprintf("%s %s: provider request failed", method, path), err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "read provider response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: payload}
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(payload) {
		return nil, apperrors.E(apperrors.KindUpstream, "provider returned invalid JSON")
	}
	return json.RawMessage(payload), nil
}

// ErrorDetails returns the most useful description of a provider failure:
// the upstream JSON body when there is one, else the error message.
func ErrorDetails(err error) any {
	if err == nil {
		return nil
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		trimmed := bytes.TrimSpace(upstream.Body)
		switch {
		case len(trimmed) > 0 && json.Valid(trimmed):
			return json.RawMessage(trimmed)
		case len(trimmed) > 0:
			return string(trimmed)
		}
	}
	return err.Error()
}
