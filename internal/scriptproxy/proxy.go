// Package scriptproxy fetches the payment provider's browser script on behalf
// of the checkout page, with retries, an in-memory cache and a local fallback.
package scriptproxy

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
	"github.com/louisbranch/saasify/internal/platform/logging"
	platformotel "github.com/louisbranch/saasify/internal/platform/otel"
	"github.com/louisbranch/saasify/internal/platform/timeouts"
)

const (
	// DefaultUpstreamURL is the provider's flow component bundle.
	DefaultUpstreamURL = "https://cdn.checkout.com/web-components/v2.0/flow/web-components-flow.js"
	// UserAgent identifies the proxy to the provider CDN.
	UserAgent = "Mozilla/5.0 (compatible; SaaSify/1.0)"

	DefaultAttempts  uint = 3
	DefaultBaseDelay      = 200 * time.Millisecond
	DefaultMaxDelay       = 2 * time.Second
	DefaultCacheTTL       = time.Hour

	maxScriptBytes = 8 << 20
)

//go:embed fallback.js
var fallbackScript []byte

// FallbackScript returns the embedded stand-in script.
func FallbackScript() []byte {
	return append([]byte(nil), fallbackScript...)
}

// Source says where a served script came from.
type Source string

const (
	SourceUpstream Source = "upstream"
	SourceCache    Source = "cache"
	SourceStale    Source = "stale"
	SourceFallback Source = "fallback"
)

// Script is a script body and its origin.
type Script struct {
	Body   []byte
	Source Source
}

// Config configures a Proxy. Zero values take the package defaults.
type Config struct {
	UpstreamURL string
	Attempts    uint
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	CacheTTL    time.Duration
	// DisableFallback makes exhausted retries an error instead of serving
	// the embedded script.
	DisableFallback bool
	HTTPClient      *http.Client
	Logger          *zap.Logger
}

// StatusError is a non-2xx upstream response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch script: upstream status %d", e.StatusCode)
}

// Retryable reports whether another attempt may succeed.
func (e *StatusError) Retryable() bool {
	if e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode >= 500 || e.StatusCode < 400
}

// Proxy serves the provider script.
type Proxy struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
	group  singleflight.Group

	mu        sync.RWMutex
	cached    []byte
	fetchedAt time.Time
}

// New builds a Proxy from cfg.
func New(cfg Config) *Proxy {
	if strings.TrimSpace(cfg.UpstreamURL) == "" {
		cfg.UpstreamURL = DefaultUpstreamURL
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = DefaultAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Proxy{
		cfg:    cfg,
		client: client,
		logger: logging.OrNop(cfg.Logger).Named("scriptproxy"),
		now:    time.Now,
	}
}

// Fetch returns the script, preferring a fresh cache entry, then upstream,
// then a stale cache entry, then the embedded fallback.
func (p *Proxy) Fetch(ctx context.Context) (Script, error) {
	if body, ok := p.fresh(); ok {
		return Script{Body: body, Source: SourceCache}, nil
	}

	// The shared fetch must not die with whichever caller started it.
	shared := context.WithoutCancel(ctx)
	led := false
	value, err, _ := p.group.Do("script", func() (any, error) {
		led = true
		return p.load(shared)
	})
	if err == nil {
		script := value.(Script)
		if !led {
			// Callers that joined another flight were served from its result.
			script.Source = SourceCache
		}
		return script, nil
	}

	p.logger.Warn("script upstream failed", zap.String("url", p.cfg.UpstreamURL), zap.Error(err))
	if body, ok := p.stale(); ok {
		return Script{Body: body, Source: SourceStale}, nil
	}
	if p.cfg.DisableFallback {
		return Script{}, apperrors.Wrap(apperrors.KindUnavailable, "Failed to load Checkout.com script", err)
	}
	return Script{Body: fallbackScript, Source: SourceFallback}, nil
}

// load re-checks the cache, then fetches upstream and caches the result.
func (p *Proxy) load(ctx context.Context) (Script, error) {
	if body, ok := p.fresh(); ok {
		return Script{Body: body, Source: SourceCache}, nil
	}
	body, err := p.fetchUpstream(ctx)
	if err != nil {
		return Script{}, err
	}
	p.store(body)
	return Script{Body: body, Source: SourceUpstream}, nil
}

func (p *Proxy) fetchUpstream(ctx context.Context) ([]byte, error) {
	ctx, span := platformotel.Tracer("scriptproxy").Start(ctx, "scriptproxy.fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("script.url", p.cfg.UpstreamURL),
		attribute.Int("script.max_attempts", int(p.cfg.Attempts)),
	)

	var attempts int
	body, err := retry.DoWithData(
		func() ([]byte, error) {
			attempts++
			body, err := p.fetchOnce(ctx)
			var statusErr *StatusError
			if errors.As(err, &statusErr) && !statusErr.Retryable() {
				return nil, retry.Unrecoverable(err)
			}
			return body, err
		},
		retry.Context(ctx),
		retry.Attempts(p.cfg.Attempts),
		retry.Delay(p.cfg.BaseDelay),
		retry.MaxDelay(p.cfg.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Debug("retrying script fetch", zap.Uint("failed_attempt", n+1), zap.Error(err))
		}),
	)
	span.SetAttributes(attribute.Int("script.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "script fetch failed")
		return nil, err
	}
	return body, nil
}

func (p *Proxy) fetchOnce(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.ScriptFetch)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.UpstreamURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("build script request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if len(body) > maxScriptBytes {
		return nil, retry.Unrecoverable(fmt.Errorf("read script: body exceeds %d bytes", maxScriptBytes))
	}
	return body, nil
}

func (p *Proxy) fresh() ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cached == nil || p.cfg.CacheTTL < 0 {
		return nil, false
	}
	if p.now().Sub(p.fetchedAt) >= p.cfg.CacheTTL {
		return nil, false
	}
	return p.cached, true
}

func (p *Proxy) stale() ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cached, p.cached != nil
}

func (p *Proxy) store(body []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = body
	p.fetchedAt = p.now()
}
