// Package web parses web command flags and composes the HTTP service.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/saasify/internal/ledger"
	redisledger "github.com/louisbranch/saasify/internal/ledger/redis"
	sqliteledger "github.com/louisbranch/saasify/internal/ledger/sqlite"
	"github.com/louisbranch/saasify/internal/payments"
	entrypoint "github.com/louisbranch/saasify/internal/platform/cmd"
	"github.com/louisbranch/saasify/internal/platform/logging"
	"github.com/louisbranch/saasify/internal/scriptproxy"
	"github.com/louisbranch/saasify/internal/services/web"
	module "github.com/louisbranch/saasify/internal/services/web/module"
)

// Ledger backends.
const (
	LedgerMemory = "memory"
	LedgerSQLite = "sqlite"
	LedgerRedis  = "redis"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr              string `env:"SAASIFY_WEB_HTTP_ADDR"             envDefault:"localhost:3000"`
	PublicBaseURL         string `env:"SAASIFY_WEB_PUBLIC_BASE_URL"`
	TrustForwardedHeaders bool   `env:"SAASIFY_WEB_TRUST_FORWARDED_HEADERS" envDefault:"false"`

	ProviderBaseURL      string        `env:"SAASIFY_PROVIDER_BASE_URL"        envDefault:"https://api.sandbox.checkout.com"`
	ProviderSecretKey    string        `env:"SAASIFY_PROVIDER_SECRET_KEY"`
	ProviderPublicKey    string        `env:"SAASIFY_PROVIDER_PUBLIC_KEY"`
	ProviderEnvironment  string        `env:"SAASIFY_PROVIDER_ENVIRONMENT"     envDefault:"sandbox"`
	ProviderChannelID    string        `env:"SAASIFY_PROVIDER_CHANNEL_ID"`
	ProviderAltChannelID string        `env:"SAASIFY_PROVIDER_ALT_CHANNEL_ID"`
	ProviderTimeout      time.Duration `env:"SAASIFY_PROVIDER_TIMEOUT"         envDefault:"10s"`

	FlowScriptURL     string        `env:"SAASIFY_FLOW_SCRIPT_URL"     envDefault:"https://checkout-web-components.checkout.com/index.js"`
	ScriptUpstreamURL string        `env:"SAASIFY_SCRIPT_UPSTREAM_URL" envDefault:"https://cdn.checkout.com/web-components/v2.0/flow/web-components-flow.js"`
	ScriptAttempts    uint          `env:"SAASIFY_SCRIPT_ATTEMPTS"     envDefault:"3"`
	ScriptCacheTTL    time.Duration `env:"SAASIFY_SCRIPT_CACHE_TTL"    envDefault:"1h"`
	ScriptFallback    bool          `env:"SAASIFY_SCRIPT_FALLBACK"     envDefault:"true"`

	LedgerBackend    string        `env:"SAASIFY_LEDGER_BACKEND"     envDefault:"memory"`
	LedgerSQLitePath string        `env:"SAASIFY_LEDGER_SQLITE_PATH" envDefault:"data/ledger.db"`
	LedgerRedisURL   string        `env:"SAASIFY_LEDGER_REDIS_URL"`
	LedgerTTL        time.Duration `env:"SAASIFY_LEDGER_TTL"         envDefault:"24h"`

	LogLevel  string `env:"SAASIFY_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"SAASIFY_LOG_FORMAT" envDefault:"json"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.PublicBaseURL, "public-base-url", cfg.PublicBaseURL, "public origin used for provider redirect URLs")
	fs.BoolVar(&cfg.TrustForwardedHeaders, "trust-forwarded-headers", cfg.TrustForwardedHeaders, "honor X-Forwarded-Proto and X-Forwarded-Host")
	fs.StringVar(&cfg.ProviderBaseURL, "provider-base-url", cfg.ProviderBaseURL, "payment provider API base URL")
	fs.StringVar(&cfg.ProviderEnvironment, "provider-environment", cfg.ProviderEnvironment, "payment provider environment (sandbox or production)")
	fs.DurationVar(&cfg.ProviderTimeout, "provider-timeout", cfg.ProviderTimeout, "payment provider request timeout")
	fs.StringVar(&cfg.ScriptUpstreamURL, "script-upstream-url", cfg.ScriptUpstreamURL, "flow script upstream URL")
	fs.BoolVar(&cfg.ScriptFallback, "script-fallback", cfg.ScriptFallback, "serve the fallback script when upstream fails")
	fs.StringVar(&cfg.LedgerBackend, "ledger-backend", cfg.LedgerBackend, "ledger backend (memory, sqlite or redis)")
	fs.StringVar(&cfg.LedgerSQLitePath, "ledger-sqlite-path", cfg.LedgerSQLitePath, "sqlite ledger file path")
	fs.StringVar(&cfg.LedgerRedisURL, "ledger-redis-url", cfg.LedgerRedisURL, "redis ledger URL")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (json or console)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot start the service.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ProviderSecretKey) == "" {
		return errors.New("SAASIFY_PROVIDER_SECRET_KEY is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.LedgerBackend)) {
	case LedgerMemory:
	case LedgerSQLite:
		if strings.TrimSpace(c.LedgerSQLitePath) == "" {
			return errors.New("ledger sqlite path is required")
		}
	case LedgerRedis:
		if strings.TrimSpace(c.LedgerRedisURL) == "" {
			return errors.New("ledger redis url is required")
		}
	default:
		return fmt.Errorf("unsupported ledger backend %q", c.LedgerBackend)
	}
	return nil
}

// Run builds the web service and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Format:  logging.Format(cfg.LogFormat),
		Service: entrypoint.ServiceWeb,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		store, err := OpenLedger(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("close ledger", zap.Error(err))
			}
		}()

		client, err := payments.NewClient(payments.Config{
			BaseURL:   cfg.ProviderBaseURL,
			SecretKey: cfg.ProviderSecretKey,
			Timeout:   cfg.ProviderTimeout,
		})
		if err != nil {
			return fmt.Errorf("init payment client: %w", err)
		}

		server, err := web.NewServer(ctx, serverConfig(cfg, client, store, logger))
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		logger.Info("starting web service",
			zap.String("addr", server.Addr()),
			zap.String("ledger", cfg.LedgerBackend),
			zap.String("provider", cfg.ProviderBaseURL),
			zap.String("environment", cfg.ProviderEnvironment),
		)
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config, client module.PaymentGateway, store ledger.Store, logger *zap.Logger) web.Config {
	return web.Config{
		HTTPAddr:              cfg.HTTPAddr,
		PublicBaseURL:         cfg.PublicBaseURL,
		TrustForwardedHeaders: cfg.TrustForwardedHeaders,
		Payments:              client,
		Ledger:                store,
		Scripts: scriptproxy.New(scriptproxy.Config{
			UpstreamURL:     cfg.ScriptUpstreamURL,
			Attempts:        cfg.ScriptAttempts,
			CacheTTL:        cfg.ScriptCacheTTL,
			DisableFallback: !cfg.ScriptFallback,
			Logger:          logger,
		}),
		Channels: payments.Channels{
			Default:     cfg.ProviderChannelID,
			Alternative: cfg.ProviderAltChannelID,
		},
		Checkout: module.CheckoutSettings{
			PublicKey:     cfg.ProviderPublicKey,
			Environment:   cfg.ProviderEnvironment,
			FlowScriptURL: cfg.FlowScriptURL,
		},
		Logger: logger,
	}
}

// OpenLedger opens the configured ledger backend.
func OpenLedger(ctx context.Context, cfg Config) (ledger.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LedgerBackend)) {
	case "", LedgerMemory:
		return ledger.NewMemoryStore(cfg.LedgerTTL), nil
	case LedgerSQLite:
		return sqliteledger.Open(ctx, cfg.LedgerSQLitePath, cfg.LedgerTTL)
	case LedgerRedis:
		return redisledger.Open(ctx, cfg.LedgerRedisURL, cfg.LedgerTTL)
	default:
		return nil, fmt.Errorf("unsupported ledger backend %q", cfg.LedgerBackend)
	}
}
