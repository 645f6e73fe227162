// Package web hosts the SaaSify browser-facing HTTP service: marketing pages,
// checkout pages and the payment relay API.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/louisbranch/saasify/internal/ledger"
	"github.com/louisbranch/saasify/internal/payments"
	"github.com/louisbranch/saasify/internal/platform/logging"
	"github.com/louisbranch/saasify/internal/platform/timeouts"
	webapp "github.com/louisbranch/saasify/internal/services/web/app"
	module "github.com/louisbranch/saasify/internal/services/web/module"
	"github.com/louisbranch/saasify/internal/services/web/modules"
	"github.com/louisbranch/saasify/internal/services/web/platform/httpx"
	"github.com/louisbranch/saasify/internal/services/web/platform/observability"
	"github.com/louisbranch/saasify/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/saasify/internal/services/web/platform/visitorcookie"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	// PublicBaseURL overrides the request-derived origin used for provider
	// redirect URLs.
	PublicBaseURL         string
	TrustForwardedHeaders bool
	Payments              module.PaymentGateway
	Ledger                ledger.Store
	Scripts               module.ScriptSource
	Channels              payments.Channels
	Checkout              module.CheckoutSettings
	Logger                *zap.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := logging.OrNop(cfg.Logger)
	policy := requestmeta.SchemePolicy{TrustForwardedHeaders: cfg.TrustForwardedHeaders}
	deps := module.Dependencies{
		Payments:      cfg.Payments,
		Ledger:        cfg.Ledger,
		Scripts:       cfg.Scripts,
		Channels:      cfg.Channels,
		Checkout:      cfg.Checkout,
		PublicBaseURL: strings.TrimSpace(cfg.PublicBaseURL),
		SchemePolicy:  policy,
		Logger:        logger,
	}
	root, err := webapp.Compose(webapp.ComposeInput{
		PageModules:         modules.DefaultPageModules(deps),
		APIModules:          modules.DefaultAPIModules(deps),
		RequestSchemePolicy: policy,
	})
	if err != nil {
		return nil, err
	}
	chained := httpx.Chain(root,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		visitorcookie.Middleware(policy, routepath.ProxyPrefix, routepath.StaticPrefix),
		observability.RequestLogger(logger),
	)
	return otelhttp.NewHandler(chained, "saasify.web"), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		logger: logging.OrNop(cfg.Logger),
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("web server listening", zap.String("addr", s.httpAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
