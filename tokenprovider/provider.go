package tokenprovider

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"
)

// Logger is an interface for optional logging in Provider.
// Implementations can log token acquisition events if desired.
type Logger interface {
	Printf(format string, args ...any)
}

// Provider acquires, caches and re-acquires access tokens from an
// authorization server. It is safe for concurrent use: at most one token
// request is in flight at a time, and all concurrent callers observe the
// token that request produced.
//
// A Provider starts disabled. Enable installs the configuration; GetToken
// before Enable fails with ErrNotEnabled.
type Provider struct {
	mu     sync.RWMutex
	config *Config
	token  *Token

	httpClient   *http.Client
	logger       Logger
	expiryLeeway time.Duration
	now          func() time.Time
}

// Option is a functional option for configuring Provider.
type Option func(*Provider)

// WithLogger sets a custom logger for token acquisition events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
// This is a convenience option that sets the logger to log.Default().
func WithLoggingEnabled() Option {
	return func(p *Provider) {
		p.logger = log.Default()
	}
}

// WithHTTPClient sets the HTTP client used for token requests. Transport
// timeouts are whatever this client enforces; the provider adds none of its
// own. Defaults to http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithExpiryLeeway makes the provider re-acquire a token that close to its
// expiry, trading extra requests for never serving a near-expired credential.
// Default is zero: a token is served until the exact expiry instant.
func WithExpiryLeeway(leeway time.Duration) Option {
	return func(p *Provider) {
		p.expiryLeeway = leeway
	}
}

// NewProvider creates a disabled Provider. Call Enable with a parsed Config
// before requesting tokens.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		httpClient: http.DefaultClient,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Enable installs the configuration for subsequent GetToken calls. Any token
// cached from a previous enable cycle is dropped, so the first access after
// Enable always contacts the authorization server.
func (p *Provider) Enable(cfg *Config) error {
	if cfg == nil {
		return errors.New("tokenprovider: nil config")
	}
	if err := validateServerURL(cfg.AuthorizationServerURL); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.config = cfg
	p.token = nil

	return nil
}

// Disable clears the configuration and the cached token. GetToken fails with
// ErrNotEnabled until the provider is enabled again.
func (p *Provider) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.config = nil
	p.token = nil
}

// GetToken returns the cached token while it is still valid and otherwise
// requests a fresh one, blocking the caller for the duration of the request.
// Concurrent callers on a cold or expired cache share a single request. A
// failed acquisition leaves the cache untouched and is reported to the
// caller; the next call simply retries.
func (p *Provider) GetToken(ctx context.Context) (*Token, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Fast path: serve the cached token without the write lock.
	p.mu.RLock()
	if p.config != nil && p.token.usable(p.deadline()) {
		token := p.token
		p.mu.RUnlock()
		return token, nil
	}
	enabled := p.config != nil
	p.mu.RUnlock()

	if !enabled {
		return nil, ErrNotEnabled
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring the write lock: another goroutine may
	// have refreshed the token, or Disable may have run, while we waited.
	if p.config == nil {
		return nil, ErrNotEnabled
	}
	if p.token.usable(p.deadline()) {
		return p.token, nil
	}

	token, err := p.acquire(ctx, p.config)
	if err != nil {
		return nil, err
	}

	p.token = token

	return token, nil
}

// deadline is the instant a token must still be valid at to be served.
func (p *Provider) deadline() time.Time {
	return p.now().Add(p.expiryLeeway)
}
