package httpclient

import (
	"errors"
	"net/http"
	"time"

	"github.com/flexauth/go-flexauth/tokenprovider"
)

// Builder provides a fluent interface for constructing HTTP clients that
// authenticate through a token provider.
type Builder struct {
	provider        *tokenprovider.Provider
	timeout         time.Duration
	baseTransport   http.RoundTripper
	followRedirects bool
}

// NewBuilder creates a new HTTP client builder.
func NewBuilder() *Builder {
	return &Builder{
		timeout:         30 * time.Second,
		followRedirects: true,
	}
}

// WithProvider sets the token provider used for automatic authentication.
func (b *Builder) WithProvider(provider *tokenprovider.Provider) *Builder {
	b.provider = provider
	return b
}

// WithTimeout sets the request timeout for the HTTP client.
// Default is 30 seconds if not specified.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// WithBaseTransport sets a custom base transport. This is the place to hang
// TLS settings, proxies or a custom connection pool; the builder wraps it
// with the token-injecting transport unchanged.
func (b *Builder) WithBaseTransport(transport http.RoundTripper) *Builder {
	b.baseTransport = transport
	return b
}

// WithoutRedirects disables automatic redirect following.
func (b *Builder) WithoutRedirects() *Builder {
	b.followRedirects = false
	return b
}

// Build constructs the HTTP client with the configured options.
func (b *Builder) Build() (*http.Client, error) {
	if b.provider == nil {
		return nil, errors.New("httpclient: a token provider is required")
	}

	client := &http.Client{
		Transport: NewTransport(b.provider, b.baseTransport),
		Timeout:   b.timeout,
	}

	if !b.followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return client, nil
}

// NewHTTPClient is a convenience function that creates an HTTP client
// authenticating through the given provider with default settings. For more
// configuration options, use Builder instead.
//
// Example:
//
//	provider := tokenprovider.NewProvider()
//	// ... Enable with a parsed Config ...
//	client := httpclient.NewHTTPClient(provider)
//	resp, err := client.Get("https://api.example.com/data")
func NewHTTPClient(provider *tokenprovider.Provider) *http.Client {
	return &http.Client{
		Transport: NewTransport(provider, nil),
		Timeout:   30 * time.Second,
	}
}
