package httpclient

import (
	"fmt"
	"net/http"

	"github.com/flexauth/go-flexauth/tokenprovider"
)

// Transport is an http.RoundTripper that automatically adds the provider's
// bearer token to outgoing HTTP requests.
//
// It wraps an existing transport (typically http.DefaultTransport) and
// injects the Authorization header before each request.
type Transport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Provider supplies the access tokens.
	Provider *tokenprovider.Provider
}

// RoundTrip implements http.RoundTripper. It obtains a valid token from the
// provider and adds it as "Authorization: Bearer <token>" before delegating
// to the base transport. The token request respects the request context's
// cancellation and deadline.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Provider == nil {
		return nil, fmt.Errorf("httpclient: Provider is nil")
	}

	token, err := t.Provider.GetToken(req.Context())
	if err != nil {
		return nil, fmt.Errorf("httpclient: failed to get token: %w", err)
	}

	// Clone the request to avoid modifying the original.
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", "Bearer "+token.AccessToken)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(reqClone)
}

// NewTransport creates a Transport with the given provider. The base
// transport defaults to http.DefaultTransport if not specified.
func NewTransport(provider *tokenprovider.Provider, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &Transport{
		Base:     base,
		Provider: provider,
	}
}
