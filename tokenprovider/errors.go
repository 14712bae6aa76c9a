package tokenprovider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotEnabled is returned by GetToken when the provider has no active
// configuration, either because Enable was never called or because Disable
// cleared it.
var ErrNotEnabled = errors.New("tokenprovider: provider is not enabled")

// ConfigError reports configuration input that cannot be parsed at all, such
// as malformed JSON for the custom parameters or the response mapping. It is
// fatal to enabling the provider and is never retried.
type ConfigError struct {
	// Property is the host-facing property name the bad input arrived under.
	Property string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tokenprovider: invalid %s configuration: %v", e.Property, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError reports a response mapping that parsed as JSON but does not
// cover all required mapping keys. Unlike ConfigError the input is well formed;
// the provider stays disabled until the mapping is corrected.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "tokenprovider: response mapping is missing required keys: " + strings.Join(e.Missing, ", ")
}

// TransportError wraps a network-level failure while contacting the
// authorization server. The request may or may not have reached the server.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tokenprovider: token request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TokenRequestError reports a non-2xx response from the authorization server.
// The response body is logged at error level but deliberately not carried
// here, so it cannot leak through error messages.
type TokenRequestError struct {
	StatusCode int
}

func (e *TokenRequestError) Error() string {
	return fmt.Sprintf("tokenprovider: token request failed [HTTP %d]", e.StatusCode)
}

// ParseError reports a token response that could not be converted into a
// Token: a body that is not a JSON object, a mapped source field absent from
// the response, or a non-numeric lifetime value.
type ParseError struct {
	// Field is the response key involved, when one can be named.
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return "tokenprovider: invalid token response: " + e.Reason
	}
	return fmt.Sprintf("tokenprovider: invalid token response field %q: %s", e.Field, e.Reason)
}
