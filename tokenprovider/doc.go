// Package tokenprovider implements a reusable OAuth2 access-token provider
// for servers with arbitrary token-response schemas.
//
// It acquires a bearer token from a configured token endpoint, caches it, and
// lazily re-acquires a fresh one once the cached token expires. The token
// request is a plain URL-encoded POST built from caller-supplied form
// parameters, so it works with any client-credentials-style endpoint. Servers
// that answer with non-standard field names are handled through a validated
// response mapping that translates their keys onto the canonical token
// fields.
//
// # Features
//
//   - Lazy acquire/cache/re-acquire lifecycle with single-flight acquisition
//   - Canonical snake_case response parsing or caller-supplied field mapping
//   - Expiry from expires_in, with a fallback to a JWT access token's exp claim
//   - Enable/Disable lifecycle hooks for host-driven configuration
//   - oauth2.TokenSource adapter and gRPC client interceptors
//   - Optional logging (WithLogger, WithLoggingEnabled)
//
// # Quick Start
//
//	cfg, err := tokenprovider.ParseConfig(
//	    "https://auth.example.com/oauth/v2/token",
//	    `{"grant_type":"client_credentials","client_id":"id","client_secret":"secret"}`,
//	    "", // canonical response schema
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	provider := tokenprovider.NewProvider(tokenprovider.WithLoggingEnabled())
//	if err := provider.Enable(cfg); err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := provider.GetToken(ctx)
//
// # Notes
//
//   - GetToken is safe for concurrent use; a cold cache triggers exactly one
//     token request no matter how many callers are waiting.
//   - Acquisition failures are returned to the caller and never retried
//     internally; the cache is left untouched.
//   - A response without any known lifetime is treated as already expired, so
//     every access re-acquires rather than serving a possibly stale token.
package tokenprovider
