package tokenprovider

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is an access token issued by the authorization server, normalized to
// the canonical field set regardless of the server's response schema.
//
// A Token is never mutated after construction; a refresh always produces a
// brand-new value.
type Token struct {
	AccessToken  string
	RefreshToken string
	TokenType    string

	// ExpiresIn is the lifetime in seconds reported by the server, counted
	// from IssuedAt. Nil when the server reported none.
	ExpiresIn *int64

	Scopes string

	// IssuedAt is stamped when the response is received, not parsed from it.
	IssuedAt time.Time
}

// ExpiresAt returns the absolute instant the token expires. When the server
// reported no lifetime, a JWT access token's exp claim is used instead. The
// second return is false when no expiry is known at all; such tokens are
// never served from cache.
func (t *Token) ExpiresAt() (time.Time, bool) {
	if t.ExpiresIn != nil {
		return t.IssuedAt.Add(time.Duration(*t.ExpiresIn) * time.Second), true
	}
	return t.jwtExpiry()
}

// usable reports whether the token can still be served at the given instant.
func (t *Token) usable(now time.Time) bool {
	if t == nil {
		return false
	}
	expiresAt, ok := t.ExpiresAt()
	if !ok {
		return false
	}
	return now.Before(expiresAt)
}

// jwtExpiry extracts the exp claim from a JWT access token. The token is
// parsed without signature verification: the claim only drives cache policy,
// it is never a trust decision.
func (t *Token) jwtExpiry() (time.Time, bool) {
	if t.AccessToken == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, &claims); err != nil {
		return time.Time{}, false
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}
