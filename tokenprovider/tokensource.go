package tokenprovider

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// TokenSource adapts the provider to the golang.org/x/oauth2 TokenSource
// interface so it can plug into oauth2.Transport, oauth2.NewClient and the
// gRPC credential helpers. The context is used for every underlying token
// request the source triggers.
func (p *Provider) TokenSource(ctx context.Context) oauth2.TokenSource {
	if ctx == nil {
		ctx = context.Background()
	}
	return &tokenSource{ctx: ctx, provider: p}
}

type tokenSource struct {
	ctx      context.Context
	provider *Provider
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	token, err := s.provider.GetToken(s.ctx)
	if err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("tokenprovider: token response carried no access token")
	}

	out := &oauth2.Token{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
	}
	if expiresAt, ok := token.ExpiresAt(); ok {
		out.Expiry = expiresAt
	}

	return out, nil
}
