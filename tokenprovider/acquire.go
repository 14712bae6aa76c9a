package tokenprovider

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// acquire requests a fresh token from the authorization server. The request
// body is the URL-encoded form built from the configured request parameters;
// the response body is decoded and run through the field mapper. Callers hold
// the provider's write lock, which is what keeps acquisition single-flight.
func (p *Provider) acquire(ctx context.Context, cfg *Config) (*Token, error) {
	form := url.Values{}
	for key, value := range cfg.RequestParameters {
		form.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.AuthorizationServerURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// The body may carry server-side diagnostics; log it, but keep it
		// out of the returned error.
		if p.logger != nil {
			p.logger.Printf("tokenprovider: token request failed [HTTP %d], response:\n%s", resp.StatusCode, body)
		}
		return nil, &TokenRequestError{StatusCode: resp.StatusCode}
	}

	if p.logger != nil {
		p.logger.Printf("tokenprovider: access token retrieved [HTTP %d]", resp.StatusCode)
	}

	raw, err := decodeTokenResponse(body)
	if err != nil {
		return nil, err
	}

	return mapResponse(raw, cfg.Mapping, p.now())
}
