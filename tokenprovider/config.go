package tokenprovider

import (
	"encoding/json"
	"errors"
	"net/url"
)

// Config is the provider configuration for one enable cycle. It is built once
// at enable time and treated as immutable afterwards; a re-enable replaces it
// wholesale.
type Config struct {
	// AuthorizationServerURL is the token-issuing endpoint.
	AuthorizationServerURL string

	// RequestParameters are sent as the URL-encoded POST form body of the
	// token request. Hosts configure them under the historical property name
	// "customHeaders", but they are form fields, not HTTP headers.
	RequestParameters map[string]string

	// Mapping translates the server's response keys when the server does not
	// use the canonical snake_case schema. Nil means canonical.
	Mapping *FieldMapping
}

// ParseConfig builds a Config from the raw host-supplied property values.
//
// customParameters must be a JSON object of string to string and is required.
// responseMapping is optional; pass an empty string when the server uses the
// canonical schema. Malformed input fails with a *ConfigError, a well-formed
// mapping with missing keys fails with a *ValidationError.
func ParseConfig(authorizationServerURL, customParameters, responseMapping string) (*Config, error) {
	if err := validateServerURL(authorizationServerURL); err != nil {
		return nil, err
	}

	if customParameters == "" {
		return nil, &ConfigError{Property: "customHeaders", Err: errors.New("value is required")}
	}

	var params map[string]string
	if err := json.Unmarshal([]byte(customParameters), &params); err != nil {
		return nil, &ConfigError{Property: "customHeaders", Err: err}
	}

	cfg := &Config{
		AuthorizationServerURL: authorizationServerURL,
		RequestParameters:      params,
	}

	if responseMapping != "" {
		mapping, err := ParseFieldMapping(responseMapping)
		if err != nil {
			return nil, err
		}
		cfg.Mapping = mapping
	}

	return cfg, nil
}

func validateServerURL(raw string) error {
	if raw == "" {
		return &ConfigError{Property: "authorizationServerUrl", Err: errors.New("value is required")}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigError{Property: "authorizationServerUrl", Err: err}
	}
	if !u.IsAbs() || u.Host == "" {
		return &ConfigError{Property: "authorizationServerUrl", Err: errors.New("URL must be absolute")}
	}
	return nil
}
