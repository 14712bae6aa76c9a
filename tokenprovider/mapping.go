package tokenprovider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Mapping keys expected in a response mapping document. The access-token
// field is configured under "accessDetails"; that is the property name hosts
// have always used, so it stays even though the Token field is AccessToken.
const (
	mappingKeyAccessToken  = "accessDetails"
	mappingKeyRefreshToken = "refreshToken"
	mappingKeyTokenType    = "tokenType"
	mappingKeyExpiresIn    = "expiresIn"
	mappingKeyScopes       = "scopes"
)

var requiredMappingKeys = []string{
	mappingKeyAccessToken,
	mappingKeyRefreshToken,
	mappingKeyTokenType,
	mappingKeyExpiresIn,
	mappingKeyScopes,
}

// Response keys used when no mapping is configured.
const (
	responseKeyAccessToken  = "access_token"
	responseKeyRefreshToken = "refresh_token"
	responseKeyTokenType    = "token_type"
	responseKeyExpiresIn    = "expires_in"
	responseKeyScopes       = "scopes"
	responseKeyScope        = "scope"
)

// FieldMapping translates each canonical token field to the key the
// authorization server actually uses in its response. An empty source key
// marks the field as intentionally absent: it stays unset instead of being
// looked up.
type FieldMapping struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    string
	Scopes       string
}

// ValidationResult is the outcome of validating a response mapping document.
type ValidationResult struct {
	Valid       bool
	Explanation string
}

// ValidateMapping checks a response mapping document before the provider is
// enabled. Malformed JSON is a hard *ConfigError; well-formed input that does
// not cover all required mapping keys yields Valid=false with an explanation.
func ValidateMapping(input string) (ValidationResult, error) {
	raw, err := decodeMappingDocument(input)
	if err != nil {
		return ValidationResult{}, err
	}

	if missing := missingMappingKeys(raw); len(missing) > 0 {
		return ValidationResult{
			Valid:       false,
			Explanation: fmt.Sprintf("missing required keys: %v", missing),
		}, nil
	}

	return ValidationResult{Valid: true, Explanation: "all keys validated"}, nil
}

// ParseFieldMapping builds a FieldMapping from a mapping document, enforcing
// the same rules as ValidateMapping. Incomplete documents fail with a
// *ValidationError so the caller can distinguish them from malformed input.
func ParseFieldMapping(input string) (*FieldMapping, error) {
	raw, err := decodeMappingDocument(input)
	if err != nil {
		return nil, err
	}

	if missing := missingMappingKeys(raw); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	return &FieldMapping{
		AccessToken:  raw[mappingKeyAccessToken],
		RefreshToken: raw[mappingKeyRefreshToken],
		TokenType:    raw[mappingKeyTokenType],
		ExpiresIn:    raw[mappingKeyExpiresIn],
		Scopes:       raw[mappingKeyScopes],
	}, nil
}

func decodeMappingDocument(input string) (map[string]string, error) {
	var raw map[string]string
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return nil, &ConfigError{Property: "responseMapping", Err: err}
	}
	return raw, nil
}

func missingMappingKeys(raw map[string]string) []string {
	var missing []string
	for _, key := range requiredMappingKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// decodeTokenResponse parses a token response body as a flat JSON object.
// Numbers are kept as json.Number so large lifetimes survive untruncated.
func decodeTokenResponse(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Reason: "body is not a JSON object: " + err.Error()}
	}
	return raw, nil
}

// mapResponse converts a decoded token response into a Token, either through
// the configured field mapping or through the canonical snake_case schema.
// It is a pure transform; issuedAt is the only outside input.
func mapResponse(raw map[string]any, mapping *FieldMapping, issuedAt time.Time) (*Token, error) {
	if mapping != nil {
		return mapWithFieldMapping(raw, mapping, issuedAt)
	}
	return mapCanonical(raw, issuedAt)
}

// mapCanonical binds the standard snake_case response keys. Unknown extra
// fields are ignored and absent fields stay unset; only a non-numeric
// lifetime is an error.
func mapCanonical(raw map[string]any, issuedAt time.Time) (*Token, error) {
	token := &Token{IssuedAt: issuedAt}

	token.AccessToken = stringField(raw, responseKeyAccessToken)
	token.RefreshToken = stringField(raw, responseKeyRefreshToken)
	token.TokenType = stringField(raw, responseKeyTokenType)

	token.Scopes = stringField(raw, responseKeyScopes)
	if token.Scopes == "" {
		token.Scopes = stringField(raw, responseKeyScope)
	}

	if value, ok := raw[responseKeyExpiresIn]; ok {
		seconds, err := numericValue(responseKeyExpiresIn, value)
		if err != nil {
			return nil, err
		}
		token.ExpiresIn = &seconds
	}

	return token, nil
}

// mapWithFieldMapping binds each canonical field through its configured
// source key. A configured key that is absent from the response is an error:
// a half-populated token must never be returned silently.
func mapWithFieldMapping(raw map[string]any, mapping *FieldMapping, issuedAt time.Time) (*Token, error) {
	token := &Token{IssuedAt: issuedAt}

	var err error
	if token.AccessToken, err = mappedString(raw, mapping.AccessToken); err != nil {
		return nil, err
	}
	if token.RefreshToken, err = mappedString(raw, mapping.RefreshToken); err != nil {
		return nil, err
	}
	if token.TokenType, err = mappedString(raw, mapping.TokenType); err != nil {
		return nil, err
	}
	if token.Scopes, err = mappedString(raw, mapping.Scopes); err != nil {
		return nil, err
	}

	if mapping.ExpiresIn != "" {
		value, ok := raw[mapping.ExpiresIn]
		if !ok {
			return nil, &ParseError{Field: mapping.ExpiresIn, Reason: "mapped field missing from response"}
		}
		seconds, err := numericValue(mapping.ExpiresIn, value)
		if err != nil {
			return nil, err
		}
		token.ExpiresIn = &seconds
	}

	return token, nil
}

func mappedString(raw map[string]any, sourceKey string) (string, error) {
	if sourceKey == "" {
		return "", nil
	}
	value, ok := raw[sourceKey]
	if !ok {
		return "", &ParseError{Field: sourceKey, Reason: "mapped field missing from response"}
	}
	return stringValue(value), nil
}

func stringField(raw map[string]any, key string) string {
	value, ok := raw[key]
	if !ok {
		return ""
	}
	return stringValue(value)
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func numericValue(key string, value any) (int64, error) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, &ParseError{Field: key, Reason: "not an integer: " + v.String()}
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, &ParseError{Field: key, Reason: "not an integer: " + v}
		}
		return n, nil
	default:
		return 0, &ParseError{Field: key, Reason: fmt.Sprintf("not an integer: %v", value)}
	}
}
