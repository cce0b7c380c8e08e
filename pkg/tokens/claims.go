package tokens

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	ClaimSubject    = "sub"
	ClaimUserID     = "uid"
	ClaimExpiration = "exp"
)

// Claims is a decoded token payload. Numbers are held as json.Number so
// integer claims survive without float rounding.
type Claims map[string]any

// ParseClaims splits a token, decodes its payload segment and parses the
// claim set. It does not look at the signature. Failures wrap
// ErrNotThreeParts, ErrInvalidEncoding or ErrMalformedPayload.
func ParseClaims(tokenStr string) (Claims, error) {
	_, encClaims, _, err := splitToken(tokenStr)
	if err != nil {
		return nil, err
	}
	payload, err := decodeSegment(encClaims)
	if err != nil {
		return nil, err
	}
	return parseClaims(payload)
}

func parseClaims(payload []byte) (Claims, error) {
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("%w: payload is not utf-8", errMalformedPayload)
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var claims Claims
	if err := decoder.Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedPayload, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is not an object", errMalformedPayload)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after payload", errMalformedPayload)
	}
	return claims, nil
}

// StringClaim returns a string claim. A missing or null claim is
// ErrMissingClaim, a claim of another type is ErrMalformedPayload.
func (c Claims) StringClaim(name string) (string, error) {
	value, err := c.lookup(name)
	if err != nil {
		return "", err
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: claim %q is not a string", errMalformedPayload, name)
	}
	return str, nil
}

// Int64Claim returns an integer claim, with the same error rules as StringClaim.
func (c Claims) Int64Claim(name string) (int64, error) {
	value, err := c.lookup(name)
	if err != nil {
		return 0, err
	}
	num, ok := value.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: claim %q is not a number", errMalformedPayload, name)
	}
	i, err := num.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: claim %q is not an integer", errMalformedPayload, name)
	}
	return i, nil
}

func (c Claims) lookup(name string) (any, error) {
	value, ok := c[name]
	if !ok || value == nil {
		return nil, fmt.Errorf("%w: %s", errMissingClaim, name)
	}
	return value, nil
}
