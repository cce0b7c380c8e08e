package tokens

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultLifetime is how long a freshly issued identity token stays valid.
	DefaultLifetime = time.Hour

	// MinSecretLength is the shortest signing secret, in bytes, NewSecret accepts.
	MinSecretLength = 32

	separator = "."
)

var (
	errNotThreeParts    = errors.New("token not three parts")
	errInvalidEncoding  = errors.New("token invalid encoding")
	errMalformedPayload = errors.New("token malformed payload")
	errMissingClaim     = errors.New("token missing claim")
	errSecretTooShort   = errors.New("signing secret too short")
	errEmptySubject     = errors.New("subject is empty")
	errEmptyUserID      = errors.New("user id is empty")
)

func ErrNotThreeParts() error    { return errNotThreeParts }
func ErrInvalidEncoding() error  { return errInvalidEncoding }
func ErrMalformedPayload() error { return errMalformedPayload }
func ErrMissingClaim() error     { return errMissingClaim }
func ErrSecretTooShort() error   { return errSecretTooShort }
func ErrEmptySubject() error     { return errEmptySubject }
func ErrEmptyUserID() error      { return errEmptyUserID }

// Clock is the time source used for issuance and expiry checks.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in UTC.
func SystemClock() Clock {
	return ClockFunc(func() time.Time { return time.Now().UTC() })
}

func clockOrSystem(clock Clock) Clock {
	if clock == nil {
		return SystemClock()
	}
	return clock
}

// Secret is the symmetric key shared by the issuer and any party that
// checks signatures. The key bytes are copied in and out so a Secret can't
// be mutated after construction.
type Secret struct {
	key []byte
}

// NewSecret copies key into a Secret. Keys shorter than MinSecretLength
// are rejected with ErrSecretTooShort.
func NewSecret(key []byte) (Secret, error) {
	if len(key) < MinSecretLength {
		return Secret{}, fmt.Errorf("%w: got %d bytes, need at least %d", errSecretTooShort, len(key), MinSecretLength)
	}
	return Secret{key: bytes.Clone(key)}, nil
}

func (s Secret) Bytes() []byte { return bytes.Clone(s.key) }
func (s Secret) IsZero() bool  { return len(s.key) == 0 }

type JWTHeader struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

func newHS256JWTHeader() JWTHeader {
	return JWTHeader{
		Algorithm: "HS256",
		Type:      "JWT",
	}
}

func buildMessage(encHeader string, encClaims string) string {
	return encHeader + separator + encClaims
}

func signMessage(message string, secret Secret) string {
	mac := hmac.New(sha256.New, secret.key)
	mac.Write([]byte(message))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encodeJWTSection[T any](section T) (string, error) {
	sectionJSON, err := json.Marshal(section)
	if err != nil {
		return "", fmt.Errorf("json marshal failure: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(sectionJSON), nil
}

func encodeToken[T any](claims T, secret Secret) (string, error) {
	encHeader, err := encodeJWTSection(newHS256JWTHeader())
	if err != nil {
		return "", fmt.Errorf("failed to encode header: %v", err)
	}
	encClaims, err := encodeJWTSection(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %v", err)
	}
	message := buildMessage(encHeader, encClaims)
	return message + separator + signMessage(message, secret), nil
}

func splitToken(tokenStr string) (
	header string,
	claims string,
	signature string,
	err error,
) {
	parts := strings.Split(tokenStr, separator)
	if len(parts) != 3 {
		err = fmt.Errorf("%w: found %d", errNotThreeParts, len(parts))
		return
	}
	header = parts[0]
	claims = parts[1]
	signature = parts[2]
	return
}

// decodeSegment restores the padding stripped at encode time, then decodes
// the URL-safe alphabet. A length of 1 mod 4 can never come out of an
// encoder.
func decodeSegment(segment string) ([]byte, error) {
	// the decoder skips CR and LF, so the alphabet is checked up front
	for i := 0; i < len(segment); i++ {
		if !isURLAlphabet(segment[i]) {
			return nil, fmt.Errorf("%w: illegal byte %q at %d", errInvalidEncoding, segment[i], i)
		}
	}

	switch len(segment) % 4 {
	case 1:
		return nil, fmt.Errorf("%w: impossible segment length %d", errInvalidEncoding, len(segment))
	case 2:
		segment += "=="
	case 3:
		segment += "="
	}
	decoded, err := base64.URLEncoding.Strict().DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidEncoding, err)
	}
	return decoded, nil
}

func isURLAlphabet(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '_'
}
