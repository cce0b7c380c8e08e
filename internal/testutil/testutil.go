// Package testutil provides test environment setup and utilities for package tests.
package testutil

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/idtoken/internal/routing"
	"git.sr.ht/~jakintosh/idtoken/pkg/authn"
	"git.sr.ht/~jakintosh/idtoken/pkg/tokens"
)

// IssuedAt is the instant every TestEnv clock starts at.
var IssuedAt = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

var (
	sharedSecret     tokens.Secret
	sharedSecretOnce sync.Once
)

// getSharedSecret returns a signing secret cached across all tests.
func getSharedSecret() tokens.Secret {
	sharedSecretOnce.Do(func() {
		key := make([]byte, tokens.MinSecretLength)
		if _, err := rand.Read(key); err != nil {
			panic("failed to generate shared secret: " + err.Error())
		}
		secret, err := tokens.NewSecret(key)
		if err != nil {
			panic("failed to build shared secret: " + err.Error())
		}
		sharedSecret = secret
	})
	return sharedSecret
}

// GenerateSecret creates a new unique secret for tests that require key isolation.
func GenerateSecret(
	t *testing.T,
) tokens.Secret {
	t.Helper()
	key := make([]byte, tokens.MinSecretLength)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate secret: %v", err)
	}
	secret, err := tokens.NewSecret(key)
	if err != nil {
		t.Fatalf("failed to build secret: %v", err)
	}
	return secret
}

// Clock is a settable tokens.Clock
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	Secret   tokens.Secret
	Clock    *Clock
	Issuer   tokens.Issuer
	Verifier *authn.Verifier
	Router   http.Handler
}

// SetupTestEnv creates an issuer and verifier sharing a secret and a
// clock fixed at IssuedAt
func SetupTestEnv(
	t *testing.T,
) *TestEnv {
	t.Helper()

	// use cached secret (generated once across all tests)
	secret := getSharedSecret()
	clock := NewClock(IssuedAt)

	return &TestEnv{
		Secret:   secret,
		Clock:    clock,
		Issuer:   tokens.InitServer(secret, clock),
		Verifier: authn.NewVerifier(secret, clock, nil),
	}
}

// SetupTestEnvWithRouter creates TestEnv and builds the service router
// around its verifier
func SetupTestEnvWithRouter(
	t *testing.T,
) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)
	env.Router = routing.BuildRouter(env.Verifier, zap.NewNop())
	return env
}

// IssueTestToken issues an identity token at the env's current clock time
func (env *TestEnv) IssueTestToken(
	t *testing.T,
	subject string,
	userID string,
) *tokens.IdentityToken {
	t.Helper()
	token, err := env.Issuer.IssueIdentityToken(subject, userID)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}

// EncodeSegment JSON-encodes v as an unpadded base64url token segment
func EncodeSegment(
	t *testing.T,
	v any,
) string {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal segment: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// SignToken builds a token from arbitrary header and payload values,
// signed with secret using HMAC-SHA256
func SignToken(
	t *testing.T,
	secret tokens.Secret,
	header any,
	payload any,
) string {
	t.Helper()
	message := EncodeSegment(t, header) + "." + EncodeSegment(t, payload)
	mac := hmac.New(sha256.New, secret.Bytes())
	mac.Write([]byte(message))
	return message + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// HS256Header is the header the issuer writes
func HS256Header() map[string]string {
	return map[string]string{"alg": "HS256", "typ": "JWT"}
}

// ReplaceSegment swaps segment i (0 header, 1 payload, 2 signature) of a
// three part token
func ReplaceSegment(
	t *testing.T,
	token string,
	i int,
	segment string,
) string {
	t.Helper()
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts, want 3", len(parts))
	}
	parts[i] = segment
	return strings.Join(parts, ".")
}
