package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.sr.ht/~jakintosh/idtoken/internal/testutil"
	"git.sr.ht/~jakintosh/idtoken/pkg/authn"
	"git.sr.ht/~jakintosh/idtoken/pkg/tokens"
)

func TestIssueToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	token, err := issueToken(env.Secret, env.Clock, "alice@example.com", "42")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	// issued token passes full verification
	identity, err := env.Verifier.Verify(token.Encoded())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if identity.Subject != "alice@example.com" || identity.UserID != "42" {
		t.Errorf("identity = %+v", identity)
	}
}

func TestIssueToken_EmptySubject(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	if _, err := issueToken(env.Secret, env.Clock, "", "42"); !errors.Is(err, tokens.ErrEmptySubject()) {
		t.Errorf("err = %v, want ErrEmptySubject", err)
	}
}

func TestDescribeToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	token := env.IssueTestToken(t, "alice@example.com", "42")

	tests := []struct {
		name  string
		token string
		at    time.Time
		want  string
	}{
		{
			name:  "fresh",
			token: token.Encoded(),
			at:    testutil.IssuedAt,
			want:  "subject: alice@example.com\nuser id: 42\nexpired: false\n",
		},
		{
			name:  "expired",
			token: token.Encoded(),
			at:    testutil.IssuedAt.Add(3601 * time.Second),
			want:  "subject: alice@example.com\nuser id: 42\nexpired: true\n",
		},
		{
			name:  "garbage",
			token: "abc.def",
			at:    testutil.IssuedAt,
			want:  "subject: <absent>\nuser id: <absent>\nexpired: true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			describeToken(&buf, tt.token, testutil.NewClock(tt.at))
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	token := env.IssueTestToken(t, "alice@example.com", "42")

	// valid token prints its claims
	var buf bytes.Buffer
	if err := verifyToken(&buf, env.Verifier, token.Encoded()); err != nil {
		t.Fatalf("verifyToken failed: %v", err)
	}
	want := "subject: alice@example.com\nuser id: 42\nexpires: 2024-05-01T13:00:00Z\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	// invalid token prints nothing
	buf.Reset()
	forged := testutil.ReplaceSegment(t, token.Encoded(), 2, "AAAA")
	err := verifyToken(&buf, env.Verifier, forged)
	if !errors.Is(err, authn.ErrUnauthorized()) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
	if buf.Len() != 0 {
		t.Errorf("output on failure = %q", buf.String())
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)
	server := &http.Server{Addr: "127.0.0.1:0", Handler: env.Router}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// a cancelled context shuts the server down cleanly
	if err := serve(ctx, server); err != nil {
		t.Errorf("serve returned %v, want nil", err)
	}
}

func TestInspect_IgnoresUnreadableSecretFile(t *testing.T) {
	t.Setenv("IDTOKEN_SECRET", "")
	t.Setenv("IDTOKEN_SECRET_FILE", filepath.Join(t.TempDir(), "absent"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"inspect", "abc.def"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	// inspect needs no secret, so a bad secret file path doesn't stop it
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out.String(), "expired: true") {
		t.Errorf("output = %q, want inspect report", out.String())
	}
}
