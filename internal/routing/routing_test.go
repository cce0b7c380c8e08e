package routing_test

import (
	"net/http"
	"testing"
	"time"

	"git.sr.ht/~jakintosh/idtoken/internal/routing"
	"git.sr.ht/~jakintosh/idtoken/internal/testutil"
)

func TestWhoAmI(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)
	token := env.IssueTestToken(t, "alice@example.com", "42")

	var response routing.WhoAmIResponse
	result := testutil.Get(env.Router, "/api/whoami", &response, testutil.BearerAuth(token.Encoded()))
	testutil.ExpectStatus(t, http.StatusOK, result)

	// response echoes the verified claims
	if response.Subject != "alice@example.com" {
		t.Errorf("subject = %s, want alice@example.com", response.Subject)
	}
	if response.UserID != "42" {
		t.Errorf("uid = %s, want 42", response.UserID)
	}
	if want := testutil.IssuedAt.Add(time.Hour).Unix(); response.Expires != want {
		t.Errorf("exp = %d, want %d", response.Expires, want)
	}
	if ct := result.Headers.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", ct)
	}
}

func TestWhoAmI_Unauthorized(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	result := testutil.Get(env.Router, "/api/whoami", nil)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	result := testutil.Get(env.Router, "/health", nil)
	testutil.ExpectStatus(t, http.StatusOK, result)
}

func TestWhoAmI_WrongMethod(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)
	token := env.IssueTestToken(t, "alice@example.com", "42")

	// only GET is routed
	req := testutil.NewRequest(http.MethodPost, "/api/whoami", testutil.BearerAuth(token.Encoded()))
	result := testutil.Serve(env.Router, req)
	if result.Code == http.StatusOK {
		t.Error("POST /api/whoami should not succeed")
	}
}
