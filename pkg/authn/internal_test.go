package authn

import (
	"net/http/httptest"
	"testing"
)

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"bearer", "Bearer a.b.c", "a.b.c", true},
		{"lowercase scheme", "bearer a.b.c", "a.b.c", true},
		{"extra spaces", "Bearer   a.b.c  ", "a.b.c", true},
		{"missing", "", "", false},
		{"scheme only", "Bearer", "", false},
		{"empty token", "Bearer  ", "", false},
		{"basic", "Basic dXNlcjpwYXNz", "", false},
		{"no scheme", "a.b.c", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := bearerToken(r)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("bearerToken(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestUnauthorized(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	unauthorized(w)

	if w.Code != 401 {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want Bearer", got)
	}
}
