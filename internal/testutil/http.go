package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// HTTPResult captures HTTP response details for test assertions
type HTTPResult struct {
	Code    int
	Error   error
	Headers http.Header
	Body    []byte
}

// Header represents an HTTP header key-value pair
type Header struct {
	Key   string
	Value string
}

// BearerAuth returns an Authorization header carrying token
func BearerAuth(token string) Header {
	return Header{
		Key:   "Authorization",
		Value: "Bearer " + token,
	}
}

// ExpectStatus validates the HTTP status code and fails the test if it doesn't match
func ExpectStatus(
	t *testing.T,
	expected int,
	result HTTPResult,
) {
	t.Helper()
	if result.Error != nil {
		t.Fatalf("request error: %v", result.Error)
	}
	if result.Code != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, result.Code, string(result.Body))
	}
}

// NewRequest builds a bodiless request with the given headers set
func NewRequest(
	method string,
	url string,
	headers ...Header,
) *http.Request {
	req := httptest.NewRequest(method, url, nil)
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}
	return req
}

// Serve runs req through router and captures the response
func Serve(
	router http.Handler,
	req *http.Request,
) HTTPResult {
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return HTTPResult{Code: res.Code, Headers: res.Header(), Body: res.Body.Bytes()}
}

// Get performs a GET request and optionally decodes JSON response
func Get(
	router http.Handler,
	url string,
	response any,
	headers ...Header,
) HTTPResult {
	req := NewRequest(http.MethodGet, url, headers...)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if response != nil && res.Code == http.StatusOK && res.Body.Len() > 0 {
		if err := json.Unmarshal(res.Body.Bytes(), response); err != nil {
			return HTTPResult{
				Code:    res.Code,
				Error:   fmt.Errorf("failed to decode JSON: %v\n%s", err, res.Body.String()),
				Headers: res.Header(),
				Body:    res.Body.Bytes(),
			}
		}
	}

	return HTTPResult{Code: res.Code, Headers: res.Header(), Body: res.Body.Bytes()}
}
