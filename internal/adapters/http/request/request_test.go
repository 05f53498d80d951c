package request

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestRequest_RemoteAddr(t *testing.T) {
	cases := []struct {
		name     string
		xff      string
		xRealIP  string
		remote   string
		expected string
	}{
		{name: "x-forwarded-for single", xff: "203.0.113.10", remote: "10.0.0.1:1234", expected: "203.0.113.10"},
		{name: "x-forwarded-for chain", xff: "203.0.113.10, 10.0.0.2", remote: "10.0.0.1:1234", expected: "203.0.113.10"},
		{name: "x-real-ip", xRealIP: "198.51.100.7", remote: "10.0.0.1:1234", expected: "198.51.100.7"},
		{name: "remote addr with port", remote: "192.0.2.1:5678", expected: "192.0.2.1"},
		{name: "remote addr without port", remote: "192.0.2.1", expected: "192.0.2.1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/test", nil)
			r.RemoteAddr = tc.remote
			if tc.xff != "" {
				r.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xRealIP != "" {
				r.Header.Set("X-Real-IP", tc.xRealIP)
			}

			if got := New(r).RemoteAddr(); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestRequest_Identity(t *testing.T) {
	r := httptest.NewRequest("GET", "/test", nil)
	req := New(r)
	if req.Identity() != "" {
		t.Fatalf("expected empty identity for anonymous request, got %q", req.Identity())
	}

	r.Header.Set("API_KEY", "  abc123  ")
	if req.Identity() != "abc123" {
		t.Fatalf("expected trimmed identity, got %q", req.Identity())
	}
}

func TestRequest_Parameter(t *testing.T) {
	r := httptest.NewRequest("GET", "/search?q=lockout", nil)
	if got := New(r).Parameter("q"); got != "lockout" {
		t.Fatalf("expected query parameter, got %q", got)
	}

	form := url.Values{"user": {"u1"}}
	r = httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if got := New(r).Parameter("user"); got != "u1" {
		t.Fatalf("expected form parameter, got %q", got)
	}

	if got := New(r).Parameter("missing"); got != "" {
		t.Fatalf("expected empty value for missing parameter, got %q", got)
	}
}

func TestRequest_MethodAndHeader(t *testing.T) {
	r := httptest.NewRequest("POST", "/login", nil)
	r.Header.Set("X-Client-Id", "client-7")

	req := New(r)
	if req.Method() != "POST" {
		t.Fatalf("expected POST, got %q", req.Method())
	}
	if req.Header("X-Client-Id") != "client-7" {
		t.Fatalf("expected header value, got %q", req.Header("X-Client-Id"))
	}
}
