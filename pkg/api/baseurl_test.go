package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", raw, err)
	}
	return u
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		origin   string
		expected string
	}{
		{"explicit wins", "https://api.example.com/", "http://localhost:5173", "https://api.example.com"},
		{"localhost", "", "http://localhost:5173", "http://localhost:8080"},
		{"lan host", "", "http://192.168.1.20:5173/files/3", "http://192.168.1.20:8080"},
		{"https origin", "", "https://contracts.local", "https://contracts.local:8080"},
		{"codespaces", "", "https://octocat-abc123-5173.app.github.dev", "https://octocat-abc123-8080.app.github.dev"},
		{"ipv6 loopback", "", "http://[::1]:5173", "http://[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveBaseURL(tt.explicit, mustURL(t, tt.origin)))
		})
	}
}

func TestResolveBaseURLWithoutOrigin(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", ResolveBaseURL("", nil))
	assert.Equal(t, "http://backend:9000", ResolveBaseURL("  http://backend:9000  ", nil))
}
