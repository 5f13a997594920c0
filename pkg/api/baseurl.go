package api

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

const (
	// FrontendPort is the dev-server port the frontend origin usually carries
	FrontendPort = "5173"
	// BackendPort is the port the backend listens on next to the frontend
	BackendPort = "8080"

	codespacesSuffix = "app.github.dev"
)

// ResolveBaseURL returns the backend base URL. An explicit value wins;
// otherwise the URL is derived from the frontend origin: forwarded
// Codespaces hosts swap the port marker in the hostname, every other
// host is addressed on BackendPort.
func ResolveBaseURL(explicit string, origin *url.URL) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return strings.TrimRight(explicit, "/")
	}
	if origin == nil {
		return fmt.Sprintf("http://localhost:%s", BackendPort)
	}

	scheme := origin.Scheme
	if scheme == "" {
		scheme = "http"
	}

	hostname := origin.Hostname()
	if hostname == "" {
		hostname = "localhost"
	}

	if strings.Contains(hostname, codespacesSuffix) {
		backendHost := strings.Replace(hostname, "-"+FrontendPort+".", "-"+BackendPort+".", 1)
		return fmt.Sprintf("%s://%s", scheme, backendHost)
	}

	return fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(hostname, BackendPort))
}
