// Package api is the typed HTTP client for the contract backend.
// Every call is a single request; there is no retry or backoff.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/mycontracts/pkg/log"
)

const (
	// RequestIDHeader carries a per-request id for log correlation
	RequestIDHeader = "X-Request-Id"

	maxErrorBody = 4 << 10
)

type Options struct {
	// BaseURL is the explicit backend URL; it takes precedence over Origin
	BaseURL string
	// Origin is the frontend address used to derive the backend URL
	Origin string
	// Timeout bounds each request; zero keeps the transport default
	Timeout time.Duration

	HTTPClient *http.Client
	Logger     log.LoggerService
}

type Client struct {
	baseURL string
	http    *http.Client
	log     log.LoggerService
}

// NewClient resolves the base URL once and returns a ready client
func NewClient(opts Options) (*Client, error) {
	var origin *url.URL
	if opts.Origin != "" {
		parsed, err := url.Parse(opts.Origin)
		if err != nil {
			return nil, fmt.Errorf("failed to parse origin '%s': %w", opts.Origin, err)
		}
		origin = parsed
	}

	base := ResolveBaseURL(opts.BaseURL, origin)
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid backend url '%s': %w", base, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		log:     opts.Logger,
	}, nil
}

// BaseURL returns the resolved backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func (c *Client) debug(msg string, args ...any) {
	if c.log != nil {
		c.log.Debug(msg, args...)
	}
}

func (c *Client) newRequest(ctx context.Context, op, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, &Error{Kind: KindEncode, Op: op, Method: method, Path: path, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// send executes req and converts transport failures and non-2xx responses
// into *Error. The caller owns the returned body on success.
func (c *Client) send(op string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.debug("%s %s failed after %s: %v", req.Method, req.URL.Path, time.Since(start), err)
		return nil, &Error{Kind: KindTransport, Op: op, Method: req.Method, Path: req.URL.Path, Err: err}
	}

	c.debug("%s %s -> %d (%s, id=%s)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start), req.Header.Get(RequestIDHeader))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			Kind:   KindStatus,
			Op:     op,
			Method: req.Method,
			Path:   req.URL.Path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	return resp, nil
}

// doJSON sends in as JSON (when not nil) and decodes the response into out (when not nil)
func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindEncode, Op: op, Method: method, Path: path, Err: err}
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, op, method, path, body, contentType)
	if err != nil {
		return err
	}

	resp, err := c.send(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	return nil
}
