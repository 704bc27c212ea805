// Package transport implements the HTTP client for the Acta AI generation
// API: plain JSON request/response phases plus the streamed content phase.
package transport

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

	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

// DefaultTimeout bounds the non-streamed title and interview requests. The
// content stream intentionally carries no client-side timeout; a streamed
// response may legitimately take minutes.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the client on every request.
const DefaultUserAgent = "acta-client/1.0"

// TokenSource supplies the bearer credential attached to requests. An empty
// token means the request goes out anonymous; rejection of anonymous calls is
// the server's concern, not this layer's.
type TokenSource interface {
	Token() string
}

// APIError describes a non-2xx response. Detail carries the server's
// `detail` field when the body had one, otherwise the HTTP status text.
type APIError struct {
	Path       string
	StatusCode int
	Detail     string
	Cause      error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("api error for %s: %s (status %d): %v", e.Path, e.Detail, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("api error for %s: %s (status %d)", e.Path, e.Detail, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Tokens  TokenSource
	Timeout time.Duration // non-stream requests only; zero means DefaultTimeout
}

// Client talks to the generation API.
type Client struct {
	baseURL *url.URL
	tokens  TokenSource
	json    *http.Client
	stream  *http.Client
}

// NewClient validates the base URL and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("transport: base URL is required")
	}
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("transport: invalid base URL %q: %w", cfg.BaseURL, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		tokens:  cfg.Tokens,
		json:    &http.Client{Timeout: timeout},
		stream:  &http.Client{},
	}, nil
}

// PostJSON issues a POST with a JSON body and decodes a JSON response into
// out. Non-2xx responses come back as *APIError.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	resp, err := c.post(ctx, c.json, path, in, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure(path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("transport: decode response from %s: %w", path, err)
	}
	return nil
}

// OpenStream issues a POST expecting a streamed response and returns the live
// response body without buffering it. A non-2xx status is surfaced as a
// single *APIError before any streaming begins.
func (c *Client) OpenStream(ctx context.Context, path string, in any) (io.ReadCloser, error) {
	resp, err := c.post(ctx, c.stream, path, in, "text/event-stream")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		return nil, failure(path, resp)
	}

	return resp.Body, nil
}

func (c *Client) post(ctx context.Context, hc *http.Client, path string, in any, accept string) (*http.Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("transport: encode request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.String()+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("transport: build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", DefaultUserAgent)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: POST %s: %w", path, err)
	}
	return resp, nil
}

// failure reads a non-2xx response body and converts it to *APIError,
// preferring the JSON `detail` field over the HTTP status text.
func failure(path string, resp *http.Response) error {
	detail := http.StatusText(resp.StatusCode)
	if detail == "" {
		detail = resp.Status
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var payload types.ErrorPayload
		if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil && payload.Detail != "" {
			detail = payload.Detail
		}
	}

	return &APIError{
		Path:       path,
		StatusCode: resp.StatusCode,
		Detail:     detail,
	}
}
