// Package api is the HTTP client for the Agenda Noir remote API. All
// endpoints share the same conventions: bearer authentication, JSON
// envelopes, and a {message} payload on error used as the user-facing
// detail.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const defaultTimeout = 30 * time.Second

// Logger mirrors the session core logger without creating a
// dependency on it; the api package stands alone.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenSource supplies the current bearer token, if any. Wire it to
// the session manager's Token method.
type TokenSource func() (string, bool)

// MessageResponse is the status/message envelope returned by
// non-resource endpoints and error responses.
type MessageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Paginated is the server's pagination envelope.
type Paginated[T any] struct {
	Data             []T   `json:"data"`
	TotalItems       int64 `json:"totalItems"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	CurrentPage      int   `json:"currentPage"`
	PageSize         int   `json:"pageSize"`
}

// pageRequest is the body of the POST .../filtered endpoints. The
// server pages from zero; the public methods take one-based pages.
type pageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  Logger
	tokens  TokenSource
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Pass a client
// whose Jar is shared with the cookie token store so the persisted
// credential and outgoing requests stay in sync.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithLogger overrides the client logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTokenSource wires the bearer token supplier used for
// authenticated endpoints.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// SetTokenSource wires the bearer token supplier after construction.
// The session manager needs the client for login and the client needs
// the manager for tokens; this breaks that construction cycle.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  defLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// request describes one API call for do.
type request struct {
	method  string
	path    string
	body    any
	out     any
	public  bool
	failMsg string
}

func (c *Client) do(ctx context.Context, r request) error {
	var reader io.Reader
	if r.body != nil {
		encoded, err := json.Marshal(r.body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, reader)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to build request")
	}

	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !r.public && c.tokens != nil {
		if token, ok := c.tokens(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Request failed", "method", r.method, "path", r.path, "error", err)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "request failed")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return c.errorFromResponse(res, r)
	}

	if r.out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(r.out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to decode response")
	}

	return nil
}

// errorFromResponse builds a rich error from a non-2xx response,
// preferring the server's {message} detail over the endpoint's
// generic fallback.
func (c *Client) errorFromResponse(res *http.Response, r request) error {
	detail := r.failMsg
	if detail == "" {
		detail = "Request failed."
	}

	var payload MessageResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err == nil && payload.Message != "" {
		detail = payload.Message
	}

	category := goerrors.CategoryInternal
	switch {
	case res.StatusCode == http.StatusUnauthorized:
		category = goerrors.CategoryAuth
	case res.StatusCode == http.StatusForbidden:
		category = goerrors.CategoryAuthz
	case res.StatusCode == http.StatusNotFound:
		category = goerrors.CategoryNotFound
	case res.StatusCode >= 400 && res.StatusCode < 500:
		category = goerrors.CategoryValidation
	}

	c.logger.Warn("API error response", "method", r.method, "path", r.path, "status", res.StatusCode, "message", detail)

	return goerrors.New(detail, category).
		WithCode(res.StatusCode).
		WithMetadata(map[string]any{
			"method": r.method,
			"path":   r.path,
			"status": res.StatusCode,
		})
}

// ErrorMessage extracts the user-facing detail from an API error,
// falling back to a generic message for anything unstructured.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}

	return "Request failed."
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] API "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] API "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] API "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] API "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
