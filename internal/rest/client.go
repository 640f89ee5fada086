package rest

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
)

// maxResponseSize bounds how much of a response body is read (1MB).
// Device lists and reading histories are small; anything larger is a
// misbehaving server.
const maxResponseSize = 1 << 20

// Credential is the opaque bearer token authorising API calls.
// It is passed explicitly into every client call; nothing in this module
// holds ambient token state.
type Credential string

// IsZero reports whether no credential is present.
func (c Credential) IsZero() bool { return c == "" }

// Logger defines the logging interface used by the Client.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Config contains the settings needed to construct a Client.
type Config struct {
	// BaseURL is the service root, e.g. "https://api.paycon.example.com".
	// A trailing slash is tolerated.
	BaseURL string

	// Timeout is the per-request timeout. Zero means 15 seconds.
	Timeout time.Duration

	// UserAgent is sent with every request. Empty means "paycon-go".
	UserAgent string
}

// Client is the HTTP transport shared by all Paycon API components.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     Logger
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "paycon-go"
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the client.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// Get issues a GET request. A nil query is allowed.
func (c *Client) Get(ctx context.Context, path string, query url.Values, cred Credential, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, cred, nil, out)
}

// Post issues a POST request with a JSON body. Body may be nil.
func (c *Client) Post(ctx context.Context, path string, cred Credential, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, cred, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, cred Credential, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, cred, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, cred Credential) error {
	return c.Do(ctx, http.MethodDelete, path, nil, cred, nil, nil)
}

// Do executes a single request/response round trip.
//
// On success (2xx) the response body is decoded into out when out is
// non-nil. On failure exactly one of the package error types is returned:
// *NetworkError, *AuthError, *ValidationError, or *ServiceError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, cred Credential, body, out any) error {
	op := method + " " + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body for %s: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", op, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !cred.IsZero() {
		req.Header.Set("Authorization", "Token "+string(cred))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Context cancellation is the caller's doing, not a transport fault.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // nothing useful to do on close failure

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response for %s: %w", op, err)
		}
		return nil
	}

	c.logger.Warn("api request failed", "method", method, "path", path, "status", resp.StatusCode)

	return c.errorFromResponse(resp.StatusCode, respBody)
}

// errorFromResponse maps a non-2xx response to the error taxonomy.
func (c *Client) errorFromResponse(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Status: status, Message: extractMessage(body)}
	case status == http.StatusBadRequest:
		if ve := parseFieldErrors(body); ve != nil {
			return ve
		}
		return &ServiceError{Status: status, Message: extractMessage(body)}
	default:
		return &ServiceError{Status: status, Message: extractMessage(body)}
	}
}
