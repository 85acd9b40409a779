package smartpark

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartpark-app/smartpark-client/pkg/errors"
	"github.com/smartpark-app/smartpark-client/pkg/logger"
)

const (
	defaultTimeout        = 10 * time.Second
	responseBodyReadLimit = 1 << 20
)

var errBaseURLRequired = stdErrors.New("backend base URL is required")

// Client is the single chokepoint for requests to the reservation backend.
// It holds no state between calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger enables per-operation request logging.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logger = logg
	}
}

// NewClient builds a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return client, nil
}

// do issues one request and decodes the response into out when provided.
// Empty success bodies are treated as a null payload; failure bodies are
// parsed tolerantly for an error/message field.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("marshal %s request", op))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("build %s request", op))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx = c.logRequest(ctx, op, method, path, body)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logError(ctx, op, err)
		return errors.Wrap(errors.CodeTransport, err, "request did not complete")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		c.logError(ctx, op, err)
		return errors.Wrap(errors.CodeTransport, err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		failure := failureFromBody(resp.StatusCode, raw)
		c.logError(ctx, op, failure)
		return failure
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			c.logError(ctx, op, err)
			return errors.Wrap(errors.CodeDecode, err, fmt.Sprintf("decode %s response", op))
		}
	}

	c.logResponse(ctx, resp.StatusCode)
	return nil
}

// failureFromBody extracts the backend message from a failure payload,
// preferring "error" over "message" and falling back to a generic message
// when the body is empty or not JSON.
func failureFromBody(status int, raw []byte) *errors.Error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &payload); err == nil {
			if payload.Error != "" {
				msg = payload.Error
			} else if payload.Message != "" {
				msg = payload.Message
			}
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed (status %d)", status)
	}
	return errors.New(errors.CodeForStatus(status), msg).WithStatus(status)
}

func (c *Client) logRequest(ctx context.Context, op, method, path string, body any) context.Context {
	if c.logger == nil {
		return ctx
	}
	ctx = c.logger.WithRequestID(ctx, uuid.NewString())
	ctx = c.logger.WithFields(ctx, map[string]any{
		"operation": op,
		"method":    method,
		"path":      path,
	})
	if fields := redactedFields(body); len(fields) > 0 {
		ctx = c.logger.WithFields(ctx, fields)
	}
	c.logger.Debug(ctx, "request")
	return ctx
}

func (c *Client) logResponse(ctx context.Context, status int) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(c.logger.WithField(ctx, "status", status), "response")
}

func (c *Client) logError(ctx context.Context, op string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Error(ctx, fmt.Sprintf("%s failed", op), err)
}

// redactedFields flattens a request body for logging, masking credentials and
// contact details.
func redactedFields(body any) map[string]any {
	if body == nil {
		return nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil
	}
	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil
	}
	fields := make(map[string]any, len(flat))
	for k, v := range flat {
		fields["body_"+k] = redact(k, v)
	}
	return fields
}

func redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"password", "contact", "secret", "token"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}
