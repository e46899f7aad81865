// Package upstream is the REST client for the remote payment processor. It
// owns transport, authentication headers, and the mapping from HTTP outcomes
// to the wallet's error taxonomy; callers receive loosely-shaped payloads
// and normalize them at their own boundary.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rmarin/voltcli/internal/normalize"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
)

const (
	defaultBaseURL             = "https://api.voltpay.dev"
	errorBodyReadLimit   int64 = 4096
	successBodyReadLimit int64 = 1 << 20
)

// Client talks to the payment processor. One instance serves a whole command
// invocation; it is safe for sequential reuse, which is all the CLI does.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
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

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout overrides the default HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the payment-processor client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAPIKey, "api key is required")
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// call issues one request and maps the outcome. A 401 is always
// invalid_api_key; any other non-2xx becomes failureCode carrying the
// status, path, and a bounded slice of the response body. Transport errors
// become transportCode.
func (c *Client) call(ctx context.Context, method, path string, body map[string]any, transportCode, failureCode pkgerrors.Code) (normalize.Payload, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	url := strings.TrimRight(c.baseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(transportCode, err, fmt.Sprintf("request to %s failed", path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAPIKey, "upstream rejected the api key").
			WithDetails(pkgerrors.UpstreamDetail{Status: resp.StatusCode, Path: path})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.New(failureCode, fmt.Sprintf("upstream returned status %d", resp.StatusCode)).
			WithDetails(pkgerrors.UpstreamDetail{
				Status:   resp.StatusCode,
				Path:     path,
				Response: strings.TrimSpace(string(msg)),
			})
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, successBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(transportCode, err, "read response body")
	}
	return normalize.Decode(raw), nil
}
