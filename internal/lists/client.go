// Package lists talks to the remote region-list store. Mutations are always
// partial updates scoped to one value in one list; the store's full-replace
// endpoint is deliberately not exposed here because it would race with
// concurrent writers and drop unrelated members.
package lists

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Op is a partial-update operation on a list.
type Op string

const (
	OpAppend Op = "append"
	OpRemove Op = "remove"
)

// Client mutates individual list memberships in the remote store.
type Client interface {
	Patch(ctx context.Context, listID string, op Op, value string) error
}

// RejectedError reports an application-level rejection: the store was
// reachable but refused the mutation.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("list store rejected request with status %d", e.StatusCode)
	}
	return fmt.Sprintf("list store rejected request with status %d: %s", e.StatusCode, e.Message)
}

// HTTPClient is the production list store client:
//
//	PATCH {base}/v1/lists/{listID}
//	{"op":"append","value":"45.90.28.101"}
//
// The store applies append/remove idempotently: appending a present value or
// removing an absent one succeeds.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

func WithLogger(logger *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// NewHTTPClient constructs a list store client. The API key is sent as a
// bearer token when non-empty.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type patchRequest struct {
	Op    Op     `json:"op"`
	Value string `json:"value"`
}

type patchError struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Patch(ctx context.Context, listID string, op Op, value string) error {
	body, err := json.Marshal(patchRequest{Op: op, Value: value})
	if err != nil {
		return fmt.Errorf("encode patch request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/lists/%s", c.baseURL, url.PathEscape(listID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build patch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("patch list %s: %w", listID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("list membership updated", "list_id", listID, "op", op, "value", value)
		return nil
	}

	rejection := &RejectedError{StatusCode: resp.StatusCode}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if readErr == nil && len(raw) > 0 {
		var pe patchError
		if json.Unmarshal(raw, &pe) == nil && pe.Error != "" {
			rejection.Message = pe.Error
		} else {
			rejection.Message = string(raw)
		}
	}
	return rejection
}
