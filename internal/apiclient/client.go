// Package apiclient is a small HTTP client for the clearledger API.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iho/clearledger/internal/adapter/http/dto"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Code)
}

// Client calls the clearledger REST API. GET requests are retried with
// exponential backoff on transport errors and 5xx responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxElapsed time.Duration
	initial    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithRetry sets the initial retry interval and the total retry budget.
// A zero budget disables retries.
func WithRetry(initial, maxElapsed time.Duration) Option {
	return func(cl *Client) {
		cl.initial = initial
		cl.maxElapsed = maxElapsed
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		initial:    100 * time.Millisecond,
		maxElapsed: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListClients returns clients matching query.
func (c *Client) ListClients(ctx context.Context, query string, limit, offset int) (*dto.ListClientsResponse, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if offset > 0 {
		params.Set("offset", fmt.Sprint(offset))
	}

	path := "/api/clients"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out dto.ListClientsResponse
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Statement returns the account statement of a client.
func (c *Client) Statement(ctx context.Context, clientID string) (*dto.StatementResponse, error) {
	var out dto.StatementResponse
	if err := c.get(ctx, "/api/clients/"+url.PathEscape(clientID)+"/account", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Stats returns organization-wide totals.
func (c *Client) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var out dto.StatsResponse
	if err := c.get(ctx, "/api/stats", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Reconciliation runs the storage cross-check.
func (c *Client) Reconciliation(ctx context.Context) (*dto.ReconciliationResponse, error) {
	var out dto.ReconciliationResponse
	if err := c.get(ctx, "/api/reconciliation", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	var b backoff.BackOff = &backoff.StopBackOff{}
	if c.maxElapsed > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = c.initial
		eb.MaxElapsedTime = c.maxElapsed
		b = eb
	}

	return backoff.Retry(func() error {
		err := c.do(ctx, path, out)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}

		return err
	}, backoff.WithContext(b, ctx))
}

func (c *Client) do(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
		var e dto.ErrorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			apiErr.Code = e.Error
			apiErr.Message = e.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}

	return nil
}
