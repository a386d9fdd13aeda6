// Package rapidapi is a small HTTP client for APIs hosted on RapidAPI.
package rapidapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hackhub/internal/metrics"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 16 << 20
)

// ErrBodyTooLarge is returned when an upstream response exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("upstream response body too large")

// Options configures a Client.
type Options struct {
	Name         string // metrics label, e.g. "jsearch"
	BaseURL      string
	APIKey       string
	APIHost      string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// Client calls one RapidAPI-hosted API.
type Client struct {
	opts   Options
	client *http.Client
}

// New returns a client with a shared HTTP client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	return &Client{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.opts.BaseURL }

// APIHost returns the configured RapidAPI host header value.
func (c *Client) APIHost() string { return c.opts.APIHost }

// MaskedKey returns the first ten characters of the API key followed by "...".
func (c *Client) MaskedKey() string {
	if len(c.opts.APIKey) < 10 {
		return "..."
	}
	return c.opts.APIKey[:10] + "..."
}

// Get issues a GET request for path with the given query parameters.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.opts.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// PostJSON issues a POST request for path with body encoded as JSON.
func (c *Client) PostJSON(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.opts.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.opts.APIHost)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ObserveUpstream(c.opts.Name, metrics.OutcomeTransport, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBodyBytes+1))
	if err != nil {
		metrics.ObserveUpstream(c.opts.Name, metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.opts.MaxBodyBytes {
		metrics.ObserveUpstream(c.opts.Name, metrics.OutcomeBodyTooLarge, time.Since(start))
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, c.opts.MaxBodyBytes)
	}
	metrics.ObserveUpstream(c.opts.Name, metrics.OutcomeForStatus(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
