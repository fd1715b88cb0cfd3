package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the institute's reservations API.  Every response body is
// wrapped in a `{"data": ...}` envelope; errors carry a JSON body with a
// `message` field which is surfaced verbatim where present.  The client
// holds no cache: availability is time-sensitive and reads go out fresh.
type Client struct {
	baseURL string
	http    *http.Client
	retry   RetryPolicy
}

// New builds a Client for the given base URL.  A zero timeout falls back
// to 10s.  The retry policy only applies to single-date availability
// queries; every other operation runs once.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		retry:   AvailabilityRetry,
	}
}

// NewWithRetry is New with an explicit availability retry policy.
func NewWithRetry(baseURL string, timeout time.Duration, retry RetryPolicy) *Client {
	c := New(baseURL, timeout)
	c.retry = retry
	return c
}

// envelope matches the backend's standard response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// apiError matches the backend's JSON error body.
type apiError struct {
	Message string `json:"message"`
}

// do issues one request and decodes the data envelope into out (which may
// be nil when the caller only cares about the status).  Non-2xx responses
// become *SubmissionError with the backend's message when one was sent.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(bs)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var ae apiError
		_ = json.Unmarshal(raw, &ae)
		return &SubmissionError{StatusCode: res.StatusCode, Message: ae.Message}
	}
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	// Some endpoints reply without the envelope; fall back to the raw body.
	payload := env.Data
	if len(payload) == 0 {
		payload = raw
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
