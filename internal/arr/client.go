// Package arr is a minimal REST client for Sonarr and Radarr. Both services
// speak the same /api/v3 dialect with X-Api-Key header auth, so one client
// type serves either; callers pick endpoints by path.
package arr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned for HTTP 404 so adapters can report the miss as a
// normal tool result instead of a failure.
var ErrNotFound = errors.New("not found")

// APIError is any non-2xx upstream response other than 404.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream API error %d: %s", e.Status, e.Body)
}

const (
	defaultTimeout = 30 * time.Second
	maxAttempts    = 3
	baseDelay      = 1 * time.Second
	maxDelay       = 10 * time.Second
)

// Client talks to one Sonarr or Radarr instance.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the service at baseURL.
func New(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

// Post sends body as JSON and decodes the response into out (which may be nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON and decodes the response into out (which may be nil).
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE request, discarding any response body.
func (c *Client) Delete(ctx context.Context, path string, params url.Values) error {
	return c.do(ctx, http.MethodDelete, path, params, nil, nil)
}

// DeleteBody is Delete with a JSON request body, for bulk endpoints.
func (c *Client) DeleteBody(ctx context.Context, path string, params url.Values, body any) error {
	return c.do(ctx, http.MethodDelete, path, params, body, nil)
}

// Version fetches the upstream version string from the system status
// endpoint. Used as a health probe at startup.
func (c *Client) Version(ctx context.Context) (string, error) {
	var status struct {
		Version string `json:"version"`
	}
	if err := c.Get(ctx, "/api/v3/system/status", nil, &status); err != nil {
		return "", err
	}
	return status.Version, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", c.baseURL+path, err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, u.String(), payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return nil
}

// send issues the request, retrying GETs on 429/5xx and transient network
// errors with capped exponential backoff. Mutating verbs never retry: a
// repeated queue delete or command POST would duplicate side effects.
func (c *Client) send(ctx context.Context, method, rawURL string, payload []byte) (*http.Response, error) {
	var lastErr error
	var retryAfter time.Duration

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, attempt, retryAfter, rawURL); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("X-Api-Key", c.apiKey)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if method != http.MethodGet {
				return nil, err
			}
			lastErr = err
			continue
		}

		if method != http.MethodGet || !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
		retryAfter = headerRetryAfter(resp)
		resp.Body.Close()
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxAttempts, lastErr)
}

func bodyReader(payload []byte) io.Reader {
	if payload == nil {
		return http.NoBody
	}
	return bytes.NewReader(payload)
}

func (c *Client) wait(ctx context.Context, attempt int, retryAfter time.Duration, rawURL string) error {
	delay := backoff(attempt)
	if retryAfter > delay {
		delay = retryAfter
	}
	if delay > maxDelay {
		delay = maxDelay
	}

	c.logger.Debug("retrying request",
		slog.Int("attempt", attempt+1),
		slog.String("delay", delay.String()),
		slog.String("url", rawURL),
	)

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func headerRetryAfter(resp *http.Response) time.Duration {
	seconds, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// backoff doubles per attempt with 20% jitter.
func backoff(attempt int) time.Duration {
	delay := float64(baseDelay) * math.Pow(2, float64(attempt-1))
	if delay > float64(maxDelay) {
		delay = float64(maxDelay)
	}
	jitter := delay * 0.2 * rand.Float64() // #nosec G404
	return time.Duration(delay + jitter)
}
