// Copyright 2025 Jason Poonia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Retry defaults. WordPress hosts routinely shed load with 5xx, so every
// request gets a bounded retry budget with doubling backoff.
const (
	DefaultAttempts   = 5
	DefaultBackoff    = 500 * time.Millisecond
	DefaultMaxBackoff = 8 * time.Second
	DefaultTimeout    = 30 * time.Second
)

// 🎯 BasicAuth carries the destination credential pair (username + application
// password). Source-site reads never carry one.
type BasicAuth struct {
	Username string
	Password string
}

// 📡 Client wraps one shared http.Client with bounded retry on transient
// server errors. All source and destination calls in a run go through the
// same underlying connection pool.
type Client struct {
	hc         *http.Client
	attempts   int
	backoff    time.Duration
	maxBackoff time.Duration
	auth       *BasicAuth
}

// 🔧 Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	HTTPClient *http.Client
	Attempts   int
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// 🏭 New creates a new retrying client.
func New(opts Options) *Client {
	c := &Client{
		hc:         opts.HTTPClient,
		attempts:   opts.Attempts,
		backoff:    opts.Backoff,
		maxBackoff: opts.MaxBackoff,
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: DefaultTimeout}
	}
	if c.attempts <= 0 {
		c.attempts = DefaultAttempts
	}
	if c.backoff <= 0 {
		c.backoff = DefaultBackoff
	}
	if c.maxBackoff <= 0 {
		c.maxBackoff = DefaultMaxBackoff
	}
	return c
}

// 🔑 WithBasicAuth returns a client that attaches the credential pair to every
// request. The returned client shares the underlying http.Client and pool, so
// authenticated and unauthenticated callers reuse the same connections.
func (c *Client) WithBasicAuth(username, password string) *Client {
	derived := *c
	derived.auth = &BasicAuth{Username: username, Password: password}
	return &derived
}

// ❌ StatusError is a non-2xx response that was not retried away.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// 🔍 IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// retryable holds the statuses worth retrying; everything else surfaces
// immediately. 4xx responses are the caller's problem, not the network's.
func retryable(status int) bool {
	switch status {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// 📡 Do issues a request with automatic retry. The body is replayed on every
// attempt. On success the response is returned with its body unread; the
// caller owns closing it. A non-2xx terminal response closes the body and
// returns a *StatusError.
func (c *Client) Do(ctx context.Context, method, rawURL string, body []byte, header http.Header) (*http.Response, error) {
	logger := zerolog.Ctx(ctx)

	var lastErr error
	delay := c.backoff

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			logger.Debug().
				Str("url", rawURL).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying request")
			select {
			case <-ctx.Done():
				return nil, errors.Errorf("waiting to retry: %w", ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
			if delay > c.maxBackoff {
				delay = c.maxBackoff
			}
		}

		req, err := c.newRequest(ctx, method, rawURL, body, header)
		if err != nil {
			return nil, err
		}

		resp, err := c.hc.Do(req)
		if err != nil {
			// Network-level failures get the same budget as 5xx.
			lastErr = errors.Errorf("sending request: %w", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		statusErr := &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
		if !retryable(resp.StatusCode) {
			return nil, statusErr
		}
		lastErr = statusErr
	}

	return nil, errors.Errorf("request failed after %d attempts: %w", c.attempts, lastErr)
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, body []byte, header http.Header) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.auth != nil {
		req.SetBasicAuth(c.auth.Username, c.auth.Password)
	}

	return req, nil
}

// 📥 Get fetches a URL and returns the raw body bytes.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.Do(ctx, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Errorf("reading response body: %w", err)
	}
	return data, nil
}

// 📥 GetJSON fetches a URL with optional query parameters and decodes the
// JSON response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, out any) error {
	if len(query) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return errors.Errorf("parsing url: %w", err)
		}
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		rawURL = u.String()
	}

	resp, err := c.Do(ctx, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Errorf("decoding response: %w", err)
	}
	return nil
}

// 📤 PostJSON sends in as a JSON body and decodes the JSON response into out.
// out may be nil when the response body does not matter.
func (c *Client) PostJSON(ctx context.Context, rawURL string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Errorf("encoding request body: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	resp, err := c.Do(ctx, http.MethodPost, rawURL, body, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Errorf("decoding response: %w", err)
	}
	return nil
}
