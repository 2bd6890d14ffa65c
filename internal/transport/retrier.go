// Package transport issues single HTTP requests against the vendor service,
// retrying transient failures with exponential backoff.
//
// Transient means HTTP 429, 500, 502, 503, 504 or a transport-level
// connection failure. Everything else is returned to the caller unchanged,
// without retrying; the api package decides what a non-2xx response means.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults applied by Do when the corresponding Retrier field is zero.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 2 * time.Second
)

// maxDrainBytes bounds how much of a transient response body is read
// before the connection is released for the next attempt.
const maxDrainBytes = 4 << 10

// StatusError is the per-attempt failure recorded when the server answered
// with a transient status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// ExhaustedRetriesError reports that every attempt failed transiently.
// Last holds the failure from the final attempt.
type ExhaustedRetriesError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedRetriesError) Unwrap() error {
	return e.Last
}

// Retrier performs HTTP requests with bounded exponential backoff.
//
// Delays between attempts: BaseDelay, BaseDelay*2, BaseDelay*4, ...
// MaxRetries counts retries after the initial attempt, so MaxRetries=3
// allows up to 4 attempts in total.
type Retrier struct {
	Client     *http.Client
	MaxRetries int
	BaseDelay  time.Duration

	// OnRetry is invoked before each backoff sleep with the retry number
	// (1-based) and the delay about to be applied.
	OnRetry func(retry int, delay time.Duration)
}

// NewRetrier returns a Retrier with the given bounds and a default HTTP client.
func NewRetrier(maxRetries int, baseDelay time.Duration) *Retrier {
	return &Retrier{
		Client:     &http.Client{},
		MaxRetries: maxRetries,
		BaseDelay:  baseDelay,
	}
}

// transientStatus reports whether an HTTP status code is worth retrying.
func transientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// Do performs the described request, retrying transient failures.
//
// On success (any non-transient status, 2xx or not) the raw response is
// returned with its body unread; the caller owns closing it. A transient
// failure on the final attempt surfaces as *ExhaustedRetriesError wrapping
// the last per-attempt error. Context cancellation aborts immediately,
// including mid-sleep.
func (r *Retrier) Do(ctx context.Context, desc RequestDescriptor) (*http.Response, error) {
	client := r.Client
	if client == nil {
		client = &http.Client{}
	}
	delay := r.BaseDelay
	if delay <= 0 {
		delay = DefaultBaseDelay
	}

	attempt := 1
	for {
		resp, err := r.attempt(ctx, client, desc)
		if err == nil && !transientStatus(resp.StatusCode) {
			return resp, nil
		}

		var lastErr error
		if err != nil {
			// Never retry a cancelled call.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		} else {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxDrainBytes))
			resp.Body.Close()
			lastErr = &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
		}

		if attempt > r.MaxRetries {
			return nil, &ExhaustedRetriesError{Attempts: attempt, Last: lastErr}
		}

		if r.OnRetry != nil {
			r.OnRetry(attempt, delay)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		attempt++
	}
}

// attempt builds and performs a single request from the descriptor.
func (r *Retrier) attempt(ctx context.Context, client *http.Client, desc RequestDescriptor) (*http.Response, error) {
	var body io.Reader
	if len(desc.Body) > 0 {
		body = bytes.NewReader(desc.Body)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, desc.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range desc.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// IsExhausted reports whether err (or anything it wraps) is an
// ExhaustedRetriesError.
func IsExhausted(err error) bool {
	var e *ExhaustedRetriesError
	return errors.As(err, &e)
}
