package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weatherapp/internal/weather"
)

// HTTPClientConfig bundles the HTTP client and per-call limits.
type HTTPClientConfig struct {
	Client *http.Client
	// Timeout bounds a single provider call, on top of any client timeout.
	Timeout time.Duration
}

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// statusError carries the provider status through the circuit breaker.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

const maxErrorBody = 512

// getJSON performs one GET through the circuit breaker and decodes the body
// into target. There are no retries: a failed request fails the call.
func getJSON(
	ctx context.Context,
	op string,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	rawURL string,
	target any,
) error {
	if cfg.Client == nil {
		return &weather.TransportError{Op: op, Err: errNoHTTPClient}
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &weather.TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			resp.Body.Close()

			var cause error
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				cause = errRateLimited
			case resp.StatusCode >= 500:
				cause = errServerError
			default:
				cause = errUnexpected
			}
			if msg := strings.TrimSpace(string(body)); msg != "" {
				cause = fmt.Errorf("%w: %s", cause, msg)
			}
			return nil, &statusError{code: resp.StatusCode, err: cause}
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return &weather.TransportError{Op: op, Err: fmt.Errorf("%w: %v", errCircuitOpen, err)}
		}
		var se *statusError
		if errors.As(err, &se) {
			return &weather.TransportError{Op: op, StatusCode: se.code, Err: se.err}
		}
		return &weather.TransportError{Op: op, Err: err}
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return &weather.TransportError{Op: op, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		// A cancelled read is a transport problem, not a bad payload.
		if ctx.Err() != nil {
			return &weather.TransportError{Op: op, Err: ctx.Err()}
		}
		return fmt.Errorf("%s: %w: %v", op, weather.ErrMalformedResponse, err)
	}
	return nil
}

// newBreaker returns the breaker settings shared by all provider clients.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			// Client-side rejections (bad key, bad query) say nothing about
			// provider health.
			var se *statusError
			if errors.As(err, &se) {
				return se.code < 500 && se.code != http.StatusTooManyRequests
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// lenientFloat decodes a JSON number or numeric string. Anything else,
// including absence, yields 0.
func lenientFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
