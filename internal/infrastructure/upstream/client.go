// Package upstream implements the resilient HTTP client that forwards
// gateway operations to the order service.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/orderdesk/order-gateway/internal/api/metrics"
	"github.com/orderdesk/order-gateway/internal/core/domain"
	"github.com/orderdesk/order-gateway/internal/core/ports"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// Options tunes the forwarding behavior. Zero values fall back to the
// defaults above.
type Options struct {
	// Timeout bounds each individual attempt, connect included.
	Timeout time.Duration
	// MaxAttempts is the total number of connection attempts per forward.
	MaxAttempts int
	// BaseDelay is the linear backoff unit: the n-th failed attempt sleeps
	// BaseDelay*n before the next one.
	BaseDelay time.Duration
}

// Client forwards requests to the order service. Only failures to establish
// a connection are retried; any received response, 5xx included, is returned
// to the caller as-is. Keep-alives are disabled so every attempt dials a
// fresh connection.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	baseDelay   time.Duration
	logger      zerolog.Logger

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(baseURL string, opts Options, logger zerolog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: &http.Transport{DisableKeepAlives: true},
		},
		maxAttempts: opts.MaxAttempts,
		baseDelay:   opts.BaseDelay,
		logger:      logger,
		sleep:       sleepContext,
	}
}

// Forward sends method+path to the order service. On connection failure it
// retries with linear backoff up to the attempt budget and then reports
// domain.ErrUpstreamUnavailable carrying the last dial failure.
func (c *Client) Forward(ctx context.Context, method, path string, body []byte) (*ports.UpstreamResponse, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.do(ctx, method, path, body)
		if err == nil {
			metrics.UpstreamAttemptsTotal.WithLabelValues("response").Inc()
			return resp, nil
		}

		if !isConnectError(err) {
			// A response-level failure (or caller cancellation) is not ours
			// to smooth over.
			return nil, fmt.Errorf("forward %s %s: %w", method, path, err)
		}
		metrics.UpstreamAttemptsTotal.WithLabelValues("dial_error").Inc()
		lastErr = err

		if attempt == c.maxAttempts {
			break
		}

		delay := c.baseDelay * time.Duration(attempt)
		c.logger.Warn().Err(err).
			Str("method", method).
			Str("path", path).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("order service connection failed, retrying")
		metrics.UpstreamRetriesTotal.Inc()

		if err := c.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("forward %s %s: %w", method, path, err)
		}
	}

	metrics.UpstreamUnavailableTotal.Inc()
	return nil, fmt.Errorf("%w after %d attempts: %v", domain.ErrUpstreamUnavailable, c.maxAttempts, lastErr)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*ports.UpstreamResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &ports.UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// isConnectError reports whether err happened while establishing the
// connection (refused, unreachable, connect timeout). Failures after a
// connection exists (TLS, writes, response reads, HTTP status codes) are
// not connect errors and must not be retried.
func isConnectError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}

// sleepContext pauses only the calling goroutine, waking early if the
// request context ends.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
