// ABOUTME: Request executor wrapping single outbound HTTP calls
// ABOUTME: Applies per-request timeouts and uniform failure classification

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Request describes one outbound call. Out, when non-nil, receives the
// decoded JSON response body on success.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Token     string
	Body      any
	Operation string
	Out       any
}

// Executor issues single requests against the service base URL. It does
// not retry: every failure surfaces to the caller fully classified so the
// caller can own its retry policy.
type Executor struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewExecutor creates an executor for the given base URL. A zero timeout
// disables the per-request deadline. A nil httpClient falls back to
// http.DefaultClient, and a nil logger to slog.Default().
func NewExecutor(baseURL string, timeout time.Duration, httpClient *http.Client, logger *slog.Logger) *Executor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger.With("component", "transport"),
	}
}

// Execute issues the request and decodes the response into req.Out.
// Failures are returned as *TimeoutError when the configured timeout
// elapsed, *StatusError for non-success responses, or a wrapped transport
// error otherwise.
func (e *Executor) Execute(ctx context.Context, req Request) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	target := e.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("%s: marshaling request: %w", req.Operation, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", req.Operation, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			e.logger.Error("request timed out",
				"operation", req.Operation,
				"timeout", e.timeout,
			)
			return &TimeoutError{Operation: req.Operation}
		}
		e.logger.Error("request failed",
			"operation", req.Operation,
			"error", err,
		)
		return fmt.Errorf("%s: %w", req.Operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			Operation:  req.Operation,
			Category:   Classify(resp.StatusCode),
		}
		e.logger.Error("request rejected",
			"operation", req.Operation,
			"status", statusErr.StatusCode,
			"category", string(statusErr.Category),
		)
		return statusErr
	}

	if req.Out != nil {
		if err := json.NewDecoder(resp.Body).Decode(req.Out); err != nil {
			return fmt.Errorf("%s: decoding response: %w", req.Operation, err)
		}
		return nil
	}

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
