// Package apiclient is the transport shared by the clinic backend service
// clients. It issues JSON requests against a fixed origin, attaches the
// session bearer token, paces outbound calls, and turns failures into
// NetworkError or APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/clinicaflow/console/internal/platform/telemetry"
)

// TokenSource yields the bearer token for the current session, or "".
type TokenSource interface {
	Token() string
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond paces outbound calls; zero disables pacing.
	RequestsPerSecond float64
	Tokens            TokenSource
	// Transport overrides the default otelhttp-instrumented transport.
	Transport http.RoundTripper
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// New creates a Client for the backend at cfg.BaseURL.
func New(cfg Config, logger zerolog.Logger) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		tokens:     cfg.Tokens,
		limiter:    limiter,
		logger:     logger.With().Str("component", "apiclient").Logger(),
	}
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE. out may be nil.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

// PostText issues a POST with a JSON body against an endpoint that answers
// in plain text. The text is returned on 2xx and becomes the APIError
// message otherwise.
func (c *Client) PostText(ctx context.Context, path string, body any) (string, error) {
	status, raw, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(raw))
	if status < 200 || status >= 300 {
		apiErr := &APIError{Status: status, Message: text, Body: string(raw)}
		if text == "" {
			apiErr.Message = extractMessage(status, raw)
		}
		c.logFailure(http.MethodPost, path, apiErr)
		return "", apiErr
	}
	return text, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	status, raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		apiErr := newAPIError(status, raw)
		c.logFailure(method, path, apiErr)
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Some mutation endpoints answer with a bare text confirmation.
		if s, ok := out.(*string); ok {
			*s = strings.TrimSpace(string(raw))
			return nil
		}
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	start := time.Now()
	label := routeLabel(path)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			netErr := &NetworkError{Method: method, Path: path, Err: err}
			c.logFailure(method, path, netErr)
			return 0, nil, netErr
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.RecordBackendCall(method, label, "network_error", time.Since(start))
		netErr := &NetworkError{Method: method, Path: path, Err: err}
		c.logFailure(method, path, netErr)
		return 0, nil, netErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.RecordBackendCall(method, label, "network_error", time.Since(start))
		netErr := &NetworkError{Method: method, Path: path, Err: err}
		c.logFailure(method, path, netErr)
		return 0, nil, netErr
	}

	outcome := "ok"
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = "api_error"
	}
	telemetry.RecordBackendCall(method, label, outcome, time.Since(start))

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	return resp.StatusCode, raw, nil
}

func (c *Client) logFailure(method, path string, err error) {
	c.logger.Warn().
		Err(err).
		Str("method", method).
		Str("path", path).
		Msg("backend call failed")
}

// routeLabel collapses numeric path segments so metric label cardinality
// stays bounded.
func routeLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg != "" && isDigits(seg) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
