// Package api is the HTTP client for the lytelode backend: national
// loadshedding status, area search and per-area schedules. The backend
// proxies EskomSePush; this package only consumes it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when Config.Timeout is unset.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Config holds the client settings.
type Config struct {
	// BaseURL is the scheme and host the /api paths are appended to,
	// e.g. "https://lytelode-1.onrender.com". A trailing slash is ignored.
	BaseURL string

	// Timeout bounds each request. Zero uses DefaultTimeout; a negative
	// value disables the client-side timeout.
	Timeout time.Duration

	// UserAgent is sent with every request when non-empty.
	UserAgent string

	// HTTPClient overrides the underlying client (tests). Timeout is
	// ignored when set.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client talks to the lytelode backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base URL %q must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		switch {
		case timeout == 0:
			timeout = DefaultTimeout
		case timeout < 0:
			timeout = 0
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches the national loadshedding status.
func (c *Client) Status(ctx context.Context) (*NationalStatus, error) {
	var out NationalStatus
	if err := c.getJSON(ctx, "status", "/api/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchAreas looks up areas by name. An empty, non-nil slice is returned
// when nothing matches.
func (c *Client) SearchAreas(ctx context.Context, query string) ([]AreaSummary, error) {
	var out struct {
		Areas []AreaSummary `json:"areas"`
	}
	q := url.Values{"q": {query}}
	if err := c.getJSON(ctx, "search", "/api/area/search", q, &out); err != nil {
		return nil, err
	}
	if out.Areas == nil {
		out.Areas = []AreaSummary{}
	}
	return out.Areas, nil
}

// Area fetches the schedule for one area. Events whose start is not before
// their end, or whose timestamps cannot be parsed, are dropped.
func (c *Client) Area(ctx context.Context, id string) (*AreaDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &Error{Op: "area", Kind: KindTransport, Message: "area id is required"}
	}
	var out AreaDetail
	if err := c.getJSON(ctx, "area", "/api/area/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}

	valid := make([]Event, 0, len(out.Events))
	for _, ev := range out.Events {
		if _, _, ok := ev.Window(); !ok {
			c.logger.Warn("dropping invalid event", "area", id, "start", ev.Start, "end", ev.End)
			continue
		}
		valid = append(valid, ev)
	}
	out.Events = valid
	return &out, nil
}

// Health fetches the backend health report.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.getJSON(ctx, "health", "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// errorEnvelope detects the backend's application-level error field.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

// message returns the error text and whether an error field was present.
func (e errorEnvelope) message() (string, bool) {
	raw := bytes.TrimSpace(e.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	return string(raw), true
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "url", endpoint, "error", err)
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	c.logger.Debug("request complete",
		"op", op,
		"url", endpoint,
		"status_code", resp.StatusCode,
		"bytes", len(body),
		"latency", time.Since(start),
	)

	var env errorEnvelope
	envErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{Op: op, Kind: KindTransport, StatusCode: resp.StatusCode}
		if envErr == nil {
			e.Message, _ = env.message()
		}
		return e
	}

	if envErr != nil {
		return &Error{Op: op, Kind: KindDecode, StatusCode: resp.StatusCode, Err: envErr}
	}
	if msg, ok := env.message(); ok {
		return &Error{Op: op, Kind: KindApplication, StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: op, Kind: KindDecode, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
