// Package flightinsight provides a client for the FlightInsight review
// question-answering service. Answers stream over a websocket; the regular
// HTTP endpoints are wrapped for convenience.
package flightinsight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	endOfResponseMarker      = "[END_OF_RESPONSE]"
	endOfErrorResponseMarker = "[END_OF_ERROR_RESPONSE]"

	defaultHTTPTimeout = 10 * time.Second
)

// ErrAnswerFailed is returned by Ask when the service reports that answer
// generation failed. Any apology text streamed before the failure is still
// delivered through the chunk callback and the returned answer.
var ErrAnswerFailed = errors.New("flightinsight: answer generation failed")

// Client talks to a FlightInsight server.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	dialer     *websocket.Dialer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for REST endpoints.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDialer replaces the websocket dialer used by Ask.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		dialer:     websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// HealthStatus is the response of the health endpoint. Check values are
// "ok" or "error" keyed by component name.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Healthy reports whether every component check passed.
func (h HealthStatus) Healthy() bool {
	return h.Status == "ok"
}

// SupportedAirlines returns the airlines the service can answer questions about.
func (c *Client) SupportedAirlines(ctx context.Context) ([]string, error) {
	var out struct {
		Airlines []string `json:"airlines"`
	}
	if err := c.getJSON(ctx, "/supported-airlines", &out); err != nil {
		return nil, err
	}
	return out.Airlines, nil
}

// Health returns the service health report. A degraded service still returns
// a report; the error is non-nil only when the request itself failed.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return HealthStatus{}, err
	}
	return out, nil
}

// Ask sends a query over the websocket endpoint and collects the streamed
// answer. onChunk, when non-nil, is invoked for every text chunk as it
// arrives. The full answer is returned once the stream completes. If the
// service signals a generation failure the accumulated text (the apology
// message) is returned together with ErrAnswerFailed.
func (c *Client) Ask(ctx context.Context, query string, onChunk func(text string)) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errors.New("empty query")
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.wsURL(), nil)
	if err != nil {
		return "", fmt.Errorf("dial websocket: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(query)); err != nil {
		return "", fmt.Errorf("send query: %w", err)
	}

	var answer strings.Builder
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return answer.String(), fmt.Errorf("read answer: %w", err)
		}
		switch text := string(data); text {
		case endOfResponseMarker:
			return answer.String(), nil
		case endOfErrorResponseMarker:
			return answer.String(), ErrAnswerFailed
		default:
			answer.WriteString(text)
			if onChunk != nil {
				onChunk(text)
			}
		}
	}
}

func (c *Client) wsURL() string {
	u := *c.baseURL
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("get %s: unexpected status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
