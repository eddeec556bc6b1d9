package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"console/internal/domain"
	"console/internal/infra"
)

// DefaultBaseURL is used when no API base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

const fallbackDetail = "An error occurred"

// ErrUnauthorized is returned when the backend answers 401 on an authenticated
// call. The stored credentials have already been cleared when it is returned.
var ErrUnauthorized = fmt.Errorf("backend: %w", domain.ErrUnauthorized)

// APIError is a non-2xx backend response other than 401.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// Is lets errors.Is match domain.ErrNotFound on 404 and domain.ErrForbidden on 403.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// Options configures the backend client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
	// RequestID extracts the inbound request id to forward as X-Request-ID.
	RequestID func(context.Context) string
}

// Client performs authenticated calls against the admin REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
	requestID  func(context.Context) string
	creds      domain.Credentials
}

var _ domain.Backend = (*Client)(nil)

// NewClient constructs a client with defaults applied.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend: invalid base url %q", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		l := infra.Logger(zerolog.New(io.Discard))
		logger = &l
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		requestID:  opts.RequestID,
	}, nil
}

// WithCredentials returns a shallow copy bound to creds. The receiver is not modified.
func (c *Client) WithCredentials(creds domain.Credentials) *Client {
	cp := *c
	cp.creds = creds
	return &cp
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) token() string {
	if c.creds == nil {
		return ""
	}
	return strings.TrimSpace(c.creds.Token())
}

// do sends an authenticated JSON request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.setRequestID(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read response: %w", err)
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("backend call")

	if resp.StatusCode == http.StatusUnauthorized {
		if c.creds != nil {
			c.creds.Clear()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Detail: parseDetail(raw, fallbackDetail)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

func (c *Client) setRequestID(ctx context.Context, req *http.Request) {
	if c.requestID == nil {
		return
	}
	if id := c.requestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
}

// parseDetail extracts the backend's detail message. FastAPI validation
// errors carry a list of {msg} objects, which are joined.
func parseDetail(raw []byte, fallback string) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return fallback
	}
	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		if text == "" {
			return fallback
		}
		return text
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if m := strings.TrimSpace(it.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return fallback
}

// Detail returns the message to display for err: the backend detail for an
// APIError, fallback for anything else.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
