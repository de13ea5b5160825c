package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/hostsnap/internal/snapname"
	"github.com/five82/hostsnap/internal/version"
)

// Gateway defines the snapshot API operations used by the UI and CLI. It is
// implemented by *Client and can be faked in tests.
type Gateway interface {
	ListHosts(ctx context.Context) ([]string, error)
	ListTimestamps(ctx context.Context, host string) ([]string, error)
	GetSnapshot(ctx context.Context, host, timestamp string) (json.RawMessage, error)
	GetDiff(ctx context.Context, host, t1, t2 string) (DiffResult, error)
	Upload(ctx context.Context, filename string, r io.Reader) error
	Health(ctx context.Context) error
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// APIError is a non-success response from the snapshot API.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
}

// NotFound reports whether the API could not locate the snapshot. The backend
// answers 204 for a timestamp it has no file for.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound || e.Status == http.StatusNoContent
}

// IsNotFound unwraps err looking for a not-found APIError.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// Client talks to the snapshot HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBase = "127.0.0.1:8080"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// NewClient builds a Client for the apiBase host:port or URL. A zero timeout
// uses the default.
func NewClient(apiBase string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: version.UserAgent(),
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListHosts returns every host with at least one snapshot.
func (c *Client) ListHosts(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var hosts []string
	if err := c.get(ctx, "/api/host/all", nil, &hosts); err != nil {
		return nil, err
	}
	return hosts, nil
}

// ListTimestamps returns the snapshot timestamps of host in backend order.
func (c *Client) ListTimestamps(ctx context.Context, host string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, fmt.Errorf("host required")
	}
	values := url.Values{}
	values.Set("ip", host)
	var timestamps []string
	if err := c.get(ctx, "/api/host", values, &timestamps); err != nil {
		return nil, err
	}
	return timestamps, nil
}

// GetSnapshot returns the JSON document captured for host at timestamp.
func (c *Client) GetSnapshot(ctx context.Context, host, timestamp string) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(host) == "" || strings.TrimSpace(timestamp) == "" {
		return nil, fmt.Errorf("host and timestamp required")
	}
	values := url.Values{}
	values.Set("ip", host)
	values.Set("at", timestamp)
	var content json.RawMessage
	if err := c.get(ctx, "/api/snapshot", values, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// GetDiff compares the snapshots of host taken at t1 and t2.
func (c *Client) GetDiff(ctx context.Context, host, t1, t2 string) (DiffResult, error) {
	if c == nil {
		return DiffResult{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(host) == "" || strings.TrimSpace(t1) == "" || strings.TrimSpace(t2) == "" {
		return DiffResult{}, fmt.Errorf("host and both timestamps required")
	}
	values := url.Values{}
	values.Set("ip", host)
	values.Set("t1", t1)
	values.Set("t2", t2)
	var payload diffResponse
	if err := c.get(ctx, "/api/snapshot/diff", values, &payload); err != nil {
		return DiffResult{}, err
	}
	return DiffResult{
		Status:      ParseDiffStatus(payload.DiffStatus),
		Differences: payload.Differences,
	}, nil
}

// Upload sends a snapshot file. The filename is validated first; a
// *snapname.ValidationError is returned as is and nothing is sent.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	name, err := snapname.Validate(filename)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", name.Filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("read %s: %w", name.Filename, err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	rel := &url.URL{Path: "/api/snapshot"}
	return c.do(ctx, http.MethodPost, rel, &body, form.FormDataContentType(), nil)
}

// Health checks that the API answers.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.get(ctx, "/api/health", nil, nil)
}

func (c *Client) get(ctx context.Context, path string, values url.Values, dest any) error {
	rel := &url.URL{Path: path}
	if len(values) > 0 {
		rel.RawQuery = values.Encode()
	}
	return c.do(ctx, http.MethodGet, rel, nil, "", dest)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(rel.Path, resp)
	}
	if dest == nil {
		return nil
	}
	if resp.StatusCode == http.StatusNoContent {
		return &APIError{Path: rel.Path, Status: resp.StatusCode, Message: "snapshot not found"}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(path string, resp *http.Response) *APIError {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Path:    path,
		Status:  resp.StatusCode,
		Message: strings.TrimSpace(string(msg)),
	}
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base %q: missing host", apiBase)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
