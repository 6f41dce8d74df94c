package resolvex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/dnsdeck/internal/transport"
)

// Fetcher reads the full record list.
type Fetcher interface {
	List(ctx context.Context) (ListResponse, error)
}

// Mutator changes single records.
type Mutator interface {
	Create(ctx context.Context, domain string) error
	Update(ctx context.Context, oldDomain, newDomain string) error
	Delete(ctx context.Context, domain string) error
}

// Ensure Client implements Fetcher and Mutator at compile time.
var (
	_ Fetcher = (*Client)(nil)
	_ Mutator = (*Client)(nil)
)

// Client talks to the resolvex admin API.
type Client struct {
	baseURL   *url.URL
	doer      transport.Doer
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8080"
	defaultUserAgent = "dnsdeck/0.1"
	maxBodySize      = 4 << 20

	// DefaultRequestTimeout bounds a single call when the caller builds the
	// underlying http.Client with NewHTTPClient.
	DefaultRequestTimeout = 5 * time.Second
)

// NewHTTPClient returns the plain client to wrap with transport
// instrumentation.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NewClient builds a Client for apiBind (host:port or URL). A nil doer uses
// a fresh http.Client with the default timeout.
func NewClient(apiBind string, doer transport.Doer) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	if doer == nil {
		doer = NewHTTPClient(0)
	}
	return &Client{
		baseURL:   base,
		doer:      doer,
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL reports the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List retrieves every record. A success response without a "list" key
// yields a ListResponse with nil List and no error.
func (c *Client) List(ctx context.Context) (ListResponse, error) {
	if c == nil {
		return ListResponse{}, fmt.Errorf("client is nil")
	}
	var payload ListResponse
	if err := c.do(ctx, http.MethodGet, "/api", nil, &payload); err != nil {
		return ListResponse{}, err
	}
	return payload, nil
}

// Create registers a new domain.
func (c *Client) Create(ctx context.Context, domain string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPost, "/api", DomainRequest{Domain: domain}, nil)
}

// Update renames oldDomain to newDomain.
func (c *Client) Update(ctx context.Context, oldDomain, newDomain string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPut, domainPath(oldDomain), DomainRequest{Domain: newDomain}, nil)
}

// Delete removes a domain.
func (c *Client) Delete(ctx context.Context, domain string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, domainPath(domain), nil, nil)
}

// domainPath matches the server's "/api/{domain}/" routes.
func domainPath(domain string) string {
	return "/api/" + url.PathEscape(domain) + "/"
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	op := method + " " + path

	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		return newServerError(op, resp.StatusCode, string(text))
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil
	}
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize))
	if err := decoder.Decode(dest); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
