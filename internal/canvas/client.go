// Package canvas provides a client for the Canvas LMS pages API.
package canvas

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

	"github.com/phuslu/log"
	"golang.org/x/time/rate"

	"github.com/alnah/go-glossary/internal/logging"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
	DefaultPerPage   = 100
)

// maxErrorBody bounds how much of an error response is kept in APIError.
const maxErrorBody = 4 << 10

var (
	ErrNotFound     = errors.New("canvas: resource not found")
	ErrUnauthorized = errors.New("canvas: unauthorized")
	ErrForeignLink  = errors.New("canvas: pagination link points to another host")
)

// PageSummary is a page as returned by the list endpoint, without body.
type PageSummary struct {
	PageID    int64     `json:"page_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page is a single page with its body. Body is nil when Canvas returns null.
type Page struct {
	PageID int64   `json:"page_id"`
	URL    string  `json:"url"`
	Title  string  `json:"title"`
	Body   *string `json:"body"`
}

// Client implements the Canvas pages API used by the glossary runner.
// Requests are issued one at a time through a rate limiter; nothing is retried.
type Client struct {
	baseURL    string
	token      string
	perPage    int
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit. Zero disables limiting.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout. It applies to a client passed with
// WithHTTPClient too, without modifying the caller's client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithPerPage sets the page size requested from list endpoints.
func WithPerPage(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// NewClient creates a client for the Canvas instance at baseURL.
func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		perPage: DefaultPerPage,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  logging.Silent(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// APIError represents a non-2xx response.
type APIError struct {
	StatusCode int
	Method     string
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("canvas API error: %s %s: status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
}

// Is maps status codes onto ErrNotFound and ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// ListPages returns every page of a course, following pagination links.
func (c *Client) ListPages(ctx context.Context, courseID string) ([]PageSummary, error) {
	next := fmt.Sprintf("%s/api/v1/courses/%s/pages?per_page=%d", c.baseURL, url.PathEscape(courseID), c.perPage)

	var pages []PageSummary
	for next != "" {
		var batch []PageSummary
		header, err := c.do(ctx, http.MethodGet, next, nil, &batch)
		if err != nil {
			return nil, err
		}
		pages = append(pages, batch...)

		link := nextLink(header.Get("Link"))
		if link == "" {
			break
		}
		// The token is only ever sent to the configured host
		next, err = c.resolveLink(link)
		if err != nil {
			return nil, err
		}
	}
	return pages, nil
}

// resolveLink resolves a pagination link against the base URL and rejects
// links to any other host.
func (c *Client) resolveLink(link string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid pagination link %q: %w", link, err)
	}
	target := base.ResolveReference(ref)
	if !strings.EqualFold(target.Host, base.Host) {
		return "", fmt.Errorf("%w: %s", ErrForeignLink, target.Host)
	}
	return target.String(), nil
}

// GetPage returns a page including its body.
func (c *Client) GetPage(ctx context.Context, courseID, pageURL string) (*Page, error) {
	var page Page
	if _, err := c.do(ctx, http.MethodGet, c.pageEndpoint(courseID, pageURL), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage replaces the body of a page and returns the stored page.
func (c *Client) UpdatePage(ctx context.Context, courseID, pageURL, body string) (*Page, error) {
	payload := updatePageRequest{}
	payload.WikiPage.Body = body

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var page Page
	if _, err := c.do(ctx, http.MethodPut, c.pageEndpoint(courseID, pageURL), data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type updatePageRequest struct {
	WikiPage struct {
		Body string `json:"body"`
	} `json:"wiki_page"`
}

func (c *Client) pageEndpoint(courseID, pageURL string) string {
	return fmt.Sprintf("%s/api/v1/courses/%s/pages/%s", c.baseURL, url.PathEscape(courseID), url.PathEscape(pageURL))
}

// do performs a rate-limited request and decodes a JSON response into result.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, result any) (http.Header, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	path := req.URL.Path
	c.logger.Debug().Str("method", method).Str("path", path).Msg("canvas API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Endpoint:   path,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp.Header, nil
}

// nextLink extracts the rel="next" target from an RFC 8288 Link header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range segments[1:] {
			param = strings.TrimSpace(param)
			if strings.EqualFold(param, `rel="next"`) || strings.EqualFold(param, "rel=next") {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}
