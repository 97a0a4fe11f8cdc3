// Package unsplash searches Unsplash for plant photos.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL = "https://api.unsplash.com"
	DefaultPerPage = 20
)

// ErrMissingAccessKey is returned by Search when no access key is configured.
var ErrMissingAccessKey = errors.New("unsplash access key not configured (set SPROUT_UNSPLASH_ACCESS_KEY)")

// ErrEmptyQuery is returned by Search for a blank query.
var ErrEmptyQuery = errors.New("search query cannot be empty")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unsplash API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("unsplash API returned %d: %s", e.StatusCode, e.Message)
}

// Photo is one search hit.
type Photo struct {
	ID          string    `json:"id"`
	Description string    `json:"alt_description"`
	URLs        PhotoURLs `json:"urls"`
	User        User      `json:"user"`
}

// PhotoURLs holds the rendition links of a photo.
type PhotoURLs struct {
	Small   string `json:"small"`
	Regular string `json:"regular"`
}

// User is the photographer.
type User struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// AttributionURL links to the photographer's profile as Unsplash requires.
func (u User) AttributionURL() string {
	return "https://unsplash.com/@" + url.PathEscape(u.Username) + "?utm_source=sprout&utm_medium=referral"
}

// SearchResult is one page of results.
type SearchResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Client is an Unsplash API client.
type Client struct {
	accessKey  string
	baseURL    string
	perPage    int
	httpClient *http.Client
	group      singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another host, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPerPage sets the page size.
func WithPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// NewClient creates a client. An empty accessKey is allowed; Search then
// fails with ErrMissingAccessKey.
func NewClient(accessKey string, opts ...Option) *Client {
	c := &Client{
		accessKey:  accessKey,
		baseURL:    DefaultBaseURL,
		perPage:    DefaultPerPage,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an access key is set.
func (c *Client) Configured() bool {
	return c.accessKey != ""
}

// Search returns page (1-based) of photos matching query. Identical
// concurrent searches share one request.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	if !c.Configured() {
		return nil, ErrMissingAccessKey
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	key := query + "\x00" + strconv.Itoa(page)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.search(ctx, query, page)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*SearchResult), nil
	}
}

func (c *Client) search(ctx context.Context, query string, page int) (*SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(c.perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	slog.Debug("unsplash search", "query", query, "page", page)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// errorMessage extracts {"errors": [...]} from an error body.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}
	var payload struct {
		Errors []string `json:"errors"`
	}
	if json.Unmarshal(data, &payload) == nil && len(payload.Errors) > 0 {
		return strings.Join(payload.Errors, "; ")
	}
	return strings.TrimSpace(string(data))
}
