package building

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/five82/concierge/internal/listing"
)

const (
	// DefaultBaseURL is the backend root used when none is configured.
	DefaultBaseURL   = "http://localhost:8080/api/v1"
	defaultUserAgent = "concierge/0.1"
	defaultTimeout   = 5 * time.Second
	maxErrorBody     = 4096

	// RequestIDHeader carries the per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Options tune a Client. The zero value is usable.
type Options struct {
	Timeout    time.Duration
	Token      TokenProvider
	Logger     logr.Logger
	HTTPClient *http.Client
	UserAgent  string
}

// Client talks to the building management REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     TokenProvider
	log       logr.Logger
	userAgent string
}

// NewClient builds a Client rooted at baseURL, e.g.
// http://localhost:8080/api/v1.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:   base,
		http:      httpClient,
		token:     opts.Token,
		log:       opts.Logger.WithName("building"),
		userAgent: userAgent,
	}, nil
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// envelope is the paginated list response body.
type envelope[T any] struct {
	Data struct {
		Result        []T `json:"result"`
		PageSize      int `json:"pageSize"`
		TotalPages    int `json:"totalPages"`
		TotalElements int `json:"totalElements"`
	} `json:"data"`
}

// List fetches one page of resource. The filter parameter is omitted when
// req.Filter is empty.
func List[T any](ctx context.Context, c *Client, resource string, req listing.Request) (listing.Result[T], error) {
	if c == nil {
		return listing.Result[T]{}, ErrNilClient
	}
	values := url.Values{}
	size := req.Size
	if size <= 0 {
		size = listing.DefaultPageSize
	}
	pageNum := max(req.Page, 1)
	values.Set("size", strconv.Itoa(size))
	values.Set("page", strconv.Itoa(pageNum))
	if expr := strings.TrimSpace(req.Filter); expr != "" {
		values.Set("filter", expr)
	}

	var payload envelope[T]
	if err := c.do(ctx, http.MethodGet, resource, values, nil, &payload); err != nil {
		return listing.Result[T]{}, err
	}
	items := payload.Data.Result
	if items == nil {
		items = []T{}
	}
	return listing.Result[T]{
		Items: items,
		Page: listing.Page{
			Number:        pageNum,
			Size:          size,
			TotalPages:    payload.Data.TotalPages,
			TotalElements: payload.Data.TotalElements,
		},
	}, nil
}

// NewLister binds List to one resource for use by a listing.Controller.
func NewLister[T any](c *Client, resource string) listing.Lister[T] {
	return listing.ListerFunc[T](func(ctx context.Context, req listing.Request) (listing.Result[T], error) {
		return List[T](ctx, c, resource, req)
	})
}

// Count returns the total number of elements of resource by fetching a
// single-row page.
func (c *Client) Count(ctx context.Context, resource string) (int, error) {
	res, err := List[json.RawMessage](ctx, c, resource, listing.Request{Page: 1, Size: 1})
	if err != nil {
		return 0, err
	}
	return res.Page.TotalElements, nil
}

// Create posts body to resource and decodes the created entity into dest,
// which may be nil.
func (c *Client) Create(ctx context.Context, resource string, body, dest any) error {
	if c == nil {
		return ErrNilClient
	}
	return c.do(ctx, http.MethodPost, resource, nil, body, dest)
}

// Update puts body to resource and decodes the updated entity into dest,
// which may be nil.
func (c *Client) Update(ctx context.Context, resource string, body, dest any) error {
	if c == nil {
		return ErrNilClient
	}
	return c.do(ctx, http.MethodPut, resource, nil, body, dest)
}

// Delete removes the entity id of resource.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	if c == nil {
		return ErrNilClient
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("delete %s: id required", resource)
	}
	return c.do(ctx, http.MethodDelete, resource+"/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	reqURL := c.baseURL.JoinPath(strings.Trim(path, "/"))
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}
	apiPath := "/" + strings.Trim(path, "/")

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		tok, err := c.token.Token(ctx)
		if err != nil {
			return fmt.Errorf("resolve token: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.log.Info("request failed", "method", method, "path", apiPath, "requestID", requestID, "latency", latency, "error", err.Error())
		return &APIError{Kind: KindTransport, Method: method, Path: apiPath, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	c.log.V(1).Info("request", "method", method, "path", apiPath, "query", reqURL.RawQuery, "status", resp.StatusCode, "requestID", requestID, "latency", latency)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(method, apiPath, resp.StatusCode, slurp)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &APIError{Kind: KindDecode, Method: method, Path: apiPath, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
