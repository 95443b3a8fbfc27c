// Package api is the typed client for the family backend REST API. Every
// call carries the session cookie; every failure surfaces as an error to the
// caller; there is no retry, backoff, or error caching at this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"
)

// Error is an HTTP-level failure from the backend. Detail carries the
// optional {"detail": ...} envelope when the server sent one.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Page is one page of a list response. Total is the server-side count across
// all pages; the server is authoritative for ordering.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// ListParams are the page/limit query parameters accepted by list endpoints.
// Zero values omit the parameter and the server returns everything.
type ListParams struct {
	Page  int
	Limit int
}

func (p ListParams) query() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// Client talks to the backend under its /api base path. The cookie jar holds
// the session cookie established by the OAuth callback.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// NewClient creates a client for the backend at baseURL (scheme://host, no
// /api suffix).
func NewClient(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var envelope struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Detail = envelope.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

// list fetches a paginated endpoint. The backend answers either a bare
// array (older endpoints) or an {items, total} envelope; both normalize to
// a Page.
func list[T any](ctx context.Context, c *Client, path string, params ListParams) (Page[T], error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, params.query(), &raw); err != nil {
		return Page[T]{}, err
	}
	return decodePage[T](raw)
}

func decodePage[T any](raw json.RawMessage) (Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, fmt.Errorf("decode list: %w", err)
		}
		return Page[T]{Items: items, Total: len(items)}, nil
	}
	var page Page[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return Page[T]{}, fmt.Errorf("decode page: %w", err)
	}
	return page, nil
}
