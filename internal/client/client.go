// Package client talks to a remote annoview-compatible document API.
package client

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

	"golang.org/x/time/rate"

	"github.com/ziadkadry99/annoview/internal/document"
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Body)
}

// Client fetches documents from the API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit caps outgoing requests per second. Zero disables the limit.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst <= 0 {
			burst = 5
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListFiles calls GET /api/list_files.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	var files []string
	if err := c.do(ctx, http.MethodGet, "/api/list_files", nil, &files); err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return files, nil
}

// SingleDocument calls GET /api/single_document?filename=name.
func (c *Client) SingleDocument(ctx context.Context, name string) (*document.Document, error) {
	doc := document.New()
	path := "/api/single_document?filename=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, doc); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	return doc, nil
}

// MultipleDocuments calls POST /api/multiple_documents.
func (c *Client) MultipleDocuments(ctx context.Context, names []string) (*document.Collection, error) {
	body, err := json.Marshal(map[string][]string{"files": names})
	if err != nil {
		return nil, err
	}
	coll := document.NewCollection()
	if err := c.do(ctx, http.MethodPost, "/api/multiple_documents", body, coll); err != nil {
		return nil, fmt.Errorf("fetching %d documents: %w", len(names), err)
	}
	return coll, nil
}

// Documents calls GET /api/documents.
func (c *Client) Documents(ctx context.Context) (*document.Document, error) {
	doc := document.New()
	if err := c.do(ctx, http.MethodGet, "/api/documents", nil, doc); err != nil {
		return nil, fmt.Errorf("fetching documents: %w", err)
	}
	return doc, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
