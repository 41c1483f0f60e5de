package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"hostel-desk/config"
	"hostel-desk/internal/metrics"
	"hostel-desk/internal/model"
)

// Client issues create/read/replace/delete calls against named collections of a
// REST resource store. It never retries and sets no timeout of its own: a call
// lasts until the transport resolves or ctx is done.
type Client struct {
	baseURL *url.URL
	headers map[string]string
	client  *http.Client
	metrics *metrics.Metrics
}

// NewClient creates a client for the backend described by cfg. m may be nil.
func NewClient(cfg *config.BackendConfig, m *metrics.Metrics) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url %q: %w", cfg.BaseURL, err)
	}

	transport := http.DefaultTransport
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: invalid proxy URL %q: %v. Backend calls will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Client{
		baseURL: base,
		headers: cfg.Headers,
		client:  &http.Client{Transport: transport},
		metrics: m,
	}, nil
}

// FetchAll decodes every record of the collection into out, which must be a pointer
// to a slice.
func (c *Client) FetchAll(ctx context.Context, collection string, out any) error {
	return c.do(ctx, http.MethodGet, collection, "/"+collection, nil, out)
}

// Create posts record to the collection; the backend assigns the identifier. The
// created record is decoded into out when out is not nil.
func (c *Client) Create(ctx context.Context, collection string, record, out any) error {
	return c.do(ctx, http.MethodPost, collection, "/"+collection, record, out)
}

// Replace sends the full record for id. It is not a partial merge.
func (c *Client) Replace(ctx context.Context, collection string, id model.ID, record, out any) error {
	return c.do(ctx, http.MethodPut, collection, itemPath(collection, id), record, out)
}

// Remove deletes the record with the given id.
func (c *Client) Remove(ctx context.Context, collection string, id model.ID) error {
	return c.do(ctx, http.MethodDelete, collection, itemPath(collection, id), nil, nil)
}

func itemPath(collection string, id model.ID) string {
	return "/" + collection + "/" + url.PathEscape(id.String())
}

func (c *Client) do(ctx context.Context, method, collection, path string, body, out any) (err error) {
	defer func() { c.metrics.ObserveRequest(method, collection, err) }()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", collection, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Op: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &NetworkError{Op: method, Path: path, StatusCode: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: method, Path: path, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", path, err)
	}
	return nil
}
