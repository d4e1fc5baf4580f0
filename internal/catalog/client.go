package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client wraps the catalog backend's REST API. List endpoints return
// paginated results; only the first page matters for the storefront views.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type listResponse struct {
	Count   int       `json:"count"`
	Results []Product `json:"results"`
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	return c.getList(ctx, "/products/")
}

func (c *Client) Featured(ctx context.Context) ([]Product, error) {
	return c.getList(ctx, "/products/featured/")
}

func (c *Client) ByCategory(ctx context.Context, category string) ([]Product, error) {
	if !ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return c.getList(ctx, fmt.Sprintf("/products/category/%s/", category))
}

func (c *Client) Search(ctx context.Context, query string) ([]Product, error) {
	return c.getList(ctx, "/products/search/?q="+url.QueryEscape(query))
}

func (c *Client) Get(ctx context.Context, id int64) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%d/", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get product %d: unexpected status %d", id, resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product %d: %w", id, err)
	}
	return &product, nil
}

func (c *Client) getList(ctx context.Context, path string) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return list.Results, nil
}
