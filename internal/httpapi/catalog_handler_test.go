package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johan374/Ecommerce-production/internal/catalog"
	"github.com/johan374/Ecommerce-production/internal/session"
)

type mockBrowser struct {
	products []catalog.Product
	err      error
	gotQuery string
}

func (m *mockBrowser) List(context.Context) ([]catalog.Product, error) {
	return m.products, m.err
}

func (m *mockBrowser) Featured(context.Context) ([]catalog.Product, error) {
	return m.products, m.err
}

func (m *mockBrowser) ByCategory(_ context.Context, _ string) ([]catalog.Product, error) {
	return m.products, m.err
}

func (m *mockBrowser) Search(_ context.Context, query string) ([]catalog.Product, error) {
	m.gotQuery = query
	return m.products, m.err
}

func newCatalogServer(t *testing.T, browser CatalogBrowser) *httptest.Server {
	t.Helper()
	registry := session.NewRegistry(time.Minute)
	cartHandler := NewCartHandler(&mockProductGetter{}, &mockCheckoutService{})
	router := NewRouter(registry, cartHandler, NewCatalogHandler(browser), 5*time.Second)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestCatalogAPI_List(t *testing.T) {
	browser := &mockBrowser{products: []catalog.Product{{ID: 1, Name: "Laptop"}}}
	srv := newCatalogServer(t, browser)

	resp, err := http.Get(srv.URL + "/api/v1/products/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list ProductListDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "Laptop", list.Results[0].Name)
}

func TestCatalogAPI_InvalidCategory(t *testing.T) {
	srv := newCatalogServer(t, &mockBrowser{})

	resp, err := http.Get(srv.URL + "/api/v1/products/category/toys")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogAPI_SearchRequiresQuery(t *testing.T) {
	srv := newCatalogServer(t, &mockBrowser{})

	resp, err := http.Get(srv.URL + "/api/v1/products/search")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogAPI_Search(t *testing.T) {
	browser := &mockBrowser{}
	srv := newCatalogServer(t, browser)

	resp, err := http.Get(srv.URL + "/api/v1/products/search?q=laptop")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "laptop", browser.gotQuery)
}

func TestCatalogAPI_BackendUnavailable(t *testing.T) {
	srv := newCatalogServer(t, &mockBrowser{err: errors.New("backend down")})

	resp, err := http.Get(srv.URL + "/api/v1/products/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
