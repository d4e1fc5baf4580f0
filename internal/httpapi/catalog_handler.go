package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johan374/Ecommerce-production/internal/catalog"
)

// CatalogBrowser is the read surface the storefront exposes.
type CatalogBrowser interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Featured(ctx context.Context) ([]catalog.Product, error)
	ByCategory(ctx context.Context, category string) ([]catalog.Product, error)
	Search(ctx context.Context, query string) ([]catalog.Product, error)
}

type CatalogHandler struct {
	service CatalogBrowser
}

func NewCatalogHandler(service CatalogBrowser) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type ProductListDTO struct {
	Count   int               `json:"count"`
	Results []catalog.Product `json:"results"`
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to list products")
		return
	}
	respondJSON(w, http.StatusOK, ProductListDTO{Count: len(products), Results: products})
}

func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Featured(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to list featured products")
		return
	}
	respondJSON(w, http.StatusOK, ProductListDTO{Count: len(products), Results: products})
}

func (h *CatalogHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !catalog.ValidCategory(category) {
		respondError(w, http.StatusBadRequest, "invalid_category", "category must be electronics or food")
		return
	}

	products, err := h.service.ByCategory(r.Context(), category)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to list category products")
		return
	}
	respondJSON(w, http.StatusOK, ProductListDTO{Count: len(products), Results: products})
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing_query", "q parameter is required")
		return
	}

	products, err := h.service.Search(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "search failed")
		return
	}
	respondJSON(w, http.StatusOK, ProductListDTO{Count: len(products), Results: products})
}
