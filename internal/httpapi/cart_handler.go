package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/johan374/Ecommerce-production/internal/cart"
	"github.com/johan374/Ecommerce-production/internal/catalog"
	"github.com/johan374/Ecommerce-production/internal/checkout"
	"github.com/johan374/Ecommerce-production/internal/payment"
	"github.com/johan374/Ecommerce-production/internal/session"
)

// ProductGetter resolves a product id against the catalog before it
// enters the cart.
type ProductGetter interface {
	Get(ctx context.Context, id int64) (*catalog.Product, error)
}

type CartHandler struct {
	catalog  ProductGetter
	checkout session.CheckoutService
}

func NewCartHandler(catalog ProductGetter, checkout session.CheckoutService) *CartHandler {
	return &CartHandler{
		catalog:  catalog,
		checkout: checkout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartViewDTO struct {
	Items           []cart.LineItem `json:"items"`
	ItemCount       int             `json:"item_count"`
	TotalMinorUnits int64           `json:"total_minor_units"`
}

func cartView(sess *session.Session) CartViewDTO {
	snapshot := sess.Snapshot()
	return CartViewDTO{
		Items:           snapshot.Items(),
		ItemCount:       cart.ItemCount(snapshot),
		TotalMinorUnits: cart.TotalMinorUnits(snapshot),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "cart session missing")
		return
	}

	respondJSON(w, http.StatusOK, cartView(sess))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "cart session missing")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to look up product")
		return
	}

	err = sess.AddItem(cart.Product{
		ID:        strconv.FormatInt(product.ID, 10),
		Name:      product.Name,
		ImageURL:  product.ImageURL,
		UnitPrice: product.Price,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, cartView(sess))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "cart session missing")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	// Quantity 0 means removal at this boundary; the ledger itself keeps
	// zero-quantity lines around, which no UI caller ever wants.
	if req.Quantity == 0 {
		if err := sess.RemoveItem(productID); err != nil {
			respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, cartView(sess))
		return
	}

	if err := sess.UpdateQuantity(productID, req.Quantity); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cartView(sess))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "cart session missing")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	// Removal is idempotent: removing an absent product is still a 200.
	if err := sess.RemoveItem(productID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cartView(sess))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "cart session missing")
		return
	}

	sess.Clear()
	respondJSON(w, http.StatusOK, cartView(sess))
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "cart session missing")
		return
	}

	confirmation, err := sess.Checkout(r.Context(), h.checkout)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		case errors.Is(err, payment.ErrPaymentDeclined):
			respondError(w, http.StatusPaymentRequired, "payment_declined", err.Error())
		default:
			respondError(w, http.StatusBadGateway, "checkout_failed", "checkout failed, cart left unchanged")
		}
		return
	}

	respondJSON(w, http.StatusCreated, confirmation)
}
