package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Cheertaboi/cart-service/internal/models"
)

// CartService is the cart session the handlers drive.
type CartService interface {
	Products() []models.Product
	Cart() models.Snapshot
	AddToCart(productID int) models.Snapshot
	UpdateQuantity(productID, delta int) models.Snapshot
	RemoveItem(productID int) models.Snapshot
	Clear() models.Snapshot
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// --- Request / Response DTOs ---

type AddItemRequest struct {
	ProductID *int `json:"product_id" validate:"required"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required,ne=0,min=-1000,max=1000"`
}

type ProductsResponse struct {
	Products []models.Product `json:"products"`
}

// --- Handler struct & constructor ---

type CartHandler struct {
	service  CartService
	validate *validator.Validate
}

func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{
		service:  svc,
		validate: validator.New(),
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func productIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		return 0, errors.New("invalid product id")
	}
	return id, nil
}

func (h *CartHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid_body")
	}
	return h.validate.Struct(v)
}

// --- Handlers ---

// ListProducts handles GET /products
func (h *CartHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProductsResponse{Products: h.service.Products()})
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Cart())
}

// AddItem handles POST /cart/items
// unknown products are ignored and the unchanged cart is returned
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.service.AddToCart(*req.ProductID))
}

// UpdateQuantity handles PATCH /cart/items/{productID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req UpdateQuantityRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.service.UpdateQuantity(id, req.Delta))
}

// RemoveItem handles DELETE /cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.service.RemoveItem(id))
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Clear())
}
