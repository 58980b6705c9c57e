package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"void-shop/internal/model"
	"void-shop/internal/service"

	"github.com/rs/zerolog"
)

// InventoryHandler handles inventory-related HTTP requests.
type InventoryHandler struct {
	inventory service.InventoryService
	purchase  service.PurchaseService
	admin     service.AdminService
	logger    zerolog.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(
	inventory service.InventoryService,
	purchase service.PurchaseService,
	admin service.AdminService,
	logger zerolog.Logger,
) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		purchase:  purchase,
		admin:     admin,
		logger:    logger.With().Str("handler", "inventory").Logger(),
	}
}

// purchaseFailure mirrors the wire shape of a failed purchase.
type purchaseFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// resetResponse is the body of a successful inventory reset.
type resetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// updateRequest is the body of a PUT quantity update. Quantity is a pointer
// so a missing field can be told apart from zero.
type updateRequest struct {
	Quantity *int `json:"quantity"`
}

// updateResponse is the body of a successful quantity update.
type updateResponse struct {
	Success bool           `json:"success"`
	Product updatedProduct `json:"product"`
}

type updatedProduct struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	SoldOut   bool   `json:"soldOut"`
}

// productResponse is the body of a single-product lookup.
type productResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	SoldOut   bool    `json:"soldOut"`
}

// productIDFromPath extracts the product ID from paths of the form
// /api/inventory/{id}[/suffix].
func productIDFromPath(path string) string {
	rest := strings.TrimPrefix(path, "/api/inventory/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// List handles GET /api/inventory requests.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	inventory, err := h.inventory.ListInventory(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error fetching inventory", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, inventory)
}

// GetByID handles GET /api/inventory/{id} requests.
func (h *InventoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := productIDFromPath(r.URL.Path)
	if productID == "" {
		writeError(w, r, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	product, err := h.inventory.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, "Product not found", h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "Error fetching product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		ProductID: product.ProductID,
		Name:      product.Name,
		Quantity:  product.Quantity,
		Price:     product.Price,
		SoldOut:   product.SoldOut(),
	})
}

// CheckAvailability handles GET /api/inventory/{id}/available requests.
// Unknown product IDs answer {available:false, soldOut:true} with 200.
func (h *InventoryHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := productIDFromPath(r.URL.Path)
	availability, err := h.inventory.CheckAvailability(r.Context(), productID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error checking availability", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, availability)
}

// Purchase handles POST /api/inventory/{id}/purchase requests.
func (h *InventoryHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := productIDFromPath(r.URL.Path)
	result, err := h.purchase.Purchase(r.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrProductNotFound):
			writeJSON(w, http.StatusNotFound, purchaseFailure{Error: "Product not found"})
		case errors.Is(err, model.ErrProductSoldOut):
			writeJSON(w, http.StatusBadRequest, purchaseFailure{Error: "Product sold out"})
		default:
			h.logger.Error().Err(err).Str("product_id", productID).Msg("purchase failed")
			writeJSON(w, http.StatusInternalServerError, purchaseFailure{Error: "Transaction failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Reset handles POST /api/inventory/reset requests.
func (h *InventoryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := h.admin.ResetAll(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, purchaseFailure{Error: "Error resetting inventory"})
		return
	}

	writeJSON(w, http.StatusOK, resetResponse{
		Success: true,
		Message: "Inventory reset to 1 unit each",
	})
}

// UpdateQuantity handles PUT /api/inventory/{id} requests.
func (h *InventoryHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := productIDFromPath(r.URL.Path)
	if productID == "" {
		writeError(w, r, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeError(w, r, http.StatusBadRequest, "Invalid quantity", h.logger)
		return
	}

	product, err := h.admin.SetQuantity(r.Context(), productID, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidQuantity):
			writeError(w, r, http.StatusBadRequest, "Invalid quantity", h.logger)
		case errors.Is(err, model.ErrProductNotFound):
			writeError(w, r, http.StatusNotFound, "Product not found", h.logger)
		default:
			writeError(w, r, http.StatusInternalServerError, "Error updating product", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{
		Success: true,
		Product: updatedProduct{
			ProductID: product.ProductID,
			Quantity:  product.Quantity,
			SoldOut:   product.SoldOut(),
		},
	})
}
