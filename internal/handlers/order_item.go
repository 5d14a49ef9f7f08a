package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/httpx"
	"github.com/pkaminski/lakiernia/internal/models"
	"github.com/pkaminski/lakiernia/internal/services"
	"github.com/pkaminski/lakiernia/validation"
)

// OrderItemHandler prices and stores order lines. The costing snapshot
// (m2, price_per_m2, total_price) is computed exactly once here; nothing
// later recomputes it.
type OrderItemHandler struct {
	DB      *gorm.DB
	Pricing *services.PricingService
}

func NewOrderItemHandler(db *gorm.DB, pricing *services.PricingService) *OrderItemHandler {
	return &OrderItemHandler{DB: db, Pricing: pricing}
}

// List: GET /order-items?order_id=N
func (h *OrderItemHandler) List(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(r.URL.Query().Get("order_id"))
	if err != nil || orderID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_order_id", nil)
		return
	}
	var items []models.OrderItem
	if err := h.DB.Preload("Variant").Where("order_id = ?", orderID).Order("id asc").Find(&items).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_items", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

type orderItemReq struct {
	OrderID   uint    `json:"order_id"`
	LengthMM  float64 `json:"length_mm"`
	WidthMM   float64 `json:"width_mm"`
	Quantity  int     `json:"quantity"`
	VariantID uint    `json:"variant_id"`
	HasHandle bool    `json:"has_handle"`
	Notes     string  `json:"notes"`
}

func (req *orderItemReq) validate() validation.Violations {
	v := validation.Violations{}
	if req.OrderID == 0 {
		v["order_id"] = "required"
	}
	if req.VariantID == 0 {
		v["variant_id"] = "required"
	}
	validation.PositiveFloat("length_mm", req.LengthMM, v)
	validation.PositiveFloat("width_mm", req.WidthMM, v)
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	validation.MinInt("quantity", req.Quantity, 1, v)
	return v
}

// Create: POST /order-items — resolves the effective price for the order's
// client, computes area and line total, and persists the frozen snapshot.
func (h *OrderItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderItemReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var order models.Order
	if err := h.DB.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_order", nil)
		return
	}
	var variant models.PaintingVariant
	if err := h.DB.First(&variant, req.VariantID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_variant", nil)
		return
	}

	price, err := h.Pricing.Resolve(&order.ClientID, variant.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_resolve_price", nil)
		return
	}
	m2 := services.Area(req.LengthMM, req.WidthMM, req.Quantity, variant.Sides)

	item := models.OrderItem{
		OrderID:    order.ID,
		LengthMM:   req.LengthMM,
		WidthMM:    req.WidthMM,
		Quantity:   req.Quantity,
		VariantID:  variant.ID,
		HasHandle:  req.HasHandle,
		Notes:      req.Notes,
		M2:         m2,
		PricePerM2: price,
		TotalPrice: services.ItemTotal(m2, price),
	}
	if err := h.DB.Create(&item).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_item", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

// Update: POST /order-items/update — only the descriptive fields move;
// dimensions and the costing snapshot stay frozen. Correcting a mispriced
// line means deleting it and adding a new one.
func (h *OrderItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID        uint    `json:"id"`
		HasHandle *bool   `json:"has_handle"`
		Notes     *string `json:"notes"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	var item models.OrderItem
	if err := h.DB.First(&item, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_item", nil)
		return
	}
	updates := map[string]any{}
	if req.HasHandle != nil {
		updates["has_handle"] = *req.HasHandle
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&item).Updates(updates).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_item", nil)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Delete: POST /order-items/delete {id}
func (h *OrderItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if err := h.DB.Delete(&models.OrderItem{}, req.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_item", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
