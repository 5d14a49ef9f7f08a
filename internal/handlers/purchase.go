package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/httpx"
	"github.com/pkaminski/lakiernia/internal/models"
	"github.com/pkaminski/lakiernia/internal/services"
	"github.com/pkaminski/lakiernia/validation"
)

type PurchaseHandler struct{ DB *gorm.DB }

func NewPurchaseHandler(db *gorm.DB) *PurchaseHandler { return &PurchaseHandler{DB: db} }

// List: GET /paint-purchases — newest first.
func (h *PurchaseHandler) List(w http.ResponseWriter, _ *http.Request) {
	var purchases []models.PaintPurchase
	if err := h.DB.Order("date desc, id desc").Find(&purchases).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_purchases", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, purchases)
}

// Create: POST /paint-purchases — total is frozen from quantity × unit price.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date      string  `json:"date"`
		Supplier  string  `json:"supplier"`
		Product   string  `json:"product"`
		Quantity  float64 `json:"quantity"`
		Unit      string  `json:"unit"`
		UnitPrice float64 `json:"unit_price"`
		OrderID   *uint   `json:"order_id"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Unit == "" {
		req.Unit = models.UnitKg
	}
	v := validation.Violations{}
	validation.ISODate("date", req.Date, v)
	validation.Required("supplier", req.Supplier, v)
	validation.Required("product", req.Product, v)
	validation.PositiveFloat("quantity", req.Quantity, v)
	validation.NonNegativeFloat("unit_price", req.UnitPrice, v)
	validation.OneOf("unit", req.Unit, []string{models.UnitKg, models.UnitLiter, models.UnitPiece}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if req.OrderID != nil {
		var order models.Order
		if err := h.DB.First(&order, *req.OrderID).Error; err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "unknown_order", nil)
			return
		}
	}
	p := models.PaintPurchase{
		Date:      req.Date,
		Supplier:  req.Supplier,
		Product:   req.Product,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		Total:     services.PurchaseTotal(req.Quantity, req.UnitPrice),
		OrderID:   req.OrderID,
	}
	if err := h.DB.Create(&p).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_purchase", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Delete: POST /paint-purchases/delete {id}
func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if err := h.DB.Delete(&models.PaintPurchase{}, req.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_purchase", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
