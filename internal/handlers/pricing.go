package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/httpx"
	"github.com/pkaminski/lakiernia/internal/models"
	"github.com/pkaminski/lakiernia/internal/services"
)

// VariantHandler serves the static paint variant catalog.
type VariantHandler struct{ DB *gorm.DB }

func NewVariantHandler(db *gorm.DB) *VariantHandler { return &VariantHandler{DB: db} }

// List: GET /variants
func (h *VariantHandler) List(w http.ResponseWriter, _ *http.Request) {
	var variants []models.PaintingVariant
	if err := h.DB.Order("id asc").Find(&variants).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_variants", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, variants)
}

// PricingHandler manages per-client price overrides.
type PricingHandler struct {
	DB  *gorm.DB
	Svc *services.PricingService
}

func NewPricingHandler(db *gorm.DB, svc *services.PricingService) *PricingHandler {
	return &PricingHandler{DB: db, Svc: svc}
}

// List: GET /client-pricing?client_id=N — the client's override rows.
func (h *PricingHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.Atoi(r.URL.Query().Get("client_id"))
	if err != nil || clientID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_client_id", nil)
		return
	}
	var rows []models.ClientPricing
	if err := h.DB.Where("client_id = ?", clientID).Order("variant_id asc").Find(&rows).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_pricing", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

// Upsert: POST /client-pricing {client_id, variant_id, price_per_m2}
func (h *PricingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID   uint    `json:"client_id"`
		VariantID  uint    `json:"variant_id"`
		PricePerM2 float64 `json:"price_per_m2"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ClientID == 0 || req.VariantID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	row, err := h.Svc.Upsert(req.ClientID, req.VariantID, req.PricePerM2)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPrice) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"price_per_m2": "must_be_positive"})
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_upsert_pricing", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, row)
}

// Delete: POST /client-pricing/delete {id} — resolution reverts to the
// variant default.
func (h *PricingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if err := h.Svc.Delete(req.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_pricing", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
