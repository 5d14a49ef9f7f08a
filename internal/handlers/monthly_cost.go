package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/httpx"
	"github.com/pkaminski/lakiernia/internal/models"
	"github.com/pkaminski/lakiernia/internal/services"
	"github.com/pkaminski/lakiernia/validation"
)

type MonthlyCostHandler struct{ DB *gorm.DB }

func NewMonthlyCostHandler(db *gorm.DB) *MonthlyCostHandler { return &MonthlyCostHandler{DB: db} }

// List: GET /monthly-costs — newest month first.
func (h *MonthlyCostHandler) List(w http.ResponseWriter, _ *http.Request) {
	var costs []models.MonthlyCost
	if err := h.DB.Order("month desc").Find(&costs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_monthly_costs", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, costs)
}

// Upsert: POST /monthly-costs {month, rent, waste, other} — full replacement
// per month: all three components are required every time and the stored
// total is recomputed from them.
func (h *MonthlyCostHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month string  `json:"month"`
		Rent  float64 `json:"rent"`
		Waste float64 `json:"waste"`
		Other float64 `json:"other"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.ISOMonth("month", req.Month, v)
	validation.NonNegativeFloat("rent", req.Rent, v)
	validation.NonNegativeFloat("waste", req.Waste, v)
	validation.NonNegativeFloat("other", req.Other, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	total := services.Round2(req.Rent + req.Waste + req.Other)

	var mc models.MonthlyCost
	err := h.DB.Where("month = ?", req.Month).First(&mc).Error
	switch {
	case err == nil:
		updates := map[string]any{"rent": req.Rent, "waste": req.Waste, "other": req.Other, "total": total}
		if err := h.DB.Model(&mc).Updates(updates).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_monthly_cost", nil)
			return
		}
		mc.Rent, mc.Waste, mc.Other, mc.Total = req.Rent, req.Waste, req.Other, total
		httpx.JSON(w, http.StatusOK, mc)
	case errors.Is(err, gorm.ErrRecordNotFound):
		mc = models.MonthlyCost{Month: req.Month, Rent: req.Rent, Waste: req.Waste, Other: req.Other, Total: total}
		if err := h.DB.Create(&mc).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_monthly_cost", nil)
			return
		}
		httpx.JSON(w, http.StatusCreated, mc)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_monthly_cost", nil)
	}
}

// Delete: POST /monthly-costs/delete {id}
func (h *MonthlyCostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if err := h.DB.Delete(&models.MonthlyCost{}, req.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_monthly_cost", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
