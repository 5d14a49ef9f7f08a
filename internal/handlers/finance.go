package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/httpx"
	"github.com/pkaminski/lakiernia/internal/models"
	"github.com/pkaminski/lakiernia/internal/services"
	"github.com/pkaminski/lakiernia/validation"
)

type FinanceHandler struct{ DB *gorm.DB }

func NewFinanceHandler(db *gorm.DB) *FinanceHandler { return &FinanceHandler{DB: db} }

// parseRange reads from/to query params, defaulting to the current month so
// the dashboard opens on month-to-date figures.
func parseRange(r *http.Request) (string, string, validation.Violations) {
	now := time.Now()
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	if to == "" {
		to = now.Format("2006-01-02")
	}
	v := validation.Violations{}
	validation.ISODate("from", from, v)
	validation.ISODate("to", to, v)
	return from, to, v
}

// Summary: GET /finance/summary?from=&to= — the full financial rollup.
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, v := parseRange(r)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var orders []models.Order
	if err := h.DB.Preload("Client").Preload("Items").Find(&orders).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_orders", nil)
		return
	}
	var logs []models.WorkLog
	if err := h.DB.Find(&logs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_work_logs", nil)
		return
	}
	var purchases []models.PaintPurchase
	if err := h.DB.Find(&purchases).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_purchases", nil)
		return
	}
	var fixed []models.MonthlyCost
	if err := h.DB.Find(&fixed).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_monthly_costs", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, services.Summarize(orders, logs, purchases, fixed, from, to))
}

// WorkerReport: GET /reports/workers?from=&to=&worker= — filtered logs plus
// a per-worker rollup.
func (h *FinanceHandler) WorkerReport(w http.ResponseWriter, r *http.Request) {
	from, to, v := parseRange(r)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var logs []models.WorkLog
	if err := h.DB.Order("date asc, id asc").Find(&logs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_work_logs", nil)
		return
	}
	filtered, stats := services.WorkerReport(logs, from, to, r.URL.Query().Get("worker"))
	httpx.JSON(w, http.StatusOK, map[string]any{
		"from": from, "to": to,
		"logs":    filtered,
		"workers": stats,
	})
}
