package handlers

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/httpx"
	"github.com/pkaminski/lakiernia/internal/models"
	"github.com/pkaminski/lakiernia/internal/services"
	"github.com/pkaminski/lakiernia/validation"
)

// Operations suggested by the UI for work log entries. Free-form values are
// still accepted on write.
var Operations = []string{"Przygotowanie", "Podkład", "Szlifowanie", "Lakierowanie", "Pakowanie", "Sprzątanie", "Inne"}

type WorkLogHandler struct{ DB *gorm.DB }

func NewWorkLogHandler(db *gorm.DB) *WorkLogHandler { return &WorkLogHandler{DB: db} }

// List: GET /work-logs[?order_id=N] — newest first.
func (h *WorkLogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("date desc, id desc")
	if raw := r.URL.Query().Get("order_id"); raw != "" {
		orderID, err := strconv.Atoi(raw)
		if err != nil || orderID <= 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_order_id", nil)
			return
		}
		q = q.Where("order_id = ?", orderID)
	}
	var logs []models.WorkLog
	if err := q.Find(&logs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_work_logs", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, logs)
}

// Create: POST /work-logs — cost is frozen from hours × rate at creation.
func (h *WorkLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID    *uint    `json:"order_id"`
		WorkerName string   `json:"worker_name"`
		Operation  string   `json:"operation"`
		Date       string   `json:"date"`
		Hours      float64  `json:"hours"`
		HourlyRate float64  `json:"hourly_rate"`
		M2Painted  *float64 `json:"m2_painted"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("worker_name", req.WorkerName, v)
	validation.Required("operation", req.Operation, v)
	validation.ISODate("date", req.Date, v)
	validation.PositiveFloat("hours", req.Hours, v)
	validation.NonNegativeFloat("hourly_rate", req.HourlyRate, v)
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
	logEntry := models.WorkLog{
		OrderID:    req.OrderID,
		WorkerName: req.WorkerName,
		Operation:  req.Operation,
		Date:       req.Date,
		Hours:      req.Hours,
		HourlyRate: req.HourlyRate,
		Cost:       services.LaborCost(req.Hours, req.HourlyRate),
		M2Painted:  req.M2Painted,
	}
	if err := h.DB.Create(&logEntry).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_work_log", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, logEntry)
}

// Workers: GET /workers — the roster with default rates plus the suggested
// operations, used to prefill the log form.
func (h *WorkLogHandler) Workers(w http.ResponseWriter, _ *http.Request) {
	var workers []models.Worker
	if err := h.DB.Order("name asc").Find(&workers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_workers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"workers": workers, "operations": Operations})
}
