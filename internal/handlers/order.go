package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/auth"
	"github.com/pkaminski/lakiernia/httpx"
	"github.com/pkaminski/lakiernia/internal/events"
	"github.com/pkaminski/lakiernia/internal/models"
	"github.com/pkaminski/lakiernia/validation"
)

// OrderHandler owns the order lifecycle. Every successful write publishes a
// change on the bus so the SSE stream can trigger client re-fetches.
type OrderHandler struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewOrderHandler(db *gorm.DB, bus *events.Bus) *OrderHandler {
	return &OrderHandler{DB: db, Bus: bus}
}

func (h *OrderHandler) publish(action events.Action, id uint) {
	if h.Bus != nil {
		h.Bus.Publish(events.Change{Table: "orders", Action: action, ID: id})
	}
}

// List: GET /orders — newest first, with client and item totals embedded.
func (h *OrderHandler) List(w http.ResponseWriter, _ *http.Request) {
	var orders []models.Order
	if err := h.DB.Preload("Client").Preload("Items").Order("number desc").Find(&orders).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

// Get: GET /orders/get?id=N
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var order models.Order
	if err := h.DB.Preload("Client").Preload("Items.Variant").Preload("WorkLogs").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_order", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Create: POST /orders — assigns the next sequential number, starts in nowe.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID    uint   `json:"client_id"`
		Description string `json:"description"`
		PlannedDate string `json:"planned_date"`
		Notes       string `json:"notes"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	if req.ClientID == 0 {
		v["client_id"] = "required"
	}
	if req.PlannedDate != "" {
		validation.ISODate("planned_date", req.PlannedDate, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, req.ClientID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_client", nil)
		return
	}

	createdBy := ""
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		var user models.User
		if err := h.DB.First(&user, uid).Error; err == nil {
			createdBy = user.Email
		}
	}

	order := models.Order{
		ClientID:    req.ClientID,
		Description: req.Description,
		PlannedDate: req.PlannedDate,
		Notes:       req.Notes,
		Status:      models.StatusNew,
		CreatedBy:   createdBy,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var maxNumber int
		if err := tx.Model(&models.Order{}).Select("COALESCE(MAX(number), 0)").Scan(&maxNumber).Error; err != nil {
			return err
		}
		order.Number = maxNumber + 1
		return tx.Create(&order).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_order", nil)
		return
	}
	h.publish(events.ActionInsert, order.ID)
	httpx.JSON(w, http.StatusCreated, order)
}

// Update: POST /orders/update — partial field update. Entering gotowe stamps
// ready_date once; re-entering leaves an existing date untouched.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID                uint    `json:"id"`
		Status            *string `json:"status"`
		Description       *string `json:"description"`
		PlannedDate       *string `json:"planned_date"`
		MaterialProvided  *bool   `json:"material_provided"`
		PaintsProvided    *bool   `json:"paints_provided"`
		DimensionsEntered *bool   `json:"dimensions_entered"`
		Notes             *string `json:"notes"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	var order models.Order
	if err := h.DB.First(&order, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_order", nil)
		return
	}

	updates := map[string]any{}
	v := validation.Violations{}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			v["status"] = "invalid_value"
		} else {
			updates["status"] = *req.Status
			if *req.Status == models.StatusReady && order.ReadyDate == "" {
				updates["ready_date"] = time.Now().Format("2006-01-02")
			}
		}
	}
	if req.PlannedDate != nil {
		if *req.PlannedDate != "" {
			validation.ISODate("planned_date", *req.PlannedDate, v)
		}
		updates["planned_date"] = *req.PlannedDate
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.MaterialProvided != nil {
		updates["material_provided"] = *req.MaterialProvided
	}
	if req.PaintsProvided != nil {
		updates["paints_provided"] = *req.PaintsProvided
	}
	if req.DimensionsEntered != nil {
		updates["dimensions_entered"] = *req.DimensionsEntered
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&order).Updates(updates).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_order", nil)
			return
		}
		h.publish(events.ActionUpdate, order.ID)
	}
	if err := h.DB.Preload("Client").Preload("Items").First(&order, order.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_order", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Delete: POST /orders/delete {id} — items and logs cascade at the DB level.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if err := h.DB.Delete(&models.Order{}, req.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_order", nil)
		return
	}
	h.publish(events.ActionDelete, req.ID)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
