package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/httpx"
	"github.com/pkaminski/lakiernia/internal/models"
	"github.com/pkaminski/lakiernia/validation"
)

type ClientHandler struct{ DB *gorm.DB }

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, _ *http.Request) {
	var clients []models.Client
	if err := h.DB.Order("name asc").Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Create: POST /clients — generates the portal PIN.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		ContactInfo string `json:"contact_info"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Type == "" {
		req.Type = models.ClientCompany
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.OneOf("type", req.Type, []string{models.ClientIndividual, models.ClientCompany}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	c := models.Client{
		Name:        req.Name,
		Type:        req.Type,
		ContactInfo: req.ContactInfo,
		AccessCode:  fmt.Sprintf("%04d", 1000+rand.IntN(9000)),
	}
	if err := h.DB.Create(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /clients/update {id, name?, type?, contact_info?}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          uint    `json:"id"`
		Name        *string `json:"name"`
		Type        *string `json:"type"`
		ContactInfo *string `json:"contact_info"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	var c models.Client
	if err := h.DB.First(&c, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return
	}
	updates := map[string]any{}
	v := validation.Violations{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		validation.Required("name", name, v)
		updates["name"] = name
	}
	if req.Type != nil {
		validation.OneOf("type", *req.Type, []string{models.ClientIndividual, models.ClientCompany}, v)
		updates["type"] = *req.Type
	}
	if req.ContactInfo != nil {
		updates["contact_info"] = *req.ContactInfo
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&c).Updates(updates).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_client", nil)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /clients/delete {id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if err := h.DB.Delete(&models.Client{}, req.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
