package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkaminski/lakiernia/internal/models"
)

func TestClientCreateGeneratesAccessCode(t *testing.T) {
	d := setupTestDB(t)
	h := NewClientHandler(d)

	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/clients",
		strings.NewReader(`{"name":"Stolarnia Kowalski","type":"company","contact_info":"tel. 600100200"}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var c models.Client
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(c.AccessCode) != 4 {
		t.Fatalf("expected 4-digit access code, got %q", c.AccessCode)
	}
	for _, r := range c.AccessCode {
		if r < '0' || r > '9' {
			t.Fatalf("access code not numeric: %q", c.AccessCode)
		}
	}
	if c.AccessCode[0] == '0' {
		t.Fatalf("access code must not start with zero: %q", c.AccessCode)
	}
}

func TestClientCreateDefaultsToCompany(t *testing.T) {
	d := setupTestDB(t)
	h := NewClientHandler(d)

	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(`{"name":"Jan Nowak"}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}
	var c models.Client
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Type != models.ClientCompany {
		t.Fatalf("expected default type company got %q", c.Type)
	}
}

func TestClientCreateValidation(t *testing.T) {
	d := setupTestDB(t)
	h := NewClientHandler(d)

	for _, body := range []string{
		`{"name":""}`,
		`{"name":"   "}`,
		`{"name":"X","type":"spolka"}`,
	} {
		w := httptest.NewRecorder()
		h.Create(w, httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400 got %d", body, w.Code)
		}
	}
}

func TestClientUpdatePartial(t *testing.T) {
	d := setupTestDB(t)
	client, _, _ := seedWorkshopFixtures(t, d)
	h := NewClientHandler(d)

	w := httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPost, "/clients/update",
		strings.NewReader(fmt.Sprintf(`{"id":%d,"contact_info":"nowy@adres.pl"}`, client.ID))))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var stored models.Client
	if err := d.First(&stored, client.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ContactInfo != "nowy@adres.pl" {
		t.Fatalf("contact_info not updated: %q", stored.ContactInfo)
	}
	if stored.Name != client.Name || stored.AccessCode != client.AccessCode {
		t.Fatalf("untouched fields changed: %+v", stored)
	}

	w = httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPost, "/clients/update", strings.NewReader(`{"id":999,"name":"X"}`)))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestClientListSortedAndDelete(t *testing.T) {
	d := setupTestDB(t)
	for _, name := range []string{"Zbych Meble", "Anna Fronty"} {
		if err := d.Create(&models.Client{Name: name, Type: models.ClientCompany, AccessCode: "1111"}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	h := NewClientHandler(d)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/clients", nil))
	var clients []models.Client
	if err := json.Unmarshal(w.Body.Bytes(), &clients); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(clients) != 2 || clients[0].Name != "Anna Fronty" {
		t.Fatalf("expected alphabetical order, got %+v", clients)
	}

	w = httptest.NewRecorder()
	h.Delete(w, httptest.NewRequest(http.MethodPost, "/clients/delete",
		strings.NewReader(fmt.Sprintf(`{"id":%d}`, clients[0].ID))))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", w.Code)
	}
	var count int64
	d.Model(&models.Client{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 client left got %d", count)
	}
}
