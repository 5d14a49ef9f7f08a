package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkaminski/lakiernia/auth"
	"github.com/pkaminski/lakiernia/internal/models"
)

func createUser(t *testing.T, h *AuthHandler, email, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{Email: email, Password: string(hash)}
	if err := h.DB.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	return user
}

func TestLoginSetsSessionCookie(t *testing.T) {
	d := setupTestDB(t)
	h := NewAuthHandler(d)
	createUser(t, h, "szef@lakiernia.pl", "tajnehaslo")

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"szef@lakiernia.pl","password":"tajnehaslo"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	cookies := w.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == "session" {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("expected session cookie to be set")
	}

	// The password hash never leaves the server.
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password leaked in response: %s", w.Body.String())
	}

	// The cookie round-trips through ParseSession.
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(session)
	if _, ok := auth.ParseSession(req); !ok {
		t.Fatal("session cookie did not parse")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	d := setupTestDB(t)
	h := NewAuthHandler(d)
	createUser(t, h, "szef@lakiernia.pl", "tajnehaslo")

	for _, body := range []string{
		`{"email":"szef@lakiernia.pl","password":"zlehaslo"}`,
		`{"email":"nieznany@lakiernia.pl","password":"tajnehaslo"}`,
	} {
		w := httptest.NewRecorder()
		h.Login(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: expected 401 got %d", body, w.Code)
		}
	}

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"","password":""}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty credentials: expected 400 got %d", w.Code)
	}
}

func TestMeRequiresSession(t *testing.T) {
	d := setupTestDB(t)
	h := NewAuthHandler(d)
	user := createUser(t, h, "szef@lakiernia.pl", "tajnehaslo")

	w := httptest.NewRecorder()
	h.Me(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no session: expected 401 got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), user.ID))
	w = httptest.NewRecorder()
	h.Me(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("with session: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var got models.User
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Email != "szef@lakiernia.pl" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	d := setupTestDB(t)
	h := NewAuthHandler(d)

	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodPost, "/logout", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected session cookie cleared")
	}
}
