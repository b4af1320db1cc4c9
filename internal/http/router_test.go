package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "prorental/internal/config"
	"prorental/internal/session"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func testRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	intconfig.DB = db

	env := intconfig.Env{
		JWTSecret:   "test-secret",
		UploadDir:   t.TempDir(),
		CORSOrigins: []string{"http://localhost:3000"},
	}
	return NewRouter(env, session.NewMemoryStore()), mock
}

func TestHealthRoute(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestItemListRouteIsPublic(t *testing.T) {
	r, mock := testRouter(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM items").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "brand", "model", "year", "price_per_hour", "description",
			"image_url", "status", "created_by", "created_at", "updated_at",
		}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		CurrentPage int `json:"currentPage"`
		TotalItems  int `json:"totalItems"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.CurrentPage != 1 {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestBookingRoutesRequireAuth(t *testing.T) {
	r, _ := testRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/bookings"},
		{http.MethodGet, "/api/bookings/my-bookings"},
		{http.MethodGet, "/api/bookings/admin-all"},
		{http.MethodPut, "/api/bookings/admin-status/1"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestAdminLoginCookieSecureFollowsConfig(t *testing.T) {
	adminRows := func() *sqlmock.Rows {
		now := time.Now()
		return sqlmock.NewRows([]string{
			"id", "name", "email", "password", "phone", "created_at", "updated_at",
		}).AddRow(1, "Admin", "admin@mail.com", "rahasia", "0811", now, now)
	}
	login := func(t *testing.T, r *gin.Engine) *http.Cookie {
		t.Helper()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
			strings.NewReader(`{"email":"admin@mail.com","password":"rahasia"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("login failed: %d body=%s", w.Code, w.Body.String())
		}
		for _, ck := range w.Result().Cookies() {
			if ck.Name == session.CookieName {
				return ck
			}
		}
		t.Fatalf("session cookie not set")
		return nil
	}

	r, mock := testRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM admins WHERE email").
		WillReturnRows(adminRows())
	if ck := login(t, r); ck.Secure {
		t.Fatalf("cookie marked Secure under plain-http config")
	}

	secureEnv := intconfig.Env{
		JWTSecret:    "test-secret",
		UploadDir:    t.TempDir(),
		CORSOrigins:  []string{"http://localhost:3000"},
		CookieSecure: true,
	}
	r = NewRouter(secureEnv, session.NewMemoryStore())
	mock.ExpectQuery("SELECT (.+) FROM admins WHERE email").
		WillReturnRows(adminRows())
	if ck := login(t, r); !ck.Secure {
		t.Fatalf("cookie missing Secure attribute under secure config")
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}
