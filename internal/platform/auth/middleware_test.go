package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicaflow/console/internal/platform/session"
)

func guarded(store session.Store) *echo.Echo {
	e := echo.New()
	e.Use(RequireSession(store))
	ok := func(c echo.Context) error {
		if s, found := SessionFromContext(c); found {
			return c.String(http.StatusOK, s.Username)
		}
		return c.String(http.StatusOK, "public")
	}
	e.GET("/health", ok)
	e.POST("/session", ok)
	e.GET("/queue", ok)
	e.DELETE("/session", ok)
	return e
}

func serve(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRequireSession_RejectsWithoutSession(t *testing.T) {
	e := guarded(session.NewMemoryStore())

	if rec := serve(e, http.MethodGet, "/queue"); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodDelete, "/session"); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for logout without session, got %d", rec.Code)
	}
}

func TestRequireSession_PublicRoutes(t *testing.T) {
	e := guarded(session.NewMemoryStore())

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/session"},
	} {
		rec := serve(e, r.method, r.path)
		if rec.Code != http.StatusOK || rec.Body.String() != "public" {
			t.Errorf("%s %s: expected public 200, got %d %q", r.method, r.path, rec.Code, rec.Body.String())
		}
	}
}

func TestRequireSession_StoresSession(t *testing.T) {
	store := session.NewMemoryStore()
	store.Set(session.Session{Token: "t", Username: "ana@clinic.ph"})
	e := guarded(store)

	rec := serve(e, http.MethodGet, "/queue")
	if rec.Code != http.StatusOK || rec.Body.String() != "ana@clinic.ph" {
		t.Errorf("expected session on context, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestIsPublic(t *testing.T) {
	if !IsPublic(http.MethodGet, "/metrics") {
		t.Error("expected /metrics public")
	}
	if IsPublic(http.MethodPut, "/queue/:id") {
		t.Error("expected queue update to be guarded")
	}
}
