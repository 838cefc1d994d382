package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func runRBAC(t *testing.T, role string, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RBAC(allowed...)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestRBAC(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"allowed role", "admin", []string{"admin"}, http.StatusOK},
		{"one of several", "editor", []string{"admin", "editor"}, http.StatusOK},
		{"role not allowed", "viewer", []string{"admin", "editor"}, http.StatusForbidden},
		{"case sensitive", "Admin", []string{"admin"}, http.StatusForbidden},
		{"no role in context", "", []string{"admin"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runRBAC(t, tc.role, tc.allowed...)
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if tc.wantCode == http.StatusForbidden && !strings.Contains(rec.Body.String(), "forbidden") {
				t.Errorf("body = %q", rec.Body.String())
			}
		})
	}
}
