package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/docstream/document-platform/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"document not found", domain.ErrDocumentNotFound, http.StatusNotFound, "document not found"},
		{"ingestion not found", domain.ErrIngestionNotFound, http.StatusNotFound, "ingestion request not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := handleError(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("status = %d, want %d", code, tc.wantCode)
			}
			if body.Error != tc.wantMsg {
				t.Errorf("message = %q, want %q", body.Error, tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_InvalidArgumentKeepsMessage(t *testing.T) {
	err := fmt.Errorf("%w: document with id 999 does not exist", domain.ErrInvalidArgument)

	code, body := handleError(t, err)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if body.Error != err.Error() {
		t.Errorf("message = %q, want the descriptive error text", body.Error)
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	err := fmt.Errorf("trigger ingestion: %w", domain.ErrIngestionNotFound)

	code, _ := handleError(t, err)
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
}

func TestHTTPErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, body := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "id must be a number"))
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if body.Error != "id must be a number" {
		t.Errorf("message = %q", body.Error)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	code, body := handleError(t, errors.New("connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if body.Error != "internal server error" {
		t.Errorf("internal detail leaked: %q", body.Error)
	}
}
