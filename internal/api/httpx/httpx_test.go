package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/studygo-backend/internal/api/validate"
	"github.com/baharkarakas/studygo-backend/internal/models"
)

func TestWriteAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", models.NewValidationError("validation failed", validate.Errs{{Field: "email", Msg: "invalid email"}}), 422, models.CodeValidation, "validation failed"},
		{"conflict", models.NewConflictError("Email already exists", nil), 400, models.CodeConflict, "Email already exists"},
		{"credentials", models.NewInvalidCredentialsError(), 400, models.CodeInvalidCredentials, "Invalid login"},
		{"token", models.NewInvalidTokenError(), 401, models.CodeInvalidToken, "Invalid token"},
		{"not found", models.NewNotFoundError("Not found"), 404, models.CodeNotFound, "Not found"},
		{"forbidden", models.NewForbiddenError(), 403, models.CodeForbidden, "Forbidden"},
		{"internal hides detail", models.NewInternalError(errors.New("dial tcp: refused")), 500, models.CodeInternal, "internal error"},
		{"plain error", errors.New("boom"), 500, models.CodeInternal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.NotContains(t, rec.Body.String(), "refused")
		})
	}
}

func TestWriteAppError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := models.NewValidationError("validation failed", validate.Errs{{Field: "percent", Msg: "must be between 0 and 100"}})
	WriteAppError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	assert.JSONEq(t,
		`{"error":"validation failed","code":"VALIDATION_ERROR","details":[{"field":"percent","msg":"must be between 0 and 100"}]}`,
		rec.Body.String())
}
