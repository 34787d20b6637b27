package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/studygo-backend/internal/models"
)

type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details any) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// StatusFor maps an AppError code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case models.CodeValidation:
		return http.StatusUnprocessableEntity
	case models.CodeConflict, models.CodeInvalidCredentials:
		return http.StatusBadRequest
	case models.CodeInvalidToken:
		return http.StatusUnauthorized
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError writes err as an APIError. Anything that is not a non-internal
// AppError is logged and answered with a bare 500.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *models.AppError
	if !errors.As(err, &ae) || StatusFor(ae.Code) == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "err", err)
		WriteError(w, http.StatusInternalServerError, models.CodeInternal, "internal error", nil)
		return
	}
	WriteError(w, StatusFor(ae.Code), ae.Code, ae.Message, ae.Details)
}

// DecodeJSON reads one JSON value from the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

func BadRequest(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, "bad_request", msg, nil)
}
