package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/baharkarakas/studygo-backend/internal/logger"
)

const RequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 128

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}
