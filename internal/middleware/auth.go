package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baharkarakas/studygo-backend/internal/api/httpx"
	"github.com/baharkarakas/studygo-backend/internal/auth"
	"github.com/baharkarakas/studygo-backend/internal/metrics"
	"github.com/baharkarakas/studygo-backend/internal/models"
)

type claimsKey struct{}

func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func Claims(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok && c != nil
}

// UserID returns the authenticated caller, or "" outside Auth.
func UserID(ctx context.Context) string {
	if c, ok := Claims(ctx); ok {
		return c.UserID
	}
	return ""
}

type AuthMiddleware struct {
	tm *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tm: tm}
}

// Auth requires "Authorization: Bearer <jwt>".
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			httpx.WriteAppError(w, r, models.NewMissingTokenError())
			return
		}

		claims, err := m.tm.Validate(token)
		if err != nil {
			metrics.AuthEvents.WithLabelValues("token_invalid").Inc()
			httpx.WriteAppError(w, r, models.NewInvalidTokenError())
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}
