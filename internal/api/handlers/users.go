package handlers

import (
	"net/http"

	"github.com/baharkarakas/studygo-backend/internal/api/httpx"
	"github.com/baharkarakas/studygo-backend/internal/middleware"
	"github.com/baharkarakas/studygo-backend/internal/models"
	"github.com/baharkarakas/studygo-backend/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// UpdateMe applies only the fields present and non-null in the body.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	u, err := h.users.UpdateProfile(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
