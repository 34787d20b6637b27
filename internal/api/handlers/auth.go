package handlers

import (
	"net/http"

	"github.com/baharkarakas/studygo-backend/internal/api/httpx"
	"github.com/baharkarakas/studygo-backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerResp struct {
	ID string `json:"id"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	u, err := h.users.Register(r.Context(), req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, registerResp{ID: u.ID})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	tok, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{Token: tok})
}
