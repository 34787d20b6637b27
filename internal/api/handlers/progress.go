package handlers

import (
	"net/http"

	"github.com/baharkarakas/studygo-backend/internal/api/httpx"
	"github.com/baharkarakas/studygo-backend/internal/middleware"
	"github.com/baharkarakas/studygo-backend/internal/services"
)

type ProgressHandler struct {
	progress *services.ProgressService
}

func NewProgressHandler(progress *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.progress.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

func (h *ProgressHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req services.ProgressInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	p, err := h.progress.Upsert(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}
