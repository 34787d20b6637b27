package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/studygo-backend/internal/api/httpx"
	"github.com/baharkarakas/studygo-backend/internal/middleware"
	"github.com/baharkarakas/studygo-backend/internal/services"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, posts)
}

type createPostReq struct {
	Content string `json:"content"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	p, err := h.posts.Create(r.Context(), middleware.UserID(r.Context()), req.Content)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.posts.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
