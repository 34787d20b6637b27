package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/studygo-backend/internal/api/httpx"
	"github.com/baharkarakas/studygo-backend/internal/models"
	"github.com/baharkarakas/studygo-backend/internal/services"
	"github.com/baharkarakas/studygo-backend/internal/storage"
)

const uploadField = "file"

type FileHandler struct {
	uploads  *services.UploadService
	maxBytes int64
}

func NewFileHandler(uploads *services.UploadService, maxBytes int64) *FileHandler {
	return &FileHandler{uploads: uploads, maxBytes: maxBytes}
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	f, hdr, err := r.FormFile(uploadField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			httpx.WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "file too large", nil)
			return
		}
		httpx.WriteError(w, http.StatusUnprocessableEntity, models.CodeValidation, "multipart field \"file\" is required", nil)
		return
	}
	defer f.Close()

	url, err := h.uploads.Upload(r.Context(), hdr.Filename, f, hdr.Size, hdr.Header.Get("Content-Type"))
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Serve streams a stored upload. Invalid and unknown names are both 404.
func (h *FileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !storage.ValidName(name) {
		http.NotFound(w, r)
		return
	}
	rc, err := h.uploads.Open(r.Context(), name)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.ErrorContext(r.Context(), "open upload", "name", name, "err", err)
		}
		http.NotFound(w, r)
		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.Copy(w, rc); err != nil {
		slog.WarnContext(r.Context(), "stream upload", "name", name, "err", err)
	}
}
