package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/tlockney/quickpost/internal/apperr"
)

const maxUploadBytes = 10 << 20 // 10 MB

// extByType maps allowed upload content types to the stored file extension.
var extByType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ListImages handles GET /api/posts/{id}/upload.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	images, err := h.store.ListImages(id)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown post"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"images": images})
}

// UploadImage handles POST /api/posts/{id}/upload (multipart, field "file").
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read upload"))
		return
	}
	if len(data) > maxUploadBytes {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	ext, ok := extByType[contentType]
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("unsupported image type: "+contentType))
		return
	}

	rel, err := h.store.UploadImage(id, data, ext)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusBadRequest, errorBody("unknown post"))
		} else {
			slog.Error("upload image failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadRequest, errorBody("failed to store image"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"path":     rel,
		"markdown": "![" + header.Filename + "](/" + rel + ")",
	})
}

// ServeImage handles GET /images/{id}/{file}.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := path.Base(chi.URLParam(r, "file"))

	abs, err := h.store.ImagePath(id, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
