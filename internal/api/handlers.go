// Package api implements the quickpost REST API using chi.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tlockney/quickpost/internal/apperr"
	"github.com/tlockney/quickpost/internal/index"
	"github.com/tlockney/quickpost/internal/markdown"
	"github.com/tlockney/quickpost/internal/store"
)

const maxBodyBytes = 10 << 20 // 10 MB

// Handler holds API route handlers.
type Handler struct {
	store    *store.Store
	db       *index.DB
	renderer *markdown.Renderer
}

// NewHandler creates a new Handler.
func NewHandler(st *store.Store, db *index.DB, renderer *markdown.Renderer) *Handler {
	return &Handler{store: st, db: db, renderer: renderer}
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest is the request body for updating a post. Absent fields
// leave the stored value unchanged.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// RenderRequest is the request body for the markdown preview endpoint.
type RenderRequest struct {
	Markdown string `json:"markdown"`
}

func postID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// ListPosts handles GET /api/posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.List()
	if err != nil {
		slog.Error("list posts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorBody("failed to list posts"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// GetPost handles GET /api/posts/{id}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	post, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get post failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadRequest, errorBody("failed to read post"))
		}
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /api/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	post, err := h.store.Create(req.Title, req.Content)
	if err != nil {
		slog.Error("create post failed", slog.String("title", req.Title), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorBody("failed to create post"))
		return
	}
	if err := index.IndexPost(h.db, post.ID, post.Title, post.Content); err != nil {
		slog.Warn("index post failed", slog.String("id", post.ID), slog.String("error", err.Error()))
	}
	writeJSON(w, http.StatusCreated, post)
}

// UpdatePost handles PUT /api/posts/{id}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	id := postID(r)

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	post, err := h.store.Update(id, store.UpdateRequest{Title: req.Title, Content: req.Content})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("update post failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadRequest, errorBody("failed to update post"))
		}
		return
	}
	if err := index.IndexPost(h.db, post.ID, post.Title, post.Content); err != nil {
		slog.Warn("index post failed", slog.String("id", post.ID), slog.String("error", err.Error()))
	}
	writeJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	existed, err := h.store.Delete(id)
	if err != nil {
		slog.Error("delete post failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorBody("failed to delete post"))
		return
	}
	if !existed {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	if err := h.db.DeletePost(id); err != nil {
		slog.Warn("deindex post failed", slog.String("id", id), slog.String("error", err.Error()))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Render handles POST /api/render (markdown preview).
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	html, err := h.renderer.Render(req.Markdown)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to render markdown"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.db.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorBody("search failed"))
		return
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
