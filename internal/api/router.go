package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events. Image serving lives
// outside the /api mount; callers wire h.ServeImage at /images/{id}/{file}.
func NewRouter(h *Handler, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	// Posts CRUD.
	r.Get("/posts", h.ListPosts)
	r.Post("/posts", h.CreatePost)
	r.Get("/posts/{id}", h.GetPost)
	r.Put("/posts/{id}", h.UpdatePost)
	r.Delete("/posts/{id}", h.DeletePost)

	// Image uploads.
	r.Get("/posts/{id}/upload", h.ListImages)
	r.Post("/posts/{id}/upload", h.UploadImage)

	// Preview and search.
	r.Post("/render", h.Render)
	r.Get("/search", h.Search)

	// SSE endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
