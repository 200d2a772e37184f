package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/generate", h.Generate)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/submit", h.Submit)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
