package flashcard

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/auth"
	"github.com/studyhive/studyhive/internal/config"
)

type Handler struct {
	service FlashcardService
}

func NewHandler(s FlashcardService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var in GenerateSetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Invalid request body on flashcard generation")
		apperror.Write(w, r, apperror.Validation("body", "invalid request body"))
		return
	}

	set, err := h.service.Generate(r.Context(), claims.UserID, in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusCreated, "flashcard set generated", set)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	sets, err := h.service.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "", sets)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	set, err := h.service.GetByID(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "", set)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "flashcard set deleted", nil)
}
