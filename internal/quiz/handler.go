package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/auth"
	"github.com/studyhive/studyhive/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var in GenerateQuizInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Invalid request body on quiz generation")
		apperror.Write(w, r, apperror.Validation("body", "invalid request body"))
		return
	}

	quiz, err := h.service.Generate(r.Context(), claims.UserID, in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusCreated, "quiz generated", quiz)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	quizzes, err := h.service.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "", quizzes)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	quiz, err := h.service.GetByID(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "", quiz)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var in SubmitQuizInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Invalid request body on quiz submission")
		apperror.Write(w, r, apperror.Validation("body", "invalid request body"))
		return
	}

	quiz, err := h.service.Submit(r.Context(), claims.UserID, chi.URLParam(r, "id"), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "quiz submitted", quiz)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var in UpdateQuizInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Invalid request body on quiz update")
		apperror.Write(w, r, apperror.Validation("body", "invalid request body"))
		return
	}

	quiz, err := h.service.Update(r.Context(), claims.UserID, chi.URLParam(r, "id"), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "quiz updated", quiz)
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

	config.Success(w, http.StatusOK, "quiz deleted", nil)
}
