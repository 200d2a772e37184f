package document

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/auth"
	"github.com/studyhive/studyhive/internal/config"
	"github.com/studyhive/studyhive/internal/storage"
)

type Handler struct {
	service DocumentService
}

func NewHandler(s DocumentService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(MaxBatchSize)*storage.MaxDocumentSize)
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		log.WithError(err).Warn("Invalid multipart form on document upload")
		apperror.Write(w, r, uploadBodyError(err))
		return
	}

	files := r.MultipartForm.File["documents"]
	docs, err := h.service.Upload(r.Context(), claims.UserID, files)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusCreated, "documents uploaded", docs)
}

// uploadBodyError separates a request that blew the byte cap from one
// whose body is not a multipart form at all.
func uploadBodyError(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return apperror.ErrFileTooLarge
	}
	return apperror.Validation("body", "expected a multipart form")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	docs, err := h.service.FindAllByUser(r.Context(), claims.UserID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "", docs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	doc, err := h.service.FindByID(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "", doc)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var in UpdateDocumentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Invalid request body on document update")
		apperror.Write(w, r, apperror.Validation("body", "invalid request body"))
		return
	}

	doc, err := h.service.Update(r.Context(), claims.UserID, chi.URLParam(r, "id"), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "document updated", doc)
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

	config.Success(w, http.StatusOK, "document deleted", nil)
}
