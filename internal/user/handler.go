package user

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/auth"
	"github.com/studyhive/studyhive/internal/config"
)

// multipartMemory caps how much of a profile-image form is buffered in
// memory; the rest spills to temp files.
const multipartMemory = 8 << 20

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		log.WithError(err).Warn("Invalid multipart form on register")
		apperror.Write(w, r, apperror.Validation("body", "expected a multipart form"))
		return
	}

	in := RegisterInput{
		Name:     r.FormValue("name"),
		Email:    strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		Password: r.FormValue("password"),
	}

	resp, err := h.service.Register(r.Context(), in, formFile(r, "profileImage"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	auth.SetTokenCookie(w, resp.Token)
	config.Success(w, http.StatusCreated, "user registered", resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var in LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Invalid request body on login")
		apperror.Write(w, r, apperror.Validation("body", "invalid request body"))
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	resp, err := h.service.Login(r.Context(), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	auth.SetTokenCookie(w, resp.Token)
	config.Success(w, http.StatusOK, "login successful", resp)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "", resp)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var in UpdateProfileInput
	var image *multipart.FileHeader

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			log.WithError(err).Warn("Invalid multipart form on profile update")
			apperror.Write(w, r, apperror.Validation("body", "expected a multipart form"))
			return
		}
		if name := r.FormValue("name"); name != "" {
			in.Name = &name
		}
		image = formFile(r, "profileImage")
	} else {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			log.WithError(err).Warn("Invalid request body on profile update")
			apperror.Write(w, r, apperror.Validation("body", "invalid request body"))
			return
		}
	}

	resp, err := h.service.UpdateProfile(r.Context(), claims.UserID, in, image)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "profile updated", resp)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var in ChangePasswordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Invalid request body on password change")
		apperror.Write(w, r, apperror.Validation("body", "invalid request body"))
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims.UserID, in); err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.Success(w, http.StatusOK, "password changed", nil)
}
