package apperror

import (
	"errors"
	"net/http"

	"github.com/studyhive/studyhive/internal/config"
)

func status(err error) int {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Write translates a service error into the JSON envelope. Internal errors
// keep their detail out of the response unless running in development.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := AsValidation(err); ok {
		config.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "validation failed",
			"errors":  ve.Fields,
		})
		return
	}

	code := status(err)
	if code == http.StatusInternalServerError {
		log := config.WithContext(r.Context())
		log.WithError(err).Error("Unhandled error reached the HTTP boundary")

		detail := ""
		if !config.C.IsProduction() {
			detail = err.Error()
		}
		config.Fail(w, code, "internal server error", detail)
		return
	}

	config.Fail(w, code, err.Error(), "")
}
