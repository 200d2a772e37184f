package auth

import (
	"net/http"

	"github.com/studyhive/studyhive/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Logout clears the auth cookie. The token itself stays valid until it
// expires; there is no server-side revocation.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearTokenCookie(w)

	config.Success(w, http.StatusOK, "logout successful", nil)
}
