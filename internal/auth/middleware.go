package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/config"
)

type contextKey string

const claimsKey contextKey = "userClaims"

// extractToken looks in the auth cookie first, then the Authorization
// header. The cookie wins when both are present.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := extractToken(r)
		if tokenStr == "" {
			apperror.Write(w, r, apperror.ErrUnauthenticated)
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Rejected request with invalid token")
			apperror.Write(w, r, apperror.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, apperror.ErrUnauthenticated
	}
	return claims, nil
}
