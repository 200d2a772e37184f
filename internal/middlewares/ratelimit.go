package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// AuthRateLimit throttles credential endpoints per client IP.
func AuthRateLimit() func(http.Handler) http.Handler {
	return httprate.LimitByIP(20, time.Minute)
}
