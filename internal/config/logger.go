package config

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// WithContext returns a logger carrying the chi request ID when one is
// present, so every line from a single request can be correlated.
func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.StandardLogger().WithContext(ctx)

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}

	return entry
}
