package aigen

import (
	"context"

	"github.com/sirupsen/logrus"
)

type AIGenContainer struct {
	Provider Provider
}

func NewAIGenContainer() *AIGenContainer {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Gemini provider unavailable; generation endpoints will fail")
	}

	return &AIGenContainer{
		Provider: provider,
	}
}
