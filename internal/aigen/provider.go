package aigen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/studyhive/studyhive/internal/config"
	"google.golang.org/genai"
)

type Provider interface {
	GenerateQuestions(ctx context.Context, req QuestionRequest) ([]GeneratedQuestion, error)
	GenerateCards(ctx context.Context, req CardRequest) ([]GeneratedCard, error)
}

type geminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) send(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(
		ctx,
		"gemini-2.0-flash",
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.WithError(err).Error("Failed to generate content from Gemini")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("[AIGEN] Raw model response:\n%s", raw)

	if raw == "" {
		return "", errors.New("empty response from the model")
	}

	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")
	return clean, nil
}

func (p *geminiProvider) GenerateQuestions(ctx context.Context, req QuestionRequest) ([]GeneratedQuestion, error) {
	log := config.WithContext(ctx)

	clean, err := p.send(ctx, questionSystemPrompt, BuildQuestionPrompt(req))
	if err != nil {
		return nil, err
	}

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(clean), &questions); err != nil {
		log.WithError(err).Errorf("[AIGEN] Failed to decode question JSON. Cleaned content:\n%s", clean)
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	log.Infof("[AIGEN] Generated %d questions", len(questions))
	return questions, nil
}

func (p *geminiProvider) GenerateCards(ctx context.Context, req CardRequest) ([]GeneratedCard, error) {
	log := config.WithContext(ctx)

	clean, err := p.send(ctx, cardSystemPrompt, BuildCardPrompt(req))
	if err != nil {
		return nil, err
	}

	var cards []GeneratedCard
	if err := json.Unmarshal([]byte(clean), &cards); err != nil {
		log.WithError(err).Errorf("[AIGEN] Failed to decode card JSON. Cleaned content:\n%s", clean)
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	log.Infof("[AIGEN] Generated %d cards", len(cards))
	return cards, nil
}
