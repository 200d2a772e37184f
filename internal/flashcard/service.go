package flashcard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/aigen"
	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/config"
	"github.com/studyhive/studyhive/internal/document"
)

// MaxCards bounds one generation request.
const MaxCards = 20

type DocumentTextSource interface {
	ExtractText(ctx context.Context, userID, id string) (string, error)
	FindByID(ctx context.Context, userID, id string) (*document.Document, error)
}

type FlashcardService interface {
	Generate(ctx context.Context, userID string, in GenerateSetInput) (*FlashcardSet, error)
	ListByUser(ctx context.Context, userID string) ([]*FlashcardSet, error)
	GetByID(ctx context.Context, userID, id string) (*FlashcardSet, error)
	Delete(ctx context.Context, userID, id string) error
}

type flashcardService struct {
	repo     FlashcardRepository
	docs     DocumentTextSource
	provider aigen.Provider
}

func NewService(repo FlashcardRepository, docs DocumentTextSource, provider aigen.Provider) FlashcardService {
	return &flashcardService{
		repo:     repo,
		docs:     docs,
		provider: provider,
	}
}

func (s *flashcardService) Generate(ctx context.Context, userID string, in GenerateSetInput) (*FlashcardSet, error) {
	log := config.WithContext(ctx)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	docID, err := uuid.Parse(in.DocumentID)
	if err != nil {
		return nil, apperror.Validation("document_id", "must be a valid uuid")
	}
	if in.CardCount == 0 {
		in.CardCount = aigen.DefaultCardCount
	}
	if in.CardCount < 1 || in.CardCount > MaxCards {
		return nil, apperror.Validation("card_count", fmt.Sprintf("must be between 1 and %d", MaxCards))
	}
	if s.provider == nil {
		return nil, errors.New("generation provider is not configured")
	}

	doc, err := s.docs.FindByID(ctx, userID, in.DocumentID)
	if err != nil {
		return nil, err
	}
	text, err := s.docs.ExtractText(ctx, userID, in.DocumentID)
	if err != nil {
		return nil, err
	}

	generated, err := s.provider.GenerateCards(ctx, aigen.CardRequest{
		DocumentText: text,
		Count:        in.CardCount,
	})
	if err != nil {
		log.WithError(err).Error("Failed to generate flashcards")
		return nil, err
	}
	if len(generated) == 0 {
		return nil, errors.New("the model returned no cards")
	}

	set := &FlashcardSet{
		ID:         uuid.New(),
		UserID:     uid,
		DocumentID: docID,
		Title:      doc.Title,
		TotalCards: len(generated),
	}

	cards := make([]*Flashcard, 0, len(generated))
	for i, g := range generated {
		cards = append(cards, &Flashcard{
			ID:         uuid.New(),
			SetID:      set.ID,
			Front:      g.Front,
			Back:       g.Back,
			Hint:       g.Hint,
			OrderIndex: i,
		})
	}

	if err := s.repo.CreateWithCards(set, cards); err != nil {
		log.WithError(err).Error("Failed to persist generated flashcard set")
		return nil, err
	}

	set.Cards = make([]Flashcard, 0, len(cards))
	for _, c := range cards {
		set.Cards = append(set.Cards, *c)
	}

	log.Info("Flashcard set generated", "set_id", set.ID.String())
	return set, nil
}

func (s *flashcardService) ListByUser(ctx context.Context, userID string) ([]*FlashcardSet, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return s.repo.ListByUser(uid)
}

func (s *flashcardService) getOwned(userID, id string) (*FlashcardSet, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	setID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("id", "must be a valid uuid")
	}

	set, err := s.repo.GetByID(setID)
	if err != nil {
		return nil, err
	}
	if set == nil || set.UserID != uid {
		return nil, apperror.ErrNotFound
	}
	return set, nil
}

func (s *flashcardService) GetByID(ctx context.Context, userID, id string) (*FlashcardSet, error) {
	return s.getOwned(userID, id)
}

func (s *flashcardService) Delete(ctx context.Context, userID, id string) error {
	set, err := s.getOwned(userID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(set.ID)
}
