package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/aigen"
	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/config"
	"github.com/studyhive/studyhive/internal/document"
	"gorm.io/datatypes"
)

// MaxQuestions bounds one generation request.
const MaxQuestions = 10

// DocumentTextSource supplies the source document a quiz is generated
// from. Satisfied by document.DocumentService.
type DocumentTextSource interface {
	ExtractText(ctx context.Context, userID, id string) (string, error)
	FindByID(ctx context.Context, userID, id string) (*document.Document, error)
}

type QuizService interface {
	Generate(ctx context.Context, userID string, in GenerateQuizInput) (*Quiz, error)
	ListByUser(ctx context.Context, userID string) ([]*Quiz, error)
	GetByID(ctx context.Context, userID, id string) (*Quiz, error)
	Submit(ctx context.Context, userID, id string, in SubmitQuizInput) (*Quiz, error)
	Update(ctx context.Context, userID, id string, in UpdateQuizInput) (*Quiz, error)
	Delete(ctx context.Context, userID, id string) error
}

type quizService struct {
	repo     QuizRepository
	docs     DocumentTextSource
	provider aigen.Provider
}

func NewService(repo QuizRepository, docs DocumentTextSource, provider aigen.Provider) QuizService {
	return &quizService{
		repo:     repo,
		docs:     docs,
		provider: provider,
	}
}

func (s *quizService) Generate(ctx context.Context, userID string, in GenerateQuizInput) (*Quiz, error) {
	log := config.WithContext(ctx)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	docID, err := uuid.Parse(in.DocumentID)
	if err != nil {
		return nil, apperror.Validation("document_id", "must be a valid uuid")
	}
	if in.QuestionCount == 0 {
		in.QuestionCount = aigen.DefaultQuestionCount
	}
	if in.QuestionCount < 1 || in.QuestionCount > MaxQuestions {
		return nil, apperror.Validation("question_count", fmt.Sprintf("must be between 1 and %d", MaxQuestions))
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

	generated, err := s.provider.GenerateQuestions(ctx, aigen.QuestionRequest{
		DocumentText: text,
		Count:        in.QuestionCount,
		Difficulty:   in.Difficulty,
	})
	if err != nil {
		log.WithError(err).Error("Failed to generate quiz questions")
		return nil, err
	}
	if len(generated) == 0 {
		return nil, errors.New("the model returned no questions")
	}

	quiz := &Quiz{
		ID:             uuid.New(),
		UserID:         uid,
		DocumentID:     docID,
		Title:          doc.Title,
		TotalQuestions: len(generated),
	}

	questions := make([]*QuizQuestion, 0, len(generated))
	for i, g := range generated {
		options, err := json.Marshal(g.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
		questions = append(questions, &QuizQuestion{
			ID:            uuid.New(),
			QuizID:        quiz.ID,
			Content:       g.Question,
			Options:       datatypes.JSON(options),
			CorrectAnswer: g.CorrectAnswer,
			Explanation:   g.Explanation,
			Difficulty:    g.Difficulty,
			OrderIndex:    i,
		})
	}

	if err := s.repo.CreateWithQuestions(quiz, questions); err != nil {
		log.WithError(err).Error("Failed to persist generated quiz")
		return nil, err
	}

	quiz.Questions = make([]QuizQuestion, 0, len(questions))
	for _, q := range questions {
		quiz.Questions = append(quiz.Questions, *q)
	}

	log.Info("Quiz generated", "quiz_id", quiz.ID.String())
	return quiz, nil
}

func (s *quizService) ListByUser(ctx context.Context, userID string) ([]*Quiz, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return s.repo.ListByUser(uid)
}

func (s *quizService) getOwned(userID, id string) (*Quiz, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	quizID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("id", "must be a valid uuid")
	}

	quiz, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil || quiz.UserID != uid {
		return nil, apperror.ErrNotFound
	}
	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, userID, id string) (*Quiz, error) {
	return s.getOwned(userID, id)
}

// Submit records an answer sheet. The score is always the count of
// correct entries; attempts grows with each submission while the
// completion timestamp keeps its first value.
func (s *quizService) Submit(ctx context.Context, userID, id string, in SubmitQuizInput) (*Quiz, error) {
	log := config.WithContext(ctx)

	quiz, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}

	if len(in.Answers) == 0 {
		return nil, apperror.Validation("answers", "at least one answer is required")
	}

	byIndex := make(map[int]*QuizQuestion, len(quiz.Questions))
	for i := range quiz.Questions {
		byIndex[quiz.Questions[i].OrderIndex] = &quiz.Questions[i]
	}

	answers := make([]UserAnswer, 0, len(in.Answers))
	score := 0
	for _, a := range in.Answers {
		question, ok := byIndex[a.QuestionIndex]
		if !ok {
			return nil, apperror.Validation("answers", fmt.Sprintf("question index %d does not exist", a.QuestionIndex))
		}

		correct := a.Selected == question.CorrectAnswer
		if correct {
			score++
		}
		answers = append(answers, UserAnswer{
			QuestionIndex: a.QuestionIndex,
			Selected:      a.Selected,
			IsCorrect:     correct,
		})
	}

	encoded, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	quiz.UserAnswers = datatypes.JSON(encoded)
	quiz.Score = score
	quiz.Attempts++
	if quiz.CompletedAt == nil {
		now := time.Now()
		quiz.CompletedAt = &now
	}

	if err := s.repo.Update(quiz); err != nil {
		log.WithError(err).Error("Failed to persist quiz submission")
		return nil, err
	}

	log.Info("Quiz submitted", "quiz_id", quiz.ID.String())
	return quiz, nil
}

func (s *quizService) Update(ctx context.Context, userID, id string, in UpdateQuizInput) (*Quiz, error) {
	quiz, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperror.Validation("title", "must not be empty")
		}
		quiz.Title = *in.Title
	}

	if err := s.repo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *quizService) Delete(ctx context.Context, userID, id string) error {
	quiz, err := s.getOwned(userID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(quiz.ID)
}
