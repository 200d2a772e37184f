package quiz_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/aigen"
	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/document"
	"github.com/studyhive/studyhive/internal/quiz"
)

type fakeRepo struct {
	quizzes   map[uuid.UUID]*quiz.Quiz
	questions map[uuid.UUID][]*quiz.QuizQuestion
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		quizzes:   map[uuid.UUID]*quiz.Quiz{},
		questions: map[uuid.UUID][]*quiz.QuizQuestion{},
	}
}

func (r *fakeRepo) CreateWithQuestions(q *quiz.Quiz, questions []*quiz.QuizQuestion) error {
	cp := *q
	r.quizzes[q.ID] = &cp
	for _, question := range questions {
		question.QuizID = q.ID
		qc := *question
		r.questions[q.ID] = append(r.questions[q.ID], &qc)
	}
	return nil
}

func (r *fakeRepo) GetByID(id uuid.UUID) (*quiz.Quiz, error) {
	q, ok := r.quizzes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	cp.Questions = nil
	for _, question := range r.questions[id] {
		cp.Questions = append(cp.Questions, *question)
	}
	return &cp, nil
}

func (r *fakeRepo) ListByUser(userID uuid.UUID) ([]*quiz.Quiz, error) {
	var out []*quiz.Quiz
	for _, q := range r.quizzes {
		if q.UserID == userID {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByDocumentAndUser(documentID, userID uuid.UUID) ([]*quiz.Quiz, error) {
	var out []*quiz.Quiz
	for _, q := range r.quizzes {
		if q.DocumentID == documentID && q.UserID == userID {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(q *quiz.Quiz) error {
	cp := *q
	cp.Questions = nil
	r.quizzes[q.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(id uuid.UUID) error {
	delete(r.quizzes, id)
	delete(r.questions, id)
	return nil
}

type fakeDocs struct {
	ownerID string
	docID   uuid.UUID
}

func (d *fakeDocs) FindByID(ctx context.Context, userID, id string) (*document.Document, error) {
	if userID != d.ownerID || id != d.docID.String() {
		return nil, apperror.ErrNotFound
	}
	return &document.Document{ID: d.docID, Title: "Biology Notes"}, nil
}

func (d *fakeDocs) ExtractText(ctx context.Context, userID, id string) (string, error) {
	if userID != d.ownerID || id != d.docID.String() {
		return "", apperror.ErrNotFound
	}
	return "Mitochondria are the powerhouse of the cell.", nil
}

type fakeProvider struct {
	questions []aigen.GeneratedQuestion
	err       error
	lastCount int
}

func (p *fakeProvider) GenerateQuestions(ctx context.Context, req aigen.QuestionRequest) ([]aigen.GeneratedQuestion, error) {
	p.lastCount = req.Count
	return p.questions, p.err
}

func (p *fakeProvider) GenerateCards(ctx context.Context, req aigen.CardRequest) ([]aigen.GeneratedCard, error) {
	return nil, errors.New("not implemented")
}

func sampleQuestions() []aigen.GeneratedQuestion {
	return []aigen.GeneratedQuestion{
		{
			Question:      "What are mitochondria?",
			Options:       []string{"A) The powerhouse of the cell", "B) A cell wall", "C) A virus", "D) A protein"},
			CorrectAnswer: "A",
			Explanation:   "The document states it directly.",
			Difficulty:    "easy",
		},
		{
			Question:      "Where are mitochondria found?",
			Options:       []string{"A) In rocks", "B) In cells", "C) In air", "D) In water"},
			CorrectAnswer: "B",
			Explanation:   "Mitochondria are organelles inside cells.",
			Difficulty:    "medium",
		},
		{
			Question:      "What do mitochondria produce?",
			Options:       []string{"A) Light", "B) Sound", "C) Energy", "D) Heat only"},
			CorrectAnswer: "C",
			Explanation:   "Power means energy.",
			Difficulty:    "medium",
		},
	}
}

func setup(t *testing.T) (quiz.QuizService, *fakeRepo, string, string) {
	t.Helper()
	owner := uuid.NewString()
	docID := uuid.New()

	repo := newFakeRepo()
	docs := &fakeDocs{ownerID: owner, docID: docID}
	provider := &fakeProvider{questions: sampleQuestions()}

	return quiz.NewService(repo, docs, provider), repo, owner, docID.String()
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, owner, docID := setup(t)

		q, err := svc.Generate(ctx, owner, quiz.GenerateQuizInput{DocumentID: docID, QuestionCount: 3})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if q.TotalQuestions != 3 {
			t.Errorf("expected 3 questions, got %d", q.TotalQuestions)
		}
		if q.Title != "Biology Notes" {
			t.Errorf("quiz should take the document title, got %q", q.Title)
		}
		if len(q.Questions) != 3 {
			t.Fatalf("expected questions on the response, got %d", len(q.Questions))
		}
		for i, question := range q.Questions {
			if question.OrderIndex != i {
				t.Errorf("question %d has order index %d", i, question.OrderIndex)
			}
		}
	})

	t.Run("ForeignDocument", func(t *testing.T) {
		svc, _, _, docID := setup(t)

		_, err := svc.Generate(ctx, uuid.NewString(), quiz.GenerateQuizInput{DocumentID: docID, QuestionCount: 3})
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("expected ErrNotFound for a foreign document, got: %v", err)
		}
	})

	t.Run("CountAboveCap", func(t *testing.T) {
		svc, _, owner, docID := setup(t)

		_, err := svc.Generate(ctx, owner, quiz.GenerateQuizInput{DocumentID: docID, QuestionCount: quiz.MaxQuestions + 1})
		if _, ok := apperror.AsValidation(err); !ok {
			t.Errorf("expected a ValidationError above the question cap, got: %v", err)
		}
	})

	t.Run("ZeroCountUsesDefault", func(t *testing.T) {
		owner := uuid.NewString()
		docID := uuid.New()
		provider := &fakeProvider{questions: sampleQuestions()}
		svc := quiz.NewService(newFakeRepo(), &fakeDocs{ownerID: owner, docID: docID}, provider)

		if _, err := svc.Generate(ctx, owner, quiz.GenerateQuizInput{DocumentID: docID.String()}); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if provider.lastCount != aigen.DefaultQuestionCount {
			t.Errorf("expected the default count %d, provider was asked for %d", aigen.DefaultQuestionCount, provider.lastCount)
		}
	})

	t.Run("NegativeCountRejected", func(t *testing.T) {
		svc, _, owner, docID := setup(t)

		_, err := svc.Generate(ctx, owner, quiz.GenerateQuizInput{DocumentID: docID, QuestionCount: -1})
		if _, ok := apperror.AsValidation(err); !ok {
			t.Errorf("expected a ValidationError for a negative count, got: %v", err)
		}
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (quiz.QuizService, string, string) {
		t.Helper()
		svc, _, owner, docID := setup(t)
		q, err := svc.Generate(ctx, owner, quiz.GenerateQuizInput{DocumentID: docID, QuestionCount: 3})
		if err != nil {
			t.Fatalf("seed Generate failed: %v", err)
		}
		return svc, owner, q.ID.String()
	}

	t.Run("ScoreEqualsCorrectCount", func(t *testing.T) {
		svc, owner, quizID := seed(t)

		q, err := svc.Submit(ctx, owner, quizID, quiz.SubmitQuizInput{Answers: []quiz.SubmittedAnswer{
			{QuestionIndex: 0, Selected: "A"},
			{QuestionIndex: 1, Selected: "D"},
			{QuestionIndex: 2, Selected: "C"},
		}})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		var answers []quiz.UserAnswer
		if err := json.Unmarshal(q.UserAnswers, &answers); err != nil {
			t.Fatalf("failed to decode recorded answers: %v", err)
		}

		correct := 0
		for _, a := range answers {
			if a.IsCorrect {
				correct++
			}
		}
		if q.Score != correct {
			t.Errorf("score %d does not equal correct answer count %d", q.Score, correct)
		}
		if q.Score != 2 {
			t.Errorf("expected score 2, got %d", q.Score)
		}
		if q.CompletedAt == nil {
			t.Error("completion timestamp should be set on first submission")
		}
		if q.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", q.Attempts)
		}
	})

	t.Run("UnknownQuestionIndex", func(t *testing.T) {
		svc, owner, quizID := seed(t)

		_, err := svc.Submit(ctx, owner, quizID, quiz.SubmitQuizInput{Answers: []quiz.SubmittedAnswer{
			{QuestionIndex: 99, Selected: "A"},
		}})
		if _, ok := apperror.AsValidation(err); !ok {
			t.Errorf("expected a ValidationError for an unknown index, got: %v", err)
		}
	})

	t.Run("ResubmissionKeepsFirstCompletion", func(t *testing.T) {
		svc, owner, quizID := seed(t)

		first, err := svc.Submit(ctx, owner, quizID, quiz.SubmitQuizInput{Answers: []quiz.SubmittedAnswer{
			{QuestionIndex: 0, Selected: "A"},
		}})
		if err != nil {
			t.Fatalf("first Submit failed: %v", err)
		}

		time.Sleep(5 * time.Millisecond)

		second, err := svc.Submit(ctx, owner, quizID, quiz.SubmitQuizInput{Answers: []quiz.SubmittedAnswer{
			{QuestionIndex: 0, Selected: "B"},
			{QuestionIndex: 1, Selected: "B"},
		}})
		if err != nil {
			t.Fatalf("second Submit failed: %v", err)
		}

		if second.Attempts != 2 {
			t.Errorf("expected 2 attempts, got %d", second.Attempts)
		}
		if !second.CompletedAt.Equal(*first.CompletedAt) {
			t.Error("completion timestamp changed on resubmission")
		}
		if second.Score != 1 {
			t.Errorf("expected score 1 after resubmission, got %d", second.Score)
		}
	})
}

func TestOwnerScoping(t *testing.T) {
	ctx := context.Background()
	svc, _, owner, docID := setup(t)

	q, err := svc.Generate(ctx, owner, quiz.GenerateQuizInput{DocumentID: docID, QuestionCount: 3})
	if err != nil {
		t.Fatalf("seed Generate failed: %v", err)
	}

	if _, err := svc.GetByID(ctx, uuid.NewString(), q.ID.String()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a non-owner read, got: %v", err)
	}
	if err := svc.Delete(ctx, uuid.NewString(), q.ID.String()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a non-owner delete, got: %v", err)
	}
}
