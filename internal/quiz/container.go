package quiz

import (
	"github.com/studyhive/studyhive/internal/aigen"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
}

func NewQuizContainer(db *gorm.DB, docs DocumentTextSource, provider aigen.Provider) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, docs, provider)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
	}
}
