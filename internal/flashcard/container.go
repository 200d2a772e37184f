package flashcard

import (
	"github.com/studyhive/studyhive/internal/aigen"
	"gorm.io/gorm"
)

type FlashcardContainer struct {
	Handler *Handler
	Service FlashcardService
}

func NewFlashcardContainer(db *gorm.DB, docs DocumentTextSource, provider aigen.Provider) *FlashcardContainer {
	repo := NewRepository(db)
	service := NewService(repo, docs, provider)
	handler := NewHandler(service)

	return &FlashcardContainer{
		Handler: handler,
		Service: service,
	}
}
