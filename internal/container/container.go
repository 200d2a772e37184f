package container

import (
	"context"
	"log"

	"github.com/studyhive/studyhive/internal/aigen"
	"github.com/studyhive/studyhive/internal/auth"
	"github.com/studyhive/studyhive/internal/config"
	"github.com/studyhive/studyhive/internal/document"
	"github.com/studyhive/studyhive/internal/flashcard"
	"github.com/studyhive/studyhive/internal/quiz"
	"github.com/studyhive/studyhive/internal/storage"
	"github.com/studyhive/studyhive/internal/user"
)

type Container struct {
	UserContainer      *user.UserContainer
	DocumentContainer  *document.DocumentContainer
	QuizContainer      *quiz.QuizContainer
	FlashcardContainer *flashcard.FlashcardContainer
	Store              *storage.Store
}

func New() *Container {
	config.Init()
	auth.Init()

	if err := config.Connect(context.Background(), config.C.DatabaseDSN); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&document.Document{},
		&quiz.Quiz{},
		&quiz.QuizQuestion{},
		&flashcard.FlashcardSet{},
		&flashcard.Flashcard{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	store, err := storage.New(config.C.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload storage: %v", err)
	}

	aiGenContainer := aigen.NewAIGenContainer()
	userContainer := user.NewUserContainer(config.DB, store)
	documentContainer := document.NewDocumentContainer(config.DB, store)
	quizContainer := quiz.NewQuizContainer(config.DB, documentContainer.Service, aiGenContainer.Provider)
	flashcardContainer := flashcard.NewFlashcardContainer(config.DB, documentContainer.Service, aiGenContainer.Provider)

	return &Container{
		UserContainer:      userContainer,
		DocumentContainer:  documentContainer,
		QuizContainer:      quizContainer,
		FlashcardContainer: flashcardContainer,
		Store:              store,
	}
}
