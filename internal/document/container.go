package document

import (
	"gorm.io/gorm"
)

type DocumentContainer struct {
	Handler *Handler
	Service DocumentService
}

func NewDocumentContainer(db *gorm.DB, files FileStore) *DocumentContainer {
	repo := NewRepository(db)
	service := NewService(repo, files)
	handler := NewHandler(service)

	return &DocumentContainer{
		Handler: handler,
		Service: service,
	}
}
