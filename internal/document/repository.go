package document

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	CreateBatch(docs []*Document) error
	FindByID(id uuid.UUID) (*Document, error)
	FindAllByUserID(userID uuid.UUID) ([]*Document, error)
	Update(doc *Document) error
	Delete(id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) CreateBatch(docs []*Document) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&docs).Error
	})
}

func (r *documentRepository) FindByID(id uuid.UUID) (*Document, error) {
	var doc Document
	if err := r.db.First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindAllByUserID(userID uuid.UUID) ([]*Document, error) {
	var docs []*Document
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) Update(doc *Document) error {
	return r.db.Save(doc).Error
}

func (r *documentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Document{}, "id = ?", id).Error
}
