package flashcard

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlashcardRepository interface {
	CreateWithCards(set *FlashcardSet, cards []*Flashcard) error
	GetByID(id uuid.UUID) (*FlashcardSet, error)
	ListByUser(userID uuid.UUID) ([]*FlashcardSet, error)
	Delete(id uuid.UUID) error
}

type flashcardRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) CreateWithCards(set *FlashcardSet, cards []*Flashcard) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(set).Error; err != nil {
			return err
		}

		for i := range cards {
			cards[i].SetID = set.ID
		}

		if len(cards) > 0 {
			if err := tx.Create(&cards).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *flashcardRepository) GetByID(id uuid.UUID) (*FlashcardSet, error) {
	var set FlashcardSet
	if err := r.db.
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&set, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &set, nil
}

func (r *flashcardRepository) ListByUser(userID uuid.UUID) ([]*FlashcardSet, error) {
	var sets []*FlashcardSet
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *flashcardRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&FlashcardSet{}, "id = ?", id).Error
}
