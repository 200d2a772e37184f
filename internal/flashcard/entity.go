package flashcard

import (
	"time"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/document"
)

// A FlashcardSet is generated once per request from a document and is
// read-only afterwards.
type FlashcardSet struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	DocumentID uuid.UUID         `gorm:"type:uuid;not null;index" json:"document_id"`
	Document   document.Document `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE;" json:"-"`
	Title      string            `gorm:"size:255;not null" json:"title"`
	TotalCards int               `gorm:"not null;default:0" json:"total_cards"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`

	Cards []Flashcard `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

type Flashcard struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SetID      uuid.UUID `gorm:"type:uuid;not null;index" json:"set_id"`
	Front      string    `gorm:"type:text;not null" json:"front"`
	Back       string    `gorm:"type:text;not null" json:"back"`
	Hint       string    `gorm:"type:text" json:"hint,omitempty"`
	OrderIndex int       `gorm:"not null" json:"order_index"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
