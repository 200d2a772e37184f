package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/user"
)

type Document struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	OriginalName string    `gorm:"size:255;not null" json:"original_name"`
	StoragePath  string    `gorm:"type:text;not null" json:"storage_path"`
	ContentType  string    `gorm:"size:150;not null" json:"content_type"`
	SizeBytes    int64     `gorm:"not null" json:"size_bytes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
