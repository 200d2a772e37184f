package quiz

import (
	"time"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/document"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID             uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	DocumentID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"document_id"`
	Document       document.Document `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE;" json:"-"`
	Title          string            `gorm:"size:255;not null" json:"title"`
	TotalQuestions int               `gorm:"not null;default:0" json:"total_questions"`
	Score          int               `gorm:"not null;default:0" json:"score"`
	Attempts       int               `gorm:"not null;default:0" json:"attempts"`
	UserAnswers    datatypes.JSON    `gorm:"type:jsonb" json:"user_answers,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type QuizQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Options       datatypes.JSON `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer string         `gorm:"type:text;not null" json:"correct_answer"`
	Explanation   string         `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty    string         `gorm:"size:20;not null;default:'medium'" json:"difficulty"`
	OrderIndex    int            `gorm:"not null" json:"order_index"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// UserAnswer lives inside the quiz row's user_answers JSONB column,
// ordered by submission.
type UserAnswer struct {
	QuestionIndex int    `json:"question_index"`
	Selected      string `json:"selected"`
	IsCorrect     bool   `json:"is_correct"`
}
