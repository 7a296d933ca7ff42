package model

import (
	"time"

	"gorm.io/datatypes"
)

// Answer has no soft delete: a re-grade hard-deletes the attempt's rows and
// inserts the new set.
type Answer struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	AttemptID  uint           `json:"attempt_id" gorm:"not null;uniqueIndex:idx_answer_attempt_question"`
	QuestionID uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_answer_attempt_question"`
	Question   Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Answer     datatypes.JSON `json:"answer"`
	IsCorrect  *bool          `json:"is_correct"` // nil for AI-graded questions
	Score      float64        `json:"score" gorm:"not null;default:0"`
	AIFeedback datatypes.JSON `json:"ai_feedback,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
