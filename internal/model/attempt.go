package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusGraded     = "graded"
)

// Attempt is one candidate's run at an assessment. Only grading mutates it.
type Attempt struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	AssessmentID   uint           `json:"assessment_id" gorm:"not null;index"`
	Assessment     Assessment     `json:"assessment,omitempty" gorm:"foreignKey:AssessmentID"`
	UserID         string         `json:"user_id" gorm:"not null;index"`
	StartedAt      time.Time      `json:"started_at" gorm:"not null"`
	SubmittedAt    *time.Time     `json:"submitted_at,omitempty"`
	TimeRemaining  *int           `json:"time_remaining,omitempty"`
	Status         string         `json:"status" gorm:"not null;default:'in_progress'"` // "in_progress", "graded"
	TotalScore     float64        `json:"total_score"`
	TechnicalScore *float64       `json:"technical_score"`
	SoftScore      *float64       `json:"soft_score"`
	Report         datatypes.JSON `json:"report,omitempty"`
	Answers        []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
