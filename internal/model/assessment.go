package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AssessmentStatusDraft      = "draft"
	AssessmentStatusInProgress = "in_progress"
	AssessmentStatusCompleted  = "completed"
)

// Assessment is one generated test instance. It is created together with its
// question set and is never deleted by the engine.
type Assessment struct {
	ID             uint                       `gorm:"primarykey" json:"id"`
	UserID         string                     `json:"user_id" gorm:"not null;index"`
	ResumeID       *uint                      `json:"resume_id,omitempty" gorm:"index"`
	JobDescription string                     `json:"job_description" gorm:"type:text;not null"`
	SkillHints     datatypes.JSONSlice[string] `json:"skill_hints,omitempty"`
	Title          string                     `json:"title" gorm:"not null"`
	Category       string                     `json:"category"`
	TotalQuestions int                        `json:"total_questions" gorm:"not null"`
	TimeLimit      int                        `json:"time_limit" gorm:"not null"` // seconds
	Status         string                     `json:"status" gorm:"not null;default:'draft'"`
	Questions      []Question                 `json:"questions,omitempty" gorm:"foreignKey:AssessmentID"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}
