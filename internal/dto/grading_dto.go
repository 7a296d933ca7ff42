package dto

import (
	"encoding/json"
	"time"
)

// SubmittedAnswer carries the raw payload; its shape depends on the question
// type (index or index list for multiple_choice, text otherwise).
type SubmittedAnswer struct {
	QuestionID   uint            `json:"question_id" validate:"required"`
	QuestionType string          `json:"question_type" validate:"omitempty,oneof=multiple_choice coding scenario"`
	Answer       json.RawMessage `json:"answer" swaggertype:"object"`
}

type GradeRequest struct {
	AssessmentID         uint              `json:"-" validate:"required"`
	AttemptID            *uint             `json:"attempt_id"`
	TimeRemainingSeconds *int              `json:"time_remaining_seconds" validate:"omitempty,min=0"`
	Answers              []SubmittedAnswer `json:"answers" validate:"dive"`
}

type GradeResponse struct {
	AttemptID  uint           `json:"attempt_id"`
	TotalScore float64        `json:"total_score"`
	Report     map[string]any `json:"report"`
}

type AnswerDetail struct {
	QuestionID    uint            `json:"question_id"`
	QuestionIndex int             `json:"question_index"`
	QuestionType  string          `json:"question_type"`
	Answer        json.RawMessage `json:"answer" swaggertype:"object"`
	IsCorrect     *bool           `json:"is_correct"`
	Score         float64         `json:"score"`
	MaxScore      float64         `json:"max_score"`
	AIFeedback    json.RawMessage `json:"ai_feedback,omitempty" swaggertype:"object"`
}

type AttemptDetail struct {
	ID              uint            `json:"id"`
	AssessmentID    uint            `json:"assessment_id"`
	AssessmentTitle string          `json:"assessment_title,omitempty"`
	Status          string          `json:"status"`
	StartedAt       time.Time       `json:"started_at"`
	SubmittedAt     *time.Time      `json:"submitted_at,omitempty"`
	TimeRemaining   *int            `json:"time_remaining,omitempty"`
	TotalScore      float64         `json:"total_score"`
	TechnicalScore  *float64        `json:"technical_score"`
	SoftScore       *float64        `json:"soft_score"`
	Report          json.RawMessage `json:"report,omitempty" swaggertype:"object"`
	Answers         []AnswerDetail  `json:"answers"`
}
