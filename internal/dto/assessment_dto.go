package dto

import "time"

// GenerateRequest is the body of the generate operation. The caller identity
// comes from the auth token, never from the body.
type GenerateRequest struct {
	ResumeID       *uint    `json:"resume_id"`
	JobDescription string   `json:"job_description" validate:"required,min=20"`
	SkillHints     []string `json:"skill_hints" validate:"omitempty,max=20,dive,required,max=100"`
}

type GenerateResponse struct {
	AssessmentID uint `json:"assessment_id"`
}

// QuestionView is a question as shown to a candidate: no answer key, no rubric.
type QuestionView struct {
	ID            uint     `json:"id"`
	QuestionIndex int      `json:"question_index"`
	QuestionType  string   `json:"question_type"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options,omitempty"`
	Language      *string  `json:"language,omitempty"`
	StarterCode   *string  `json:"starter_code,omitempty"`
	MaxScore      float64  `json:"max_score"`
}

type AssessmentView struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	Category       string         `json:"category"`
	TotalQuestions int            `json:"total_questions"`
	TimeLimit      int            `json:"time_limit"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	Questions      []QuestionView `json:"questions"`
}

type StartAttemptResponse struct {
	AttemptID  uint           `json:"attempt_id"`
	StartedAt  time.Time      `json:"started_at"`
	Assessment AssessmentView `json:"assessment"`
}
