package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeCoding         = "coding"
	QuestionTypeScenario       = "scenario"
)

type Rubric struct {
	Criteria  []string `json:"criteria"`
	KeyPoints []string `json:"key_points"`
}

// Question rows are written once at generation time and never edited.
type Question struct {
	ID             uint                        `gorm:"primarykey" json:"id"`
	AssessmentID   uint                        `json:"assessment_id" gorm:"not null;uniqueIndex:idx_question_assessment_index"`
	QuestionIndex  int                         `json:"question_index" gorm:"not null;uniqueIndex:idx_question_assessment_index"`
	QuestionType   string                      `json:"question_type" gorm:"not null"` // "multiple_choice", "coding", "scenario"
	QuestionText   string                      `json:"question_text" gorm:"type:text;not null"`
	Options        datatypes.JSONSlice[string] `json:"options,omitempty"`
	CorrectAnswers datatypes.JSONSlice[int]    `json:"correct_answers,omitempty"`
	Language       *string                     `json:"language,omitempty"`
	StarterCode    *string                     `json:"starter_code,omitempty" gorm:"type:text"`
	Rubric         *datatypes.JSONType[Rubric] `json:"rubric,omitempty"`
	MaxScore       float64                     `json:"max_score" gorm:"not null"`
	Metadata       datatypes.JSON              `json:"metadata,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
}

// IsTechnical reports whether the question counts toward the technical subtotal.
func (q *Question) IsTechnical() bool {
	return q.QuestionType == QuestionTypeMultipleChoice || q.QuestionType == QuestionTypeCoding
}

// RubricData returns the rubric or an empty one.
func (q *Question) RubricData() Rubric {
	if q.Rubric == nil {
		return Rubric{}
	}
	return q.Rubric.Data()
}
