package schema

import (
	"fmt"
)

type Rubric struct {
	Criteria  []string `json:"criteria"`
	KeyPoints []string `json:"key_points"`
}

// Question is a generated question that passed the assessment shape.
type Question struct {
	Type           string         `json:"type"`
	QuestionText   string         `json:"question_text"`
	Options        []string       `json:"options,omitempty"`
	CorrectAnswers []int          `json:"correct_answers,omitempty"`
	Language       *string        `json:"language,omitempty"`
	StarterCode    *string        `json:"starter_code,omitempty"`
	Rubric         *Rubric        `json:"rubric,omitempty"`
	MaxScore       *float64       `json:"max_score,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Assessment is a generated assessment that passed the assessment shape.
type Assessment struct {
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	TimeLimit int        `json:"time_limit"`
	Questions []Question `json:"questions"`
}

// DefaultMaxScore returns the documented max score for a question type.
func DefaultMaxScore(questionType string) float64 {
	switch questionType {
	case "multiple_choice":
		return DefaultMultipleChoiceMaxScore
	case "coding":
		return DefaultCodingMaxScore
	case "scenario":
		return DefaultScenarioMaxScore
	default:
		return DefaultMultipleChoiceMaxScore
	}
}

// ValidateAssessment checks doc against the assessment shape, then the rules
// JSON Schema cannot express, and fills max_score defaults.
func ValidateAssessment(doc []byte) (*Assessment, error) {
	var out Assessment
	if err := decode(ShapeAssessment, doc, &out); err != nil {
		return nil, err
	}

	var violations []FieldError
	for i, q := range out.Questions {
		if q.Type != "multiple_choice" {
			continue
		}
		for j, idx := range q.CorrectAnswers {
			if idx >= len(q.Options) {
				violations = append(violations, FieldError{
					Field:   fmt.Sprintf("questions.%d.correct_answers.%d", i, j),
					Message: fmt.Sprintf("index %d is out of range for %d options", idx, len(q.Options)),
				})
			}
		}
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Errors: violations}
	}

	for i := range out.Questions {
		if out.Questions[i].MaxScore == nil {
			def := DefaultMaxScore(out.Questions[i].Type)
			out.Questions[i].MaxScore = &def
		}
	}
	return &out, nil
}

// ScoreResult is the rubric scoring shape.
type ScoreResult struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

func ValidateScore(doc []byte) (*ScoreResult, error) {
	var out ScoreResult
	if err := decode(ShapeScore, doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MCQCheck is the multiple-choice double-check shape.
type MCQCheck struct {
	IsCorrect bool   `json:"is_correct"`
	Reasoning string `json:"reasoning"`
}

func ValidateMCQCheck(doc []byte) (*MCQCheck, error) {
	var out MCQCheck
	if err := decode(ShapeMCQCheck, doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateReport returns the report as a generic object so it can be stored
// and returned verbatim.
func ValidateReport(doc []byte) (map[string]any, error) {
	var out map[string]any
	if err := decode(ShapeReport, doc, &out); err != nil {
		return nil, err
	}
	return out, nil
}
