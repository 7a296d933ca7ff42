package service

import (
	"context"
	"errors"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/llm"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/schema"
	"github.com/rs/zerolog/log"
)

// AIJudgeService asks the model to judge single answers. Callers treat every
// error as recoverable.
type AIJudgeService interface {
	CheckMultipleChoice(ctx context.Context, question *model.Question, selected []int) (*schema.MCQCheck, error)
	// ScoreOpenAnswer returns a score already clamped to [0, maxScore].
	ScoreOpenAnswer(ctx context.Context, question *model.Question, response string) (*schema.ScoreResult, error)
}

type aiJudgeService struct {
	client llm.Client
}

func NewAIJudgeService(client llm.Client) AIJudgeService {
	return &aiJudgeService{client: client}
}

func (s *aiJudgeService) CheckMultipleChoice(ctx context.Context, question *model.Question, selected []int) (*schema.MCQCheck, error) {
	resp, err := s.client.Generate(ctx, llm.Request{
		Name:        fnSubmitMCQCheck,
		Prompt:      buildMCQCheckPrompt(question, selected),
		Schema:      mcqCheckShape,
		Temperature: 0,
	})
	if err != nil {
		return nil, &ModelCallError{Operation: "mcq double-check", Cause: err}
	}
	doc, err := llm.DecodeModelResponse(resp)
	if err != nil {
		return nil, &ModelSchemaError{Shape: schema.ShapeMCQCheck, Cause: err}
	}
	check, err := schema.ValidateMCQCheck(doc)
	if err != nil {
		return nil, schemaError(schema.ShapeMCQCheck, err)
	}
	return check, nil
}

func (s *aiJudgeService) ScoreOpenAnswer(ctx context.Context, question *model.Question, response string) (*schema.ScoreResult, error) {
	maxScore := question.MaxScore
	if maxScore <= 0 {
		maxScore = schema.DefaultMaxScore(question.QuestionType)
		log.Warn().Uint("questionID", question.ID).Float64("fallbackMaxScore", maxScore).Msg("Question MaxScore is invalid or not set, using type-based fallback.")
	}

	resp, err := s.client.Generate(ctx, llm.Request{
		Name:        fnSubmitScore,
		Prompt:      buildRubricPrompt(question, maxScore, response),
		Schema:      scoreShape,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, &ModelCallError{Operation: "rubric scoring", Cause: err}
	}
	doc, err := llm.DecodeModelResponse(resp)
	if err != nil {
		return nil, &ModelSchemaError{Shape: schema.ShapeScore, Cause: err}
	}
	result, err := schema.ValidateScore(doc)
	if err != nil {
		return nil, schemaError(schema.ShapeScore, err)
	}

	result.Score = round2(clamp(result.Score, 0, maxScore))
	return result, nil
}

// schemaError wraps a schema validation failure as a ModelSchemaError.
func schemaError(shape schema.Shape, err error) error {
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		return &ModelSchemaError{Shape: shape, Violations: ve.Errors, Cause: err}
	}
	return &ModelSchemaError{Shape: shape, Cause: err}
}
