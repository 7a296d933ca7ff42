package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/dto"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/events"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/llm"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/repository"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/schema"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// Input bounds applied before the prompt is built.
const (
	MaxJobDescriptionChars = 50000
	MaxResumeChars         = 200000
)

// GeneratorService turns a job description, and optionally a resume, into a
// persisted assessment.
type GeneratorService interface {
	Generate(ctx context.Context, userID string, req dto.GenerateRequest) (*dto.GenerateResponse, error)
}

type generatorService struct {
	assessmentRepo repository.AssessmentRepository
	questionRepo   repository.QuestionRepository
	textService    TextService
	client         llm.Client
	publisher      events.Publisher
}

func NewGeneratorService(
	assessmentRepo repository.AssessmentRepository,
	questionRepo repository.QuestionRepository,
	textService TextService,
	client llm.Client,
	publisher events.Publisher,
) GeneratorService {
	return &generatorService{
		assessmentRepo: assessmentRepo,
		questionRepo:   questionRepo,
		textService:    textService,
		client:         client,
		publisher:      publisher,
	}
}

func (s *generatorService) Generate(ctx context.Context, userID string, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	req.JobDescription = strings.TrimSpace(req.JobDescription)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	hints := cleanHints(req.SkillHints)

	var resumeText string
	if req.ResumeID != nil {
		text, err := s.textService.ResolveText(ctx, userID, *req.ResumeID)
		if err != nil {
			return nil, err
		}
		resumeText = text
	}

	jobDescription := truncateRunes(req.JobDescription, MaxJobDescriptionChars)
	resumeText = truncateRunes(resumeText, MaxResumeChars)

	resp, err := s.client.Generate(ctx, llm.Request{
		Name:        fnSubmitAssessment,
		System:      generationSystemPrompt,
		Prompt:      buildGenerationPrompt(jobDescription, resumeText, hints),
		Schema:      assessmentShape,
		Temperature: 0.7,
	})
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Generate: model call failed")
		return nil, &ModelCallError{Operation: "generate assessment", Cause: err}
	}
	doc, err := llm.DecodeModelResponse(resp)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("Generate: model response is not a JSON object")
		return nil, &ModelSchemaError{Shape: schema.ShapeAssessment, Cause: err}
	}
	generated, err := schema.ValidateAssessment(doc)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("Generate: model output failed validation")
		return nil, schemaError(schema.ShapeAssessment, err)
	}

	assessment := &model.Assessment{
		UserID:         userID,
		ResumeID:       req.ResumeID,
		JobDescription: jobDescription,
		SkillHints:     datatypes.JSONSlice[string](hints),
		Title:          generated.Title,
		Category:       generated.Category,
		TotalQuestions: len(generated.Questions),
		TimeLimit:      generated.TimeLimit,
		Status:         model.AssessmentStatusDraft,
	}
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Generate: failed to create assessment")
		return nil, &PersistenceError{Operation: "create assessment", Cause: err}
	}

	questions, err := questionsFromGenerated(assessment.ID, generated.Questions)
	if err != nil {
		return nil, &PersistenceError{Operation: "encode questions", Cause: err}
	}
	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		// the assessment row stays behind without questions
		log.Error().Err(err).Uint("assessmentID", assessment.ID).Msg("Generate: failed to create questions, assessment left orphaned")
		return nil, &PersistenceError{Operation: "create questions", Cause: err}
	}

	log.Info().Uint("assessmentID", assessment.ID).Int("questions", assessment.TotalQuestions).Str("userID", userID).Msg("Assessment generated")

	event := events.AssessmentGenerated(userID, assessment.ID, assessment.TotalQuestions, assessment.TimeLimit)
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Uint("assessmentID", assessment.ID).Msg("Generate: failed to publish event, continuing")
	}

	return &dto.GenerateResponse{AssessmentID: assessment.ID}, nil
}

// questionsFromGenerated assigns contiguous 0-based indices in model order.
func questionsFromGenerated(assessmentID uint, generated []schema.Question) ([]model.Question, error) {
	out := make([]model.Question, 0, len(generated))
	for i, gq := range generated {
		q := model.Question{
			AssessmentID:   assessmentID,
			QuestionIndex:  i,
			QuestionType:   gq.Type,
			QuestionText:   gq.QuestionText,
			Options:        datatypes.JSONSlice[string](gq.Options),
			CorrectAnswers: datatypes.JSONSlice[int](gq.CorrectAnswers),
			Language:       gq.Language,
			StarterCode:    gq.StarterCode,
			MaxScore:       *gq.MaxScore,
		}
		if gq.Rubric != nil {
			rubric := datatypes.NewJSONType(model.Rubric{
				Criteria:  gq.Rubric.Criteria,
				KeyPoints: gq.Rubric.KeyPoints,
			})
			q.Rubric = &rubric
		}
		if len(gq.Metadata) > 0 {
			raw, err := json.Marshal(gq.Metadata)
			if err != nil {
				return nil, err
			}
			q.Metadata = datatypes.JSON(raw)
		}
		out = append(out, q)
	}
	return out, nil
}

func cleanHints(hints []string) []string {
	var out []string
	for _, h := range hints {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
