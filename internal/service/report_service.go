package service

import (
	"context"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/llm"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/schema"
)

type ScorePair struct {
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
}

type QuestionResult struct {
	Index    int     `json:"index"`
	Type     string  `json:"type"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Feedback string  `json:"feedback,omitempty"`
}

// ReportContext is everything the model sees when writing the narrative report.
type ReportContext struct {
	Overall   ScorePair        `json:"overall"`
	Technical *ScorePair       `json:"technical"`
	Soft      *ScorePair       `json:"soft"`
	Questions []QuestionResult `json:"questions"`
}

func newReportContext(totals Totals, questions []QuestionResult) ReportContext {
	rc := ReportContext{
		Overall:   ScorePair{Score: totals.Overall, Max: totals.OverallMax},
		Questions: questions,
	}
	if totals.Technical != nil {
		rc.Technical = &ScorePair{Score: *totals.Technical, Max: totals.TechnicalMax}
	}
	if totals.Soft != nil {
		rc.Soft = &ScorePair{Score: *totals.Soft, Max: totals.SoftMax}
	}
	return rc
}

type ReportService interface {
	Synthesize(ctx context.Context, reportCtx ReportContext) (map[string]any, error)
}

type reportService struct {
	client llm.Client
}

func NewReportService(client llm.Client) ReportService {
	return &reportService{client: client}
}

func (s *reportService) Synthesize(ctx context.Context, reportCtx ReportContext) (map[string]any, error) {
	prompt, err := buildReportPrompt(reportCtx)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Generate(ctx, llm.Request{
		Name:        fnSubmitReport,
		Prompt:      prompt,
		Schema:      reportShape,
		Temperature: 0.4,
	})
	if err != nil {
		return nil, &ModelCallError{Operation: "report synthesis", Cause: err}
	}
	doc, err := llm.DecodeModelResponse(resp)
	if err != nil {
		return nil, &ModelSchemaError{Shape: schema.ShapeReport, Cause: err}
	}
	report, err := schema.ValidateReport(doc)
	if err != nil {
		return nil, schemaError(schema.ShapeReport, err)
	}
	return report, nil
}
