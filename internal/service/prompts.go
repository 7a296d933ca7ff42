package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/llm"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
)

// Function names used for structured output.
const (
	fnSubmitAssessment = "submit_assessment"
	fnSubmitScore      = "submit_score"
	fnSubmitMCQCheck   = "submit_mcq_check"
	fnSubmitReport     = "submit_report"
)

const generationSystemPrompt = `You are an expert technical interviewer who designs skills assessments for job candidates.
Produce one assessment as a single JSON object with "title", "category", "time_limit" (seconds, between 300 and 7200) and "questions" (at least 5).
Every question has "type", "question_text" and an optional "max_score".
- multiple_choice: "options" with 3 to 6 strings and "correct_answers" with at least one zero-based index into options.
- coding: "language", optional "starter_code", optional "rubric" with "criteria" and "key_points" lists.
- scenario: a soft-skill situation with an optional "rubric" with "criteria" and "key_points" lists.
Do not add any other fields.`

const defaultTopicInstruction = "Balance the assessment across five technical topics and five soft-skill topics drawn from the job description."

func buildGenerationPrompt(jobDescription, resumeText string, skillHints []string) string {
	var b strings.Builder
	b.WriteString("Create a skills assessment for the following role.\n\n")
	b.WriteString("Job Description:\n---\n")
	b.WriteString(jobDescription)
	b.WriteString("\n---\n\n")
	if resumeText != "" {
		b.WriteString("Candidate Resume (tailor difficulty and topics to this background):\n---\n")
		b.WriteString(resumeText)
		b.WriteString("\n---\n\n")
	}
	if len(skillHints) > 0 {
		b.WriteString("Focus the questions on these skills: ")
		b.WriteString(strings.Join(skillHints, ", "))
		b.WriteString(".\n")
	} else {
		b.WriteString(defaultTopicInstruction)
		b.WriteString("\n")
	}
	return b.String()
}

func buildMCQCheckPrompt(q *model.Question, selected []int) string {
	var b strings.Builder
	b.WriteString("You are double-checking the grading of a multiple-choice question.\n")
	b.WriteString("Treat the stored answer key as authoritative unless it is clearly wrong.\n\n")
	b.WriteString("Question:\n")
	b.WriteString(q.QuestionText)
	b.WriteString("\n\nOptions:\n")
	for i, opt := range q.Options {
		b.WriteString(fmt.Sprintf("%d. %s\n", i, opt))
	}
	b.WriteString(fmt.Sprintf("\nStored correct option indices: %v\n", []int(q.CorrectAnswers)))
	b.WriteString(fmt.Sprintf("Candidate selected indices: %v\n\n", selected))
	b.WriteString(`Respond with {"is_correct": boolean, "reasoning": string}.`)
	return b.String()
}

// buildRubricPrompt states maxScore, the effective maximum the score is clamped to.
func buildRubricPrompt(q *model.Question, maxScore float64, response string) string {
	rubric := q.RubricData()

	var b strings.Builder
	b.WriteString("You are an expert evaluator scoring a candidate's answer against a rubric.\n\n")
	b.WriteString(fmt.Sprintf("Question type: %s\n", q.QuestionType))
	if q.QuestionType == model.QuestionTypeCoding && q.Language != nil {
		b.WriteString(fmt.Sprintf("Language: %s\n", *q.Language))
	}
	b.WriteString("Question:\n---\n")
	b.WriteString(q.QuestionText)
	b.WriteString("\n---\n\n")
	b.WriteString("Rubric criteria:\n")
	writeList(&b, rubric.Criteria)
	b.WriteString("Key points:\n")
	writeList(&b, rubric.KeyPoints)
	b.WriteString(fmt.Sprintf("\nMaximum score: %.1f\n\n", maxScore))
	b.WriteString("Candidate response:\n---\n")
	b.WriteString(response)
	b.WriteString("\n---\n\n")
	b.WriteString(fmt.Sprintf(`Respond with {"score": number between 0 and %.1f, "feedback": string}. An empty response scores 0.`, maxScore))
	return b.String()
}

func buildReportPrompt(reportCtx ReportContext) (string, error) {
	raw, err := json.MarshalIndent(reportCtx, "", "  ")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("You are a hiring assessor writing a results report for a candidate.\n")
	b.WriteString("Use the graded results below. Be specific and constructive.\n\n")
	b.WriteString("Results:\n")
	b.Write(raw)
	b.WriteString("\n\nReturn a summary, technical and soft section strengths and improvements (omit a section that has no questions), recommendations, and a short comment per question keyed by question_index.")
	return b.String(), nil
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- (none provided)\n")
		return
	}
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteString("\n")
	}
}

var rubricShape = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"criteria":   {Type: "array", Items: &llm.Schema{Type: "string"}},
		"key_points": {Type: "array", Items: &llm.Schema{Type: "string"}},
	},
}

var assessmentShape = &llm.Schema{
	Type:     "object",
	Required: []string{"title", "time_limit", "questions"},
	Properties: map[string]*llm.Schema{
		"title":      {Type: "string"},
		"category":   {Type: "string"},
		"time_limit": {Type: "integer", Description: "Seconds, between 300 and 7200."},
		"questions": {
			Type: "array",
			Items: &llm.Schema{
				Type:     "object",
				Required: []string{"type", "question_text"},
				Properties: map[string]*llm.Schema{
					"type":            {Type: "string", Enum: []string{model.QuestionTypeMultipleChoice, model.QuestionTypeCoding, model.QuestionTypeScenario}},
					"question_text":   {Type: "string"},
					"options":         {Type: "array", Items: &llm.Schema{Type: "string"}},
					"correct_answers": {Type: "array", Items: &llm.Schema{Type: "integer"}},
					"language":        {Type: "string"},
					"starter_code":    {Type: "string"},
					"rubric":          rubricShape,
					"max_score":       {Type: "number"},
				},
			},
		},
	},
}

var scoreShape = &llm.Schema{
	Type:     "object",
	Required: []string{"score", "feedback"},
	Properties: map[string]*llm.Schema{
		"score":    {Type: "number"},
		"feedback": {Type: "string"},
	},
}

var mcqCheckShape = &llm.Schema{
	Type:     "object",
	Required: []string{"is_correct"},
	Properties: map[string]*llm.Schema{
		"is_correct": {Type: "boolean"},
		"reasoning":  {Type: "string"},
	},
}

var reportSectionShape = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"strengths":    {Type: "array", Items: &llm.Schema{Type: "string"}},
		"improvements": {Type: "array", Items: &llm.Schema{Type: "string"}},
	},
}

var reportShape = &llm.Schema{
	Type:     "object",
	Required: []string{"summary"},
	Properties: map[string]*llm.Schema{
		"summary": {Type: "string"},
		"sections": {
			Type: "object",
			Properties: map[string]*llm.Schema{
				"technical": reportSectionShape,
				"soft":      reportSectionShape,
			},
		},
		"recommendations": {Type: "array", Items: &llm.Schema{Type: "string"}},
		"question_comments": {
			Type: "array",
			Items: &llm.Schema{
				Type:     "object",
				Required: []string{"question_index", "comment"},
				Properties: map[string]*llm.Schema{
					"question_index": {Type: "integer"},
					"comment":        {Type: "string"},
				},
			},
		},
	},
}
