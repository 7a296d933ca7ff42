package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/dto"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/events"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/llm"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const thirtyWordJD = "We are hiring a backend engineer to build and operate Go services on Postgres and Kafka, " +
	"design reliable APIs, mentor junior developers, review code carefully and communicate clearly with product partners daily."

// generatedAssessment mimics a model reply with n questions cycling through the three types.
func generatedAssessment(n int) map[string]any {
	var questions []map[string]any
	for i := 0; i < n; i++ {
		switch i % 3 {
		case 0:
			questions = append(questions, map[string]any{
				"type":            "multiple_choice",
				"question_text":   "Which Go keyword starts a goroutine?",
				"options":         []string{"go", "defer", "chan", "select"},
				"correct_answers": []int{0},
			})
		case 1:
			questions = append(questions, map[string]any{
				"type":          "coding",
				"question_text": "Implement a bounded worker pool.",
				"language":      "go",
				"rubric": map[string]any{
					"criteria":   []string{"correctness", "no goroutine leaks"},
					"key_points": []string{"uses a semaphore or buffered channel"},
				},
			})
		default:
			questions = append(questions, map[string]any{
				"type":          "scenario",
				"question_text": "A release slips a week. How do you tell stakeholders?",
				"rubric": map[string]any{
					"criteria":   []string{"clarity"},
					"key_points": []string{"gives a new date"},
				},
			})
		}
	}
	return map[string]any{
		"title":      "Backend Engineer Screen",
		"category":   "engineering",
		"time_limit": 2700,
		"questions":  questions,
	}
}

type generatorFixture struct {
	store     *store
	client    *llm.MockClient
	publisher *events.MockPublisher
	resumes   *MockResumeRepository
	extractor *MockExtractor
	svc       GeneratorService
}

func newGeneratorFixture(client *llm.MockClient) *generatorFixture {
	f := &generatorFixture{
		store:     newStore(),
		client:    client,
		publisher: &events.MockPublisher{},
		resumes:   &MockResumeRepository{},
		extractor: &MockExtractor{},
	}
	f.svc = NewGeneratorService(
		&fakeAssessmentRepo{s: f.store},
		&fakeQuestionRepo{s: f.store},
		NewTextService(f.resumes, f.extractor),
		client,
		f.publisher,
	)
	return f
}

func assessmentReply(n int) *llm.MockClient {
	return replies(map[string]func(llm.Request) (*llm.Response, error){
		fnSubmitAssessment: func(llm.Request) (*llm.Response, error) {
			return objectReply(generatedAssessment(n)), nil
		},
	})
}

func TestGenerate_PersistsContiguousQuestions(t *testing.T) {
	f := newGeneratorFixture(assessmentReply(10))

	resp, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{JobDescription: thirtyWordJD})
	require.NoError(t, err)

	a, err := (&fakeAssessmentRepo{s: f.store}).FindByIDWithQuestions(t.Context(), resp.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", a.UserID)
	assert.Equal(t, model.AssessmentStatusDraft, a.Status)
	assert.Equal(t, len(a.Questions), a.TotalQuestions)
	assert.GreaterOrEqual(t, a.TotalQuestions, 5)
	assert.GreaterOrEqual(t, a.TimeLimit, 300)
	assert.LessOrEqual(t, a.TimeLimit, 7200)
	for i, q := range a.Questions {
		assert.Equal(t, i, q.QuestionIndex)
		assert.Greater(t, q.MaxScore, 0.0)
	}
	assert.Equal(t, 10.0, a.Questions[1].MaxScore)
	assert.Equal(t, []string{"uses a semaphore or buffered channel"}, a.Questions[1].RubricData().KeyPoints)

	assert.Equal(t, 1, f.client.CallCount(fnSubmitAssessment))
	assert.Len(t, f.publisher.Published(events.EventAssessmentGenerated), 1)
}

func TestGenerate_RejectsShortJobDescriptionBeforeModelCall(t *testing.T) {
	f := newGeneratorFixture(assessmentReply(10))

	jd := strings.Repeat("x", 19)
	_, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{JobDescription: jd})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "job_description", ve.Violations[0].Field)
	assert.Equal(t, 0, f.client.CallCount(""))
	assert.Empty(t, f.store.assessments)
}

func TestGenerate_RejectsFourQuestionsWithNothingPersisted(t *testing.T) {
	f := newGeneratorFixture(assessmentReply(4))

	_, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{JobDescription: thirtyWordJD})
	require.Error(t, err)

	var se *ModelSchemaError
	require.ErrorAs(t, err, &se)
	assert.NotEmpty(t, se.Violations)
	assert.Empty(t, f.store.assessments)
	assert.Empty(t, f.store.questions)
	assert.Empty(t, f.publisher.Events)
}

func TestGenerate_TextResponseInCodeFence(t *testing.T) {
	client := replies(map[string]func(llm.Request) (*llm.Response, error){
		fnSubmitAssessment: func(llm.Request) (*llm.Response, error) {
			return &llm.Response{Text: "```json\n" + `{"title": "T", "time_limit": 600, "questions": [
				{"type": "scenario", "question_text": "a"},
				{"type": "scenario", "question_text": "b"},
				{"type": "scenario", "question_text": "c"},
				{"type": "scenario", "question_text": "d"},
				{"type": "scenario", "question_text": "e"}]}` + "\n```"}, nil
		},
	})
	f := newGeneratorFixture(client)

	resp, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{JobDescription: thirtyWordJD})
	require.NoError(t, err)
	assert.NotZero(t, resp.AssessmentID)
}

func TestGenerate_UnparsableResponse(t *testing.T) {
	client := replies(map[string]func(llm.Request) (*llm.Response, error){
		fnSubmitAssessment: func(llm.Request) (*llm.Response, error) {
			return &llm.Response{Text: "I cannot help with that."}, nil
		},
	})
	f := newGeneratorFixture(client)

	_, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{JobDescription: thirtyWordJD})
	var se *ModelSchemaError
	require.ErrorAs(t, err, &se)
	assert.Empty(t, f.store.assessments)
}

func TestGenerate_ModelCallFails(t *testing.T) {
	f := newGeneratorFixture(&llm.MockClient{})

	_, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{JobDescription: thirtyWordJD})
	var ce *ModelCallError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
	assert.Empty(t, f.store.assessments)
}

func TestGenerate_QuestionInsertFailureLeavesOrphan(t *testing.T) {
	f := newGeneratorFixture(assessmentReply(5))
	f.store.failQuestionInsert = true

	_, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{JobDescription: thirtyWordJD})
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Len(t, f.store.assessments, 1)
	assert.Empty(t, f.store.questions)
	assert.Empty(t, f.publisher.Events)
}

func TestGenerate_UsesResumeTextAndSkillHints(t *testing.T) {
	f := newGeneratorFixture(assessmentReply(6))
	content := strings.Repeat("Seven years of Go, Kubernetes and Postgres. ", 3)
	f.resumes.On("FindByID", mock.Anything, uint(7)).Return(&model.Resume{ID: 7, UserID: "user-1", Content: &content}, nil)

	_, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{
		JobDescription: thirtyWordJD,
		ResumeID:       uintPtr(7),
		SkillHints:     []string{"go", " kafka "},
	})
	require.NoError(t, err)

	reqs := f.client.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Prompt, "Seven years of Go")
	assert.Contains(t, reqs[0].Prompt, "go, kafka")
	assert.NotContains(t, reqs[0].Prompt, defaultTopicInstruction)
	f.extractor.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything)
}

func TestGenerate_ResumeOfAnotherUser(t *testing.T) {
	f := newGeneratorFixture(assessmentReply(6))
	f.resumes.On("FindByID", mock.Anything, uint(7)).Return(&model.Resume{ID: 7, UserID: "someone-else"}, nil)

	_, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{JobDescription: thirtyWordJD, ResumeID: uintPtr(7)})
	require.Error(t, err)
	assert.True(t, IsNotFoundLike(err))
	assert.Equal(t, 0, f.client.CallCount(""))
}

func TestGenerate_PublishFailureDoesNotFail(t *testing.T) {
	f := newGeneratorFixture(assessmentReply(5))
	f.publisher.Err = errors.New("broker down")

	resp, err := f.svc.Generate(t.Context(), "user-1", dto.GenerateRequest{JobDescription: thirtyWordJD})
	require.NoError(t, err)
	assert.NotZero(t, resp.AssessmentID)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
}
