package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/cache"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/dto"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/events"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/repository"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/schema"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

const DefaultGradingConcurrency = 4

// GradingService scores a submitted answer set and persists the attempt.
type GradingService interface {
	Grade(ctx context.Context, userID string, req dto.GradeRequest) (*dto.GradeResponse, error)
}

type gradingService struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.AttemptRepository
	answerRepo     repository.AnswerRepository
	judge          AIJudgeService
	reports        ReportService
	cache          cache.CacheService
	publisher      events.Publisher
	concurrency    int
	now            func() time.Time
}

func NewGradingService(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	judge AIJudgeService,
	reports ReportService,
	cacheService cache.CacheService,
	publisher events.Publisher,
	concurrency int,
) GradingService {
	if concurrency <= 0 {
		concurrency = DefaultGradingConcurrency
	}
	return &gradingService{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		answerRepo:     answerRepo,
		judge:          judge,
		reports:        reports,
		cache:          cacheService,
		publisher:      publisher,
		concurrency:    concurrency,
		now:            time.Now,
	}
}

// decodedAnswer is the typed form of one submitted payload.
type decodedAnswer struct {
	selection []int
	text      string
}

// gradedQuestion is what one grading goroutine produces.
type gradedQuestion struct {
	answer model.Answer
	item   ScoredItem
	result QuestionResult
}

func (s *gradingService) Grade(ctx context.Context, userID string, req dto.GradeRequest) (*dto.GradeResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	assessment, err := s.assessmentRepo.FindByIDWithQuestions(ctx, req.AssessmentID)
	if err != nil {
		return nil, lookupError("assessment", req.AssessmentID, err)
	}
	if assessment.UserID != userID {
		return nil, &AuthorizationError{Resource: "assessment", ID: req.AssessmentID, UserID: userID}
	}
	if len(assessment.Questions) == 0 {
		return nil, newValidationError("assessment_id", "assessment has no questions")
	}

	decoded, err := decodeAnswers(assessment.Questions, req.Answers)
	if err != nil {
		return nil, err
	}

	attempt, err := s.loadOrNewAttempt(ctx, userID, assessment.ID, req.AttemptID)
	if err != nil {
		return nil, err
	}

	graded := s.gradeAll(ctx, assessment.Questions, decoded)

	items := make([]ScoredItem, len(graded))
	results := make([]QuestionResult, len(graded))
	answers := make([]model.Answer, len(graded))
	for i, g := range graded {
		items[i] = g.item
		results[i] = g.result
		answers[i] = g.answer
	}
	totals := Aggregate(items)

	submittedAt := s.now()
	attempt.SubmittedAt = &submittedAt
	attempt.TimeRemaining = req.TimeRemainingSeconds
	attempt.Status = model.AttemptStatusGraded
	attempt.TotalScore = totals.Overall
	attempt.TechnicalScore = totals.Technical
	attempt.SoftScore = totals.Soft
	attempt.Report = nil

	if err := s.attemptRepo.Save(ctx, attempt); err != nil {
		log.Error().Err(err).Uint("assessmentID", assessment.ID).Msg("Grade: failed to save attempt")
		return nil, &PersistenceError{Operation: "save attempt", Cause: err}
	}
	if err := s.answerRepo.ReplaceForAttempt(ctx, attempt.ID, answers); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Grade: failed to replace answers")
		return nil, &PersistenceError{Operation: "replace answers", Cause: err}
	}
	if err := s.assessmentRepo.UpdateStatus(ctx, assessment.ID, model.AssessmentStatusCompleted); err != nil {
		log.Error().Err(err).Uint("assessmentID", assessment.ID).Msg("Grade: failed to mark assessment completed")
		return nil, &PersistenceError{Operation: "update assessment status", Cause: err}
	}
	if err := s.cache.Delete(ctx, cache.AssessmentKey(assessment.ID)); err != nil {
		log.Warn().Err(err).Uint("assessmentID", assessment.ID).Msg("Grade: failed to invalidate cached assessment view")
	}

	report := s.synthesizeReport(ctx, attempt.ID, newReportContext(totals, results))

	event := events.AttemptGraded(userID, assessment.ID, attempt.ID, attempt.TotalScore, report != nil)
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Uint("attemptID", attempt.ID).Msg("Grade: failed to publish event, continuing")
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("assessmentID", assessment.ID).Float64("totalScore", attempt.TotalScore).Msg("Attempt graded")
	return &dto.GradeResponse{
		AttemptID:  attempt.ID,
		TotalScore: attempt.TotalScore,
		Report:     report,
	}, nil
}

func (s *gradingService) loadOrNewAttempt(ctx context.Context, userID string, assessmentID uint, attemptID *uint) (*model.Attempt, error) {
	if attemptID == nil {
		return &model.Attempt{
			AssessmentID: assessmentID,
			UserID:       userID,
			StartedAt:    s.now(),
			Status:       model.AttemptStatusInProgress,
		}, nil
	}

	attempt, err := s.attemptRepo.FindByID(ctx, *attemptID)
	if err != nil {
		return nil, lookupError("attempt", *attemptID, err)
	}
	if attempt.UserID != userID || attempt.AssessmentID != assessmentID {
		return nil, &AuthorizationError{Resource: "attempt", ID: *attemptID, UserID: userID}
	}
	return attempt, nil
}

// decodeAnswers maps question id to the typed answer. The stored question
// type decides the decoding.
func decodeAnswers(questions []model.Question, submitted []dto.SubmittedAnswer) (map[uint]decodedAnswer, error) {
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	out := make(map[uint]decodedAnswer, len(submitted))
	verr := &ValidationError{}
	for i, sa := range submitted {
		field := fmt.Sprintf("answers.%d", i)
		q, ok := byID[sa.QuestionID]
		if !ok {
			verr.Violations = append(verr.Violations, Violation{Field: field + ".question_id", Message: fmt.Sprintf("question %d is not part of this assessment", sa.QuestionID)})
			continue
		}
		if _, dup := out[sa.QuestionID]; dup {
			verr.Violations = append(verr.Violations, Violation{Field: field + ".question_id", Message: fmt.Sprintf("question %d was answered more than once", sa.QuestionID)})
			continue
		}
		if sa.QuestionType != "" && sa.QuestionType != q.QuestionType {
			log.Warn().Uint("questionID", q.ID).Str("submitted", sa.QuestionType).Str("stored", q.QuestionType).Msg("Grade: submitted question type differs from stored type, using stored type")
		}

		var d decodedAnswer
		var err error
		if q.QuestionType == model.QuestionTypeMultipleChoice {
			d.selection, err = normalizeSelection(sa.Answer)
		} else {
			d.text, err = normalizeText(sa.Answer)
		}
		if err != nil {
			verr.Violations = append(verr.Violations, Violation{Field: field + ".answer", Message: err.Error()})
			continue
		}
		out[sa.QuestionID] = d
	}
	if len(verr.Violations) > 0 {
		return nil, verr
	}
	return out, nil
}

// gradeAll grades every question concurrently. Each goroutine owns one slot
// of the result slice. Model calls are detached from request cancellation.
func (s *gradingService) gradeAll(ctx context.Context, questions []model.Question, answers map[uint]decodedAnswer) []gradedQuestion {
	aiCtx := context.WithoutCancel(ctx)
	out := make([]gradedQuestion, len(questions))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range questions {
		q := &questions[i]
		a := answers[q.ID]
		g.Go(func() error {
			if q.QuestionType == model.QuestionTypeMultipleChoice {
				out[i] = s.gradeMultipleChoice(aiCtx, q, a.selection)
			} else {
				out[i] = s.gradeOpenAnswer(aiCtx, q, a.text)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *gradingService) gradeMultipleChoice(ctx context.Context, q *model.Question, selected []int) gradedQuestion {
	if selected == nil {
		selected = []int{}
	}
	key := []int(q.CorrectAnswers)
	maxScore := effectiveMaxScore(q)

	byKey := keyMatch(selected, key)
	aiVote := byKey
	aiAvailable := false
	var reasoning string
	check, err := s.judge.CheckMultipleChoice(ctx, q, selected)
	if err != nil {
		log.Warn().Err(err).Uint("questionID", q.ID).Msg("Grade: multiple-choice double-check failed, using answer key")
	} else {
		aiVote = check.IsCorrect
		aiAvailable = true
		reasoning = check.Reasoning
	}
	isCorrect := byKey || aiVote
	score := round2(partialCredit(selected, key) * maxScore)

	feedback := map[string]any{
		"key_match":    byKey,
		"ai_vote":      aiVote,
		"ai_available": aiAvailable,
	}
	if reasoning != "" {
		feedback["reasoning"] = reasoning
	}

	return gradedQuestion{
		answer: model.Answer{
			QuestionID: q.ID,
			Answer:     mustJSON(selected),
			IsCorrect:  &isCorrect,
			Score:      score,
			AIFeedback: mustJSON(feedback),
		},
		item:   ScoredItem{QuestionType: q.QuestionType, Score: score, MaxScore: maxScore},
		result: QuestionResult{Index: q.QuestionIndex, Type: q.QuestionType, Score: score, MaxScore: maxScore, Feedback: reasoning},
	}
}

func (s *gradingService) gradeOpenAnswer(ctx context.Context, q *model.Question, response string) gradedQuestion {
	maxScore := effectiveMaxScore(q)

	var score float64
	var feedback string
	fallback := false
	result, err := s.judge.ScoreOpenAnswer(ctx, q, response)
	if err != nil {
		log.Warn().Err(err).Uint("questionID", q.ID).Str("type", q.QuestionType).Msg("Grade: rubric scoring failed, scoring 0")
		feedback = fallbackFeedback(q, response)
		fallback = true
	} else {
		score = clamp(result.Score, 0, maxScore)
		feedback = result.Feedback
	}

	return gradedQuestion{
		answer: model.Answer{
			QuestionID: q.ID,
			Answer:     mustJSON(response),
			Score:      score,
			AIFeedback: mustJSON(map[string]any{"feedback": feedback, "fallback": fallback}),
		},
		item:   ScoredItem{QuestionType: q.QuestionType, Score: score, MaxScore: maxScore},
		result: QuestionResult{Index: q.QuestionIndex, Type: q.QuestionType, Score: score, MaxScore: maxScore, Feedback: feedback},
	}
}

// synthesizeReport never fails grading. The report is stored in a second write.
func (s *gradingService) synthesizeReport(ctx context.Context, attemptID uint, reportCtx ReportContext) map[string]any {
	report, err := s.reports.Synthesize(context.WithoutCancel(ctx), reportCtx)
	if err != nil {
		rerr := &ReportSynthesisError{AttemptID: attemptID, Cause: err}
		log.Warn().Err(rerr).Uint("attemptID", attemptID).Msg("Grade: report synthesis failed, report left empty")
		return nil
	}
	if err := s.attemptRepo.UpdateReport(ctx, attemptID, mustJSON(report)); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Grade: failed to store report")
	}
	return report
}

func effectiveMaxScore(q *model.Question) float64 {
	if q.MaxScore > 0 {
		return q.MaxScore
	}
	return schema.DefaultMaxScore(q.QuestionType)
}

func mustJSON(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(raw)
}
