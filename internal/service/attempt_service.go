package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/cache"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/dto"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/repository"
	"github.com/rs/zerolog/log"
)

const DefaultViewTTL = 10 * time.Minute

// AttemptService covers the server side of an attempt session and its read paths.
type AttemptService interface {
	StartAttempt(ctx context.Context, userID string, assessmentID uint) (*dto.StartAttemptResponse, error)
	GetAssessmentView(ctx context.Context, userID string, assessmentID uint) (*dto.AssessmentView, error)
	GetAttempt(ctx context.Context, userID string, attemptID uint) (*dto.AttemptDetail, error)
}

type attemptService struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.AttemptRepository
	cache          cache.CacheService
	viewTTL        time.Duration
	now            func() time.Time
}

func NewAttemptService(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.AttemptRepository,
	cacheService cache.CacheService,
	viewTTL time.Duration,
) AttemptService {
	if viewTTL <= 0 {
		viewTTL = DefaultViewTTL
	}
	return &attemptService{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		cache:          cacheService,
		viewTTL:        viewTTL,
		now:            time.Now,
	}
}

func (s *attemptService) StartAttempt(ctx context.Context, userID string, assessmentID uint) (*dto.StartAttemptResponse, error) {
	view, err := s.GetAssessmentView(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}

	attempt := &model.Attempt{
		AssessmentID: assessmentID,
		UserID:       userID,
		StartedAt:    s.now(),
		Status:       model.AttemptStatusInProgress,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("StartAttempt: failed to create attempt")
		return nil, &PersistenceError{Operation: "create attempt", Cause: err}
	}

	if view.Status == model.AssessmentStatusDraft {
		if err := s.assessmentRepo.UpdateStatus(ctx, assessmentID, model.AssessmentStatusInProgress); err != nil {
			log.Warn().Err(err).Uint("assessmentID", assessmentID).Msg("StartAttempt: failed to move assessment to in_progress")
		} else {
			view.Status = model.AssessmentStatusInProgress
			if err := s.cache.Delete(ctx, cache.AssessmentKey(assessmentID)); err != nil {
				log.Warn().Err(err).Uint("assessmentID", assessmentID).Msg("StartAttempt: failed to invalidate cached view")
			}
		}
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("assessmentID", assessmentID).Str("userID", userID).Msg("Attempt started")
	return &dto.StartAttemptResponse{
		AttemptID:  attempt.ID,
		StartedAt:  attempt.StartedAt,
		Assessment: *view,
	}, nil
}

// cachedView carries the owner so a cache hit can still be authorized.
type cachedView struct {
	UserID string             `json:"user_id"`
	View   dto.AssessmentView `json:"view"`
}

func (s *attemptService) GetAssessmentView(ctx context.Context, userID string, assessmentID uint) (*dto.AssessmentView, error) {
	key := cache.AssessmentKey(assessmentID)

	var cached cachedView
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("GetAssessmentView: cache read failed, loading from store")
	}
	if hit {
		if cached.UserID != userID {
			return nil, &AuthorizationError{Resource: "assessment", ID: assessmentID, UserID: userID}
		}
		return &cached.View, nil
	}

	assessment, err := s.assessmentRepo.FindByIDWithQuestions(ctx, assessmentID)
	if err != nil {
		return nil, lookupError("assessment", assessmentID, err)
	}
	if assessment.UserID != userID {
		return nil, &AuthorizationError{Resource: "assessment", ID: assessmentID, UserID: userID}
	}

	view := toAssessmentView(assessment)
	if err := s.cache.Set(ctx, key, cachedView{UserID: userID, View: *view}, s.viewTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("GetAssessmentView: cache write failed")
	}
	return view, nil
}

func (s *attemptService) GetAttempt(ctx context.Context, userID string, attemptID uint) (*dto.AttemptDetail, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(ctx, attemptID)
	if err != nil {
		return nil, lookupError("attempt", attemptID, err)
	}
	if attempt.UserID != userID {
		return nil, &AuthorizationError{Resource: "attempt", ID: attemptID, UserID: userID}
	}

	var resp dto.AttemptDetail
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetAttempt: failed to map attempt")
		return nil, err
	}
	resp.AssessmentTitle = attempt.Assessment.Title
	resp.Report = rawOrNil(attempt.Report)
	resp.Answers = make([]dto.AnswerDetail, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		resp.Answers = append(resp.Answers, dto.AnswerDetail{
			QuestionID:    a.QuestionID,
			QuestionIndex: a.Question.QuestionIndex,
			QuestionType:  a.Question.QuestionType,
			Answer:        rawOrNil(a.Answer),
			IsCorrect:     a.IsCorrect,
			Score:         a.Score,
			MaxScore:      effectiveMaxScore(&a.Question),
			AIFeedback:    rawOrNil(a.AIFeedback),
		})
	}
	sort.SliceStable(resp.Answers, func(i, j int) bool {
		return resp.Answers[i].QuestionIndex < resp.Answers[j].QuestionIndex
	})
	return &resp, nil
}

// toAssessmentView strips answer keys and rubrics.
func toAssessmentView(a *model.Assessment) *dto.AssessmentView {
	view := &dto.AssessmentView{
		ID:             a.ID,
		Title:          a.Title,
		Category:       a.Category,
		TotalQuestions: a.TotalQuestions,
		TimeLimit:      a.TimeLimit,
		Status:         a.Status,
		CreatedAt:      a.CreatedAt,
		Questions:      make([]dto.QuestionView, 0, len(a.Questions)),
	}
	for _, q := range a.Questions {
		view.Questions = append(view.Questions, dto.QuestionView{
			ID:            q.ID,
			QuestionIndex: q.QuestionIndex,
			QuestionType:  q.QuestionType,
			QuestionText:  q.QuestionText,
			Options:       []string(q.Options),
			Language:      q.Language,
			StarterCode:   q.StarterCode,
			MaxScore:      q.MaxScore,
		})
	}
	return view
}

func rawOrNil(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
