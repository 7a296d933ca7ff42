// Package session drives one candidate attempt: start, collect answers in
// memory, then submit exactly once, either explicitly or when the countdown
// runs out.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/dto"
	"github.com/rs/zerolog/log"
)

type State int

const (
	NotStarted State = iota
	InProgress
	Submitted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Submitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrNotStarted      = errors.New("session has not started")
	ErrAlreadyStarted  = errors.New("session already started")
	ErrSubmitted       = errors.New("session already submitted")
	ErrUnknownQuestion = errors.New("question is not part of this assessment")
)

type Starter interface {
	StartAttempt(ctx context.Context, userID string, assessmentID uint) (*dto.StartAttemptResponse, error)
}

type Grader interface {
	Grade(ctx context.Context, userID string, req dto.GradeRequest) (*dto.GradeResponse, error)
}

// Timer is the part of *time.Timer the session needs.
type Timer interface {
	Stop() bool
}

type Option func(*Session)

// WithClock replaces time.Now and time.AfterFunc.
func WithClock(now func() time.Time, afterFunc func(time.Duration, func()) Timer) Option {
	return func(s *Session) {
		s.now = now
		s.afterFunc = afterFunc
	}
}

type Session struct {
	userID       string
	assessmentID uint
	starter      Starter
	grader       Grader
	now          func() time.Time
	afterFunc    func(time.Duration, func()) Timer

	mu        sync.Mutex
	state     State
	attemptID uint
	deadline  time.Time
	questions map[uint]dto.QuestionView
	answers   map[uint]json.RawMessage
	timer     Timer
	baseCtx   context.Context

	done   chan struct{}
	result *dto.GradeResponse
	err    error
}

func New(userID string, assessmentID uint, starter Starter, grader Grader, opts ...Option) *Session {
	s := &Session{
		userID:       userID,
		assessmentID: assessmentID,
		starter:      starter,
		grader:       grader,
		now:          time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		answers: map[uint]json.RawMessage{},
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates the attempt server-side and arms the countdown.
func (s *Session) Start(ctx context.Context) (*dto.AssessmentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != NotStarted {
		return nil, ErrAlreadyStarted
	}

	resp, err := s.starter.StartAttempt(ctx, s.userID, s.assessmentID)
	if err != nil {
		return nil, err
	}

	s.state = InProgress
	s.attemptID = resp.AttemptID
	s.baseCtx = context.WithoutCancel(ctx)
	s.questions = make(map[uint]dto.QuestionView, len(resp.Assessment.Questions))
	for _, q := range resp.Assessment.Questions {
		s.questions[q.ID] = q
	}

	limit := time.Duration(resp.Assessment.TimeLimit) * time.Second
	s.deadline = s.now().Add(limit)
	s.timer = s.afterFunc(limit, s.autoSubmit)

	log.Info().Uint("attemptID", s.attemptID).Dur("timeLimit", limit).Msg("Session started")
	view := resp.Assessment
	return &view, nil
}

// SetAnswer records or replaces the answer to one question. The answer is
// kept in memory only.
func (s *Session) SetAnswer(questionID uint, answer any) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case NotStarted:
		return ErrNotStarted
	case Submitted:
		return ErrSubmitted
	}
	if _, ok := s.questions[questionID]; !ok {
		return ErrUnknownQuestion
	}
	s.answers[questionID] = raw
	return nil
}

// Submit grades the attempt. Only the first call reaches the grader; later
// calls wait for and return the same result.
func (s *Session) Submit(ctx context.Context) (*dto.GradeResponse, error) {
	s.mu.Lock()
	switch s.state {
	case NotStarted:
		s.mu.Unlock()
		return nil, ErrNotStarted
	case Submitted:
		s.mu.Unlock()
		select {
		case <-s.done:
			return s.result, s.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.state = Submitted
	if s.timer != nil {
		s.timer.Stop()
	}
	req := s.buildRequest()
	s.mu.Unlock()

	result, err := s.grader.Grade(ctx, s.userID, req)

	s.mu.Lock()
	s.result, s.err = result, err
	s.mu.Unlock()
	close(s.done)

	if err != nil {
		log.Error().Err(err).Uint("attemptID", s.attemptID).Msg("Session submit failed")
	} else {
		log.Info().Uint("attemptID", s.attemptID).Float64("totalScore", result.TotalScore).Msg("Session submitted")
	}
	return result, err
}

func (s *Session) autoSubmit() {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()
	log.Info().Uint("attemptID", s.attemptID).Msg("Time limit reached, submitting")
	_, _ = s.Submit(ctx)
}

// buildRequest must be called with mu held.
func (s *Session) buildRequest() dto.GradeRequest {
	remaining := int(s.deadline.Sub(s.now()).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	attemptID := s.attemptID

	ids := make([]uint, 0, len(s.answers))
	for id := range s.answers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	answers := make([]dto.SubmittedAnswer, 0, len(ids))
	for _, id := range ids {
		answers = append(answers, dto.SubmittedAnswer{
			QuestionID:   id,
			QuestionType: s.questions[id].QuestionType,
			Answer:       s.answers[id],
		})
	}
	return dto.GradeRequest{
		AssessmentID:         s.assessmentID,
		AttemptID:            &attemptID,
		TimeRemainingSeconds: &remaining,
		Answers:              answers,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) AttemptID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attemptID
}

// Remaining is the time left on the countdown.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != InProgress {
		return 0
	}
	if d := s.deadline.Sub(s.now()); d > 0 {
		return d
	}
	return 0
}

// Done is closed once the grading call has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Result returns the grading outcome after Done is closed.
func (s *Session) Result() (*dto.GradeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.err
}
