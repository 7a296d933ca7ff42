package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/llm"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// store is an in-memory document store shared by the fake repositories.
type store struct {
	mu          sync.Mutex
	nextID      uint
	assessments map[uint]model.Assessment
	questions   map[uint]model.Question
	attempts    map[uint]model.Attempt
	answers     map[uint]model.Answer

	failQuestionInsert bool
}

func newStore() *store {
	return &store{
		assessments: map[uint]model.Assessment{},
		questions:   map[uint]model.Question{},
		attempts:    map[uint]model.Attempt{},
		answers:     map[uint]model.Answer{},
	}
}

func (s *store) id() uint {
	s.nextID++
	return s.nextID
}

type fakeAssessmentRepo struct{ s *store }

func (r *fakeAssessmentRepo) Create(_ context.Context, a *model.Assessment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.id()
	a.CreatedAt = time.Now()
	cp := *a
	cp.Questions = nil
	r.s.assessments[a.ID] = cp
	return nil
}

func (r *fakeAssessmentRepo) FindByID(_ context.Context, id uint) (*model.Assessment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assessments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeAssessmentRepo) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Assessment, error) {
	a, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Questions, _ = (&fakeQuestionRepo{s: r.s}).FindByAssessmentID(ctx, id)
	return a, nil
}

func (r *fakeAssessmentRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assessments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	r.s.assessments[id] = a
	return nil
}

type fakeQuestionRepo struct{ s *store }

func (r *fakeQuestionRepo) CreateBatch(_ context.Context, questions []model.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failQuestionInsert {
		return errors.New("insert rejected")
	}
	for i := range questions {
		questions[i].ID = r.s.id()
		r.s.questions[questions[i].ID] = questions[i]
	}
	return nil
}

func (r *fakeQuestionRepo) FindByAssessmentID(_ context.Context, assessmentID uint) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Question
	for _, q := range r.s.questions {
		if q.AssessmentID == assessmentID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionIndex < out[j].QuestionIndex })
	return out, nil
}

type fakeAttemptRepo struct{ s *store }

func (r *fakeAttemptRepo) Create(_ context.Context, a *model.Attempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.id()
	r.s.attempts[a.ID] = *a
	return nil
}

func (r *fakeAttemptRepo) FindByID(_ context.Context, id uint) (*model.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeAttemptRepo) FindByIDWithAnswers(ctx context.Context, id uint) (*model.Attempt, error) {
	a, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.Assessment = r.s.assessments[a.AssessmentID]
	for _, ans := range r.s.answers {
		if ans.AttemptID == id {
			ans.Question = r.s.questions[ans.QuestionID]
			a.Answers = append(a.Answers, ans)
		}
	}
	sort.Slice(a.Answers, func(i, j int) bool { return a.Answers[i].ID < a.Answers[j].ID })
	return a, nil
}

func (r *fakeAttemptRepo) Save(_ context.Context, a *model.Attempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == 0 {
		a.ID = r.s.id()
	}
	cp := *a
	cp.Answers = nil
	r.s.attempts[a.ID] = cp
	return nil
}

func (r *fakeAttemptRepo) UpdateReport(_ context.Context, id uint, report datatypes.JSON) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attempts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Report = report
	r.s.attempts[id] = a
	return nil
}

type fakeAnswerRepo struct{ s *store }

func (r *fakeAnswerRepo) ReplaceForAttempt(_ context.Context, attemptID uint, answers []model.Answer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.answers {
		if a.AttemptID == attemptID {
			delete(r.s.answers, id)
		}
	}
	for i := range answers {
		answers[i].ID = r.s.id()
		answers[i].AttemptID = attemptID
		r.s.answers[answers[i].ID] = answers[i]
	}
	return nil
}

func (r *fakeAnswerRepo) FindByAttemptID(_ context.Context, attemptID uint) ([]model.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Answer
	for _, a := range r.s.answers {
		if a.AttemptID == attemptID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockResumeRepository is a testify mock of ResumeRepository.
type MockResumeRepository struct {
	mock.Mock
}

func (m *MockResumeRepository) Create(ctx context.Context, resume *model.Resume) error {
	args := m.Called(ctx, resume)
	return args.Error(0)
}

func (m *MockResumeRepository) FindByID(ctx context.Context, id uint) (*model.Resume, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*model.Resume), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResumeRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

// MockExtractor is a testify mock of extract.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractText(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// objectReply returns a structured model response.
func objectReply(v any) *llm.Response {
	raw, _ := json.Marshal(v)
	var obj map[string]any
	_ = json.Unmarshal(raw, &obj)
	return &llm.Response{Object: obj}
}

// replies routes mock model calls by target shape name. A missing entry
// fails the call.
func replies(byName map[string]func(req llm.Request) (*llm.Response, error)) *llm.MockClient {
	return &llm.MockClient{
		GenerateFunc: func(_ context.Context, req llm.Request) (*llm.Response, error) {
			if fn, ok := byName[req.Name]; ok {
				return fn(req)
			}
			return nil, errors.New("model unavailable")
		},
	}
}

func strPtr(s string) *string { return &s }
func uintPtr(u uint) *uint     { return &u }

func errNotFound() error { return gorm.ErrRecordNotFound }
