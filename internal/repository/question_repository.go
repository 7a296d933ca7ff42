package repository

import (
	"context"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	CreateBatch(ctx context.Context, questions []model.Question) error
	FindByAssessmentID(ctx context.Context, assessmentID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepository) FindByAssessmentID(ctx context.Context, assessmentID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.WithContext(ctx).Where("assessment_id = ?", assessmentID).Order("question_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
