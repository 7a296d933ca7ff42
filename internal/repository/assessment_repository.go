package repository

import (
	"context"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	FindByID(ctx context.Context, id uint) (*model.Assessment, error)
	FindByIDWithQuestions(ctx context.Context, id uint) (*model.Assessment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// Create inserts the assessment row only; questions are written separately.
func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return r.db.WithContext(ctx).Omit("Questions").Create(assessment).Error
}

func (r *assessmentRepository) FindByID(ctx context.Context, id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.WithContext(ctx).First(&assessment, id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.WithContext(ctx).Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.question_index ASC")
	}).First(&assessment, id).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.Assessment{}).Where("id = ?", id).Update("status", status).Error
}
