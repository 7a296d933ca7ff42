package repository

import (
	"context"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(ctx context.Context, attempt *model.Attempt) error
	FindByID(ctx context.Context, id uint) (*model.Attempt, error)
	FindByIDWithAnswers(ctx context.Context, id uint) (*model.Attempt, error)
	// Save inserts or fully overwrites the attempt row.
	Save(ctx context.Context, attempt *model.Attempt) error
	UpdateReport(ctx context.Context, id uint, report datatypes.JSON) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	return r.db.WithContext(ctx).Omit("Answers", "Assessment").Create(attempt).Error
}

func (r *attemptRepository) FindByID(ctx context.Context, id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithAnswers(ctx context.Context, id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.WithContext(ctx).
		Preload("Assessment").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id ASC")
		}).
		Preload("Answers.Question").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) Save(ctx context.Context, attempt *model.Attempt) error {
	return r.db.WithContext(ctx).Omit("Answers", "Assessment").Save(attempt).Error
}

func (r *attemptRepository) UpdateReport(ctx context.Context, id uint, report datatypes.JSON) error {
	return r.db.WithContext(ctx).Model(&model.Attempt{}).Where("id = ?", id).Update("report", report).Error
}
