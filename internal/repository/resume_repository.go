package repository

import (
	"context"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"gorm.io/gorm"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *model.Resume) error
	FindByID(ctx context.Context, id uint) (*model.Resume, error)
	UpdateContent(ctx context.Context, id uint, content string) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(ctx context.Context, resume *model.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *resumeRepository) FindByID(ctx context.Context, id uint) (*model.Resume, error) {
	var resume model.Resume
	if err := r.db.WithContext(ctx).First(&resume, id).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&model.Resume{}).Where("id = ?", id).Update("content", content).Error
}
