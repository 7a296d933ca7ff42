package repository

import (
	"context"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	// ReplaceForAttempt deletes every answer of the attempt and inserts the given set.
	ReplaceForAttempt(ctx context.Context, attemptID uint, answers []model.Answer) error
	FindByAttemptID(ctx context.Context, attemptID uint) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) ReplaceForAttempt(ctx context.Context, attemptID uint, answers []model.Answer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attempt_id = ?", attemptID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].ID = 0
			answers[i].AttemptID = attemptID
		}
		return tx.Omit("Question").Create(&answers).Error
	})
}

func (r *answerRepository) FindByAttemptID(ctx context.Context, attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	if err := r.db.WithContext(ctx).Where("attempt_id = ?", attemptID).Order("id ASC").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}
