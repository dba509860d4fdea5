package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/veritest/assess-api/internal/models"
)

// AttemptDetailRepository defines data operations for per-question attempt records.
type AttemptDetailRepository interface {
	GetByID(ctx context.Context, id uint) (models.AttemptDetail, error)
	ListByAttempt(ctx context.Context, attemptID uint) ([]models.AttemptDetail, error)
	Update(ctx context.Context, detail *models.AttemptDetail) error
}

type attemptDetailRepository struct {
	db *gorm.DB
}

// NewAttemptDetailRepository instantiates the repository.
func NewAttemptDetailRepository(db *gorm.DB) AttemptDetailRepository {
	return &attemptDetailRepository{db: db}
}

func (r *attemptDetailRepository) GetByID(ctx context.Context, id uint) (models.AttemptDetail, error) {
	var detail models.AttemptDetail
	if err := r.db.WithContext(ctx).
		Preload("Question").
		Preload("Attempt").
		Preload("Attempt.Assessment").
		First(&detail, id).Error; err != nil {
		return models.AttemptDetail{}, err
	}

	return detail, nil
}

func (r *attemptDetailRepository) ListByAttempt(ctx context.Context, attemptID uint) ([]models.AttemptDetail, error) {
	var details []models.AttemptDetail
	if err := r.db.WithContext(ctx).
		Preload("Question").
		Where("attempt_id = ?", attemptID).
		Order("order_index ASC").
		Find(&details).Error; err != nil {
		return nil, err
	}

	return details, nil
}

func (r *attemptDetailRepository) Update(ctx context.Context, detail *models.AttemptDetail) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(detail).Error
}
