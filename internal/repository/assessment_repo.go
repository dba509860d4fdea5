package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/models"
)

// AssessmentRepository defines read access to assessment definitions.
// Assessments are created by an administrative process outside this service.
type AssessmentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Assessment, error)
	ListOpen(ctx context.Context, reference time.Time) ([]models.Assessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository instantiates the repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) GetByID(ctx context.Context, id uint) (models.Assessment, error) {
	var assessment models.Assessment
	if err := r.db.WithContext(ctx).First(&assessment, id).Error; err != nil {
		return models.Assessment{}, err
	}

	return assessment, nil
}

func (r *assessmentRepository) ListOpen(ctx context.Context, reference time.Time) ([]models.Assessment, error) {
	var assessments []models.Assessment
	if err := r.db.WithContext(ctx).
		Where("end_date >= ?", reference).
		Order("start_date ASC").
		Find(&assessments).Error; err != nil {
		return nil, err
	}

	return assessments, nil
}
