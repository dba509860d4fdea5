package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/models"
)

// CandidateRepository defines read access to candidate records.
type CandidateRepository interface {
	GetByID(ctx context.Context, id uint) (models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository instantiates the repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByID(ctx context.Context, id uint) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, id).Error; err != nil {
		return models.Candidate{}, err
	}

	return candidate, nil
}
