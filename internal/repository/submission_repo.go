package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/models"
)

// SubmissionRepository defines read access to sealed attempt results.
// Submissions are created inside the attempt finalization transaction and
// are never mutated afterwards.
type SubmissionRepository interface {
	GetByAttemptID(ctx context.Context, attemptID uint) (models.Submission, error)
	ListByCandidate(ctx context.Context, candidateID uint) ([]models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) GetByAttemptID(ctx context.Context, attemptID uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).Where("attempt_id = ?", attemptID).First(&submission).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) ListByCandidate(ctx context.Context, candidateID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}
