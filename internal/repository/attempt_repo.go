package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/veritest/assess-api/internal/models"
)

// ErrActiveAttemptExists is returned when creating an attempt while another
// non-terminal attempt exists for the same candidate and assessment.
var ErrActiveAttemptExists = errors.New("active attempt already exists")

// ErrAttemptSealed is returned when finalizing an attempt that is already completed.
var ErrAttemptSealed = errors.New("attempt already completed")

var activeStatuses = []models.AttemptStatus{models.AttemptStatusDraft, models.AttemptStatusInProgress}

// AttemptRepository defines data operations for assessment attempts. Multi-row
// mutations run inside a single transaction; a failure rolls back every write.
type AttemptRepository interface {
	GetByID(ctx context.Context, id uint) (models.AssessmentAttempt, error)
	FindActive(ctx context.Context, assessmentID, candidateID uint, since time.Time) (models.AssessmentAttempt, error)
	FindActiveByCandidate(ctx context.Context, candidateID uint) (models.AssessmentAttempt, error)
	CreateWithDetails(ctx context.Context, attempt *models.AssessmentAttempt, details []models.AttemptDetail, activeSince time.Time) error
	UpdateProctoring(ctx context.Context, attemptID uint, data models.ProctoringData, verdict models.IntegrityVerdict) error
	Finalize(ctx context.Context, attemptID uint, endTime time.Time, seal SealFunc) (models.Submission, error)
}

// SealFunc aggregates a finalized attempt and its details into a submission.
// It runs inside the finalization transaction and must be side-effect free.
type SealFunc func(attempt models.AssessmentAttempt, details []models.AttemptDetail) (models.Submission, error)

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates the repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) GetByID(ctx context.Context, id uint) (models.AssessmentAttempt, error) {
	var attempt models.AssessmentAttempt
	if err := r.db.WithContext(ctx).
		Preload("Assessment").
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Details.Question").
		First(&attempt, id).Error; err != nil {
		return models.AssessmentAttempt{}, err
	}

	return attempt, nil
}

func activeScope(db *gorm.DB, candidateID uint) *gorm.DB {
	return db.Where("candidate_id = ?", candidateID).
		Where("end_time IS NULL").
		Where("status IN ?", activeStatuses)
}

func (r *attemptRepository) FindActive(ctx context.Context, assessmentID, candidateID uint, since time.Time) (models.AssessmentAttempt, error) {
	var attempt models.AssessmentAttempt
	query := activeScope(r.db.WithContext(ctx), candidateID).
		Where("assessment_id = ?", assessmentID).
		Where("start_time >= ?", since)
	if err := query.First(&attempt).Error; err != nil {
		return models.AssessmentAttempt{}, err
	}

	return attempt, nil
}

func (r *attemptRepository) FindActiveByCandidate(ctx context.Context, candidateID uint) (models.AssessmentAttempt, error) {
	var attempt models.AssessmentAttempt
	if err := activeScope(r.db.WithContext(ctx), candidateID).
		Preload("Assessment").
		First(&attempt).Error; err != nil {
		return models.AssessmentAttempt{}, err
	}

	return attempt, nil
}

// CreateWithDetails atomically creates the attempt row plus one detail per
// sampled question. The duplicate-active check re-runs inside the transaction,
// and a partial unique index on (candidate_id, assessment_id) for open rows
// stops the race two concurrent start calls can still win at read committed.
func (r *attemptRepository) CreateWithDetails(ctx context.Context, attempt *models.AssessmentAttempt, details []models.AttemptDetail, activeSince time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := activeScope(tx.Model(&models.AssessmentAttempt{}), attempt.CandidateID).
			Where("assessment_id = ?", attempt.AssessmentID).
			Where("start_time >= ?", activeSince).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrActiveAttemptExists
		}

		if err := tx.Omit(clause.Associations).Create(attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrActiveAttemptExists
			}
			return err
		}

		for i := range details {
			details[i].AttemptID = attempt.ID
		}
		if len(details) > 0 {
			if err := tx.Omit(clause.Associations).Create(&details).Error; err != nil {
				return err
			}
		}

		attempt.Details = details
		return nil
	})
}

// UpdateProctoring persists the merged counters and verdict without touching
// lifecycle columns, and only while the attempt is still open. A full-row save
// here could resurrect an attempt sealed by a racing completion.
func (r *attemptRepository) UpdateProctoring(ctx context.Context, attemptID uint, data models.ProctoringData, verdict models.IntegrityVerdict) error {
	result := r.db.WithContext(ctx).Model(&models.AssessmentAttempt{}).
		Where("id = ?", attemptID).
		Where("status <> ?", models.AttemptStatusCompleted).
		Updates(map[string]interface{}{
			"proctoring": datatypes.NewJSONType(data),
			"integrity":  verdict,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttemptSealed
	}

	return nil
}

// Finalize seals an attempt: it re-reads the row inside the transaction,
// rejects attempts that are already terminal, flips the status, reads every
// detail, and writes the submission produced by seal. All-or-nothing.
func (r *attemptRepository) Finalize(ctx context.Context, attemptID uint, endTime time.Time, seal SealFunc) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attempt models.AssessmentAttempt
		if err := tx.First(&attempt, attemptID).Error; err != nil {
			return err
		}
		if attempt.IsTerminal() {
			return ErrAttemptSealed
		}

		attempt.Status = models.AttemptStatusCompleted
		attempt.EndTime = &endTime
		if err := tx.Omit(clause.Associations).Save(&attempt).Error; err != nil {
			return err
		}

		var details []models.AttemptDetail
		if err := tx.Where("attempt_id = ?", attemptID).Order("order_index ASC").Find(&details).Error; err != nil {
			return err
		}

		sealed, err := seal(attempt, details)
		if err != nil {
			return err
		}
		if err := tx.Create(&sealed).Error; err != nil {
			// The loser of a completion race trips the submissions.attempt_id
			// unique index; surface it the same way as the status re-check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAttemptSealed
			}
			return err
		}

		submission = sealed
		return nil
	})
	if err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}
