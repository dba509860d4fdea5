package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/models"
	"github.com/veritest/assess-api/internal/observability"
	"github.com/veritest/assess-api/internal/repository"
)

// EvaluateIntegrity derives the integrity verdict from accumulated proctoring
// data. A declined consent always wins over threshold breaches. The verdict is
// advisory; it never blocks submission.
func EvaluateIntegrity(data models.ProctoringData) models.IntegrityVerdict {
	if !data.ConsentProvided {
		return models.IntegrityPermissionDeclined
	}
	if !data.FullScreenAccess ||
		data.VisibilityChanges >= models.ProctoringViolationThreshold ||
		data.FullScreenExits >= models.ProctoringViolationThreshold {
		return models.IntegrityBad
	}
	return models.IntegrityGood
}

// ProctoringService merges violation counters reported by the candidate's
// client into the attempt and recomputes the integrity verdict.
type ProctoringService interface {
	Update(ctx context.Context, attemptID, candidateID uint, payload dto.ProctoringUpdateRequest) (dto.ProctoringResponse, error)
}

type proctoringService struct {
	attempts  repository.AttemptRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewProctoringService constructs a ProctoringService instance.
func NewProctoringService(attempts repository.AttemptRepository, validate *validator.Validate, logger zerolog.Logger) ProctoringService {
	return &proctoringService{
		attempts:  attempts,
		validator: validate,
		logger:    logger.With().Str("component", "proctoring_service").Logger(),
		now:       time.Now,
	}
}

func (s *proctoringService) Update(ctx context.Context, attemptID, candidateID uint, payload dto.ProctoringUpdateRequest) (dto.ProctoringResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProctoringResponse{}, err
	}

	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProctoringResponse{}, ErrAttemptNotFound
		}
		return dto.ProctoringResponse{}, fmt.Errorf("update proctoring: load attempt: %w", err)
	}
	if attempt.CandidateID != candidateID {
		return dto.ProctoringResponse{}, ErrAttemptNotFound
	}
	if attempt.IsTerminal() {
		return dto.ProctoringResponse{}, ErrAttemptCompleted
	}

	merged := mergeProctoring(attempt.Proctoring.Data(), payload)
	verdict := EvaluateIntegrity(merged)

	// Column-scoped write; a completion racing past the terminal check above
	// must keep its status and end time.
	if err := s.attempts.UpdateProctoring(ctx, attempt.ID, merged, verdict); err != nil {
		if errors.Is(err, repository.ErrAttemptSealed) {
			return dto.ProctoringResponse{}, ErrAttemptCompleted
		}
		return dto.ProctoringResponse{}, fmt.Errorf("update proctoring: persist attempt: %w", err)
	}

	observability.IntegrityVerdicts().WithLabelValues(string(verdict)).Inc()
	if verdict != models.IntegrityGood {
		s.logger.Warn().
			Uint("attempt_id", attempt.ID).
			Str("integrity", string(verdict)).
			Int("visibility_changes", merged.VisibilityChanges).
			Int("full_screen_exits", merged.FullScreenExits).
			Msg("proctoring verdict flagged")
	}

	return dto.ProctoringResponse{
		AttemptID:  attempt.ID,
		Integrity:  verdict,
		Proctoring: merged,
	}, nil
}

// mergeProctoring folds a client report into the stored counters. Counters
// never decrease, and a consent or fullscreen refusal is sticky.
func mergeProctoring(current models.ProctoringData, payload dto.ProctoringUpdateRequest) models.ProctoringData {
	merged := current
	if payload.VisibilityChanges > merged.VisibilityChanges {
		merged.VisibilityChanges = payload.VisibilityChanges
	}
	if payload.FullScreenExits > merged.FullScreenExits {
		merged.FullScreenExits = payload.FullScreenExits
	}
	if payload.ConsentProvided != nil {
		merged.ConsentProvided = merged.ConsentProvided && *payload.ConsentProvided
	}
	if payload.FullScreenAccess != nil {
		merged.FullScreenAccess = merged.FullScreenAccess && *payload.FullScreenAccess
	}
	return merged
}
