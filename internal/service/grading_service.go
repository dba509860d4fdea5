package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/models"
	"github.com/veritest/assess-api/internal/observability"
	"github.com/veritest/assess-api/internal/repository"
)

// ErrAttemptAlreadyCompleted indicates a second completion call on a sealed attempt.
var ErrAttemptAlreadyCompleted = errors.New("attempt has already been completed")

// ErrAttemptMismatch indicates the attempt is not owned by the calling candidate/session.
var ErrAttemptMismatch = errors.New("attempt does not belong to this candidate")

// ErrMissingCompletionInput indicates a caller bug: completion was invoked
// without one of its required identifiers.
var ErrMissingCompletionInput = errors.New("missing required completion input")

// ErrNegativeDuration indicates the completion time precedes the attempt start,
// which can only happen through a clock or ordering defect.
var ErrNegativeDuration = errors.New("attempt duration is negative")

// ErrSubmissionNotFound indicates no sealed result exists for the attempt.
var ErrSubmissionNotFound = errors.New("submission not found")

// GradingService seals a finished attempt into an immutable submission record
// and serves the sealed results back to the candidate.
type GradingService interface {
	Complete(ctx context.Context, attemptID, candidateID, sessionID uint) (dto.SubmissionResponse, error)
	Result(ctx context.Context, attemptID, candidateID uint) (dto.SubmissionResponse, error)
	Results(ctx context.Context, candidateID uint) ([]dto.SubmissionResponse, error)
}

type gradingService struct {
	attempts    repository.AttemptRepository
	submissions repository.SubmissionRepository
	tracer      trace.Tracer
	logger      zerolog.Logger
	now         func() time.Time
}

// NewGradingService constructs a GradingService instance.
func NewGradingService(attempts repository.AttemptRepository, submissions repository.SubmissionRepository, logger zerolog.Logger) GradingService {
	return &gradingService{
		attempts:    attempts,
		submissions: submissions,
		tracer:      otel.Tracer("assess-api/grading"),
		logger:      logger.With().Str("component", "grading_service").Logger(),
		now:         time.Now,
	}
}

func (s *gradingService) Complete(ctx context.Context, attemptID, candidateID, sessionID uint) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "attempt.complete", trace.WithAttributes(
		attribute.Int64("attempt.id", int64(attemptID)),
		attribute.Int64("attempt.candidate_id", int64(candidateID)),
	))
	defer span.End()

	if attemptID == 0 || candidateID == 0 || sessionID == 0 {
		err := ErrMissingCompletionInput
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing_input")
		return dto.SubmissionResponse{}, err
	}

	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "attempt_not_found")
			return dto.SubmissionResponse{}, ErrAttemptNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "attempt_lookup_failed")
		return dto.SubmissionResponse{}, fmt.Errorf("complete attempt: load attempt: %w", err)
	}
	if attempt.CandidateID != candidateID {
		span.SetStatus(codes.Error, "attempt_mismatch")
		return dto.SubmissionResponse{}, ErrAttemptMismatch
	}
	if attempt.IsTerminal() {
		span.SetStatus(codes.Error, "attempt_already_completed")
		return dto.SubmissionResponse{}, ErrAttemptAlreadyCompleted
	}

	completionTime := s.now()
	submission, err := s.attempts.Finalize(ctx, attempt.ID, completionTime, func(fresh models.AssessmentAttempt, details []models.AttemptDetail) (models.Submission, error) {
		duration := completionTime.Sub(fresh.StartTime)
		if duration < 0 {
			return models.Submission{}, ErrNegativeDuration
		}

		var totalScore float64
		attempted := 0
		correct := 0
		for _, detail := range details {
			if detail.Attempted {
				attempted++
			}
			if detail.Correct {
				correct++
				totalScore += detail.Score
			}
		}

		return models.Submission{
			AttemptID:          fresh.ID,
			CandidateID:        fresh.CandidateID,
			SessionID:          sessionID,
			TotalScore:         int(math.Round(totalScore)),
			AttemptedQuestions: attempted,
			CorrectAnswers:     correct,
			DurationMillis:     duration.Milliseconds(),
			SubmittedAt:        completionTime,
		}, nil
	})
	if err != nil {
		// The status re-check inside the transaction guards racing completions.
		if errors.Is(err, repository.ErrAttemptSealed) {
			span.SetStatus(codes.Error, "attempt_already_completed")
			return dto.SubmissionResponse{}, ErrAttemptAlreadyCompleted
		}
		if errors.Is(err, ErrNegativeDuration) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "negative_duration")
			return dto.SubmissionResponse{}, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "finalize_failed")
		return dto.SubmissionResponse{}, fmt.Errorf("complete attempt: finalize: %w", err)
	}

	observability.AttemptsCompleted().Inc()
	span.SetAttributes(
		attribute.Int("submission.total_score", submission.TotalScore),
		attribute.Int("submission.correct_answers", submission.CorrectAnswers),
	)
	s.logger.Info().
		Uint("attempt_id", attempt.ID).
		Uint("submission_id", submission.ID).
		Int("total_score", submission.TotalScore).
		Int64("duration_ms", submission.DurationMillis).
		Msg("attempt completed")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *gradingService) Result(ctx context.Context, attemptID, candidateID uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByAttemptID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, fmt.Errorf("get result: %w", err)
	}
	if submission.CandidateID != candidateID {
		return dto.SubmissionResponse{}, ErrSubmissionNotFound
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *gradingService) Results(ctx context.Context, candidateID uint) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, dto.NewSubmissionResponse(submission))
	}

	return responses, nil
}
