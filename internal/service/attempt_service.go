package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/models"
	"github.com/veritest/assess-api/internal/observability"
	"github.com/veritest/assess-api/internal/repository"
)

// Lifecycle failures surfaced to the web layer.
var (
	// ErrAssessmentNotFound indicates the assessment does not exist.
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrAssessmentNotStarted indicates the assessment window has not opened yet.
	ErrAssessmentNotStarted = errors.New("assessment has not started yet")
	// ErrAssessmentExpired indicates the assessment window has closed.
	ErrAssessmentExpired = errors.New("assessment has expired")
	// ErrSessionNotFound indicates the session id does not resolve to a candidate.
	ErrSessionNotFound = errors.New("candidate session not found")
	// ErrSessionExpired indicates the session is no longer valid.
	ErrSessionExpired = errors.New("session expired")
	// ErrAttemptInProgress indicates an active attempt already exists for the pair.
	ErrAttemptInProgress = errors.New("existing attempt for the assessment is in progress, resume the attempt to proceed")
	// ErrAttemptNotFound indicates no matching attempt exists.
	ErrAttemptNotFound = errors.New("attempt not found")
)

// AttemptService manages the attempt lifecycle: creation with constrained
// question sampling, and lookup of active attempts.
type AttemptService interface {
	Start(ctx context.Context, assessmentID, sessionID uint) (dto.AttemptResponse, error)
	GetByID(ctx context.Context, attemptID, candidateID uint) (dto.AttemptResponse, error)
	GetActive(ctx context.Context, assessmentID, candidateID uint) (dto.AttemptResponse, error)
	GetActiveForCandidate(ctx context.Context, candidateID uint) (dto.AttemptResponse, error)
}

type attemptService struct {
	attempts    repository.AttemptRepository
	assessments repository.AssessmentRepository
	questions   repository.QuestionRepository
	sessions    repository.SessionRepository
	sampler     *Sampler
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAttemptService constructs an AttemptService instance.
func NewAttemptService(
	attempts repository.AttemptRepository,
	assessments repository.AssessmentRepository,
	questions repository.QuestionRepository,
	sessions repository.SessionRepository,
	sampler *Sampler,
	logger zerolog.Logger,
) AttemptService {
	if sampler == nil {
		sampler = NewSampler(nil)
	}
	return &attemptService{
		attempts:    attempts,
		assessments: assessments,
		questions:   questions,
		sessions:    sessions,
		sampler:     sampler,
		logger:      logger.With().Str("component", "attempt_service").Logger(),
		now:         time.Now,
	}
}

func (s *attemptService) Start(ctx context.Context, assessmentID, sessionID uint) (dto.AttemptResponse, error) {
	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrAssessmentNotFound
		}
		return dto.AttemptResponse{}, fmt.Errorf("start attempt: load assessment: %w", err)
	}

	now := s.now()
	if assessment.NotStarted(now) {
		return dto.AttemptResponse{}, ErrAssessmentNotStarted
	}
	if assessment.Expired(now) {
		return dto.AttemptResponse{}, ErrAssessmentExpired
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrSessionNotFound
		}
		return dto.AttemptResponse{}, fmt.Errorf("start attempt: load session: %w", err)
	}
	if session.Expired(now) {
		return dto.AttemptResponse{}, ErrSessionExpired
	}

	if _, err := s.attempts.FindActive(ctx, assessment.ID, session.CandidateID, assessment.StartDate); err == nil {
		return dto.AttemptResponse{}, ErrAttemptInProgress
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AttemptResponse{}, fmt.Errorf("start attempt: check active attempt: %w", err)
	}

	distribution, err := assessment.Distribution()
	if err != nil {
		return dto.AttemptResponse{}, fmt.Errorf("start attempt: %w", err)
	}

	pool, err := s.questions.List(ctx)
	if err != nil {
		return dto.AttemptResponse{}, fmt.Errorf("start attempt: load question pool: %w", err)
	}

	sampled, err := s.sampler.Sample(pool, distribution)
	if err != nil {
		return dto.AttemptResponse{}, err
	}

	attempt := models.AssessmentAttempt{
		AssessmentID: assessment.ID,
		CandidateID:  session.CandidateID,
		SessionID:    session.ID,
		StartTime:    now,
		Status:       models.AttemptStatusInProgress,
		Integrity:    models.IntegrityGood,
		Proctoring: datatypes.NewJSONType(models.ProctoringData{
			ConsentProvided:  true,
			FullScreenAccess: true,
		}),
	}

	details := make([]models.AttemptDetail, 0, len(sampled))
	for i, question := range sampled {
		details = append(details, models.AttemptDetail{
			QuestionID: question.ID,
			OrderIndex: i + 1,
			Question:   question,
		})
	}

	if err := s.attempts.CreateWithDetails(ctx, &attempt, details, assessment.StartDate); err != nil {
		if errors.Is(err, repository.ErrActiveAttemptExists) {
			return dto.AttemptResponse{}, ErrAttemptInProgress
		}
		return dto.AttemptResponse{}, fmt.Errorf("start attempt: create attempt: %w", err)
	}

	observability.AttemptsStarted().Inc()
	s.logger.Info().
		Uint("attempt_id", attempt.ID).
		Uint("assessment_id", assessment.ID).
		Uint("candidate_id", session.CandidateID).
		Int("questions", len(details)).
		Msg("attempt started")

	return dto.NewAttemptResponse(attempt), nil
}

func (s *attemptService) GetByID(ctx context.Context, attemptID, candidateID uint) (dto.AttemptResponse, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrAttemptNotFound
		}
		return dto.AttemptResponse{}, fmt.Errorf("get attempt: %w", err)
	}
	if attempt.CandidateID != candidateID {
		return dto.AttemptResponse{}, ErrAttemptNotFound
	}

	return dto.NewAttemptResponse(attempt), nil
}

func (s *attemptService) GetActive(ctx context.Context, assessmentID, candidateID uint) (dto.AttemptResponse, error) {
	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrAssessmentNotFound
		}
		return dto.AttemptResponse{}, fmt.Errorf("get active attempt: %w", err)
	}

	attempt, err := s.attempts.FindActive(ctx, assessment.ID, candidateID, assessment.StartDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrAttemptNotFound
		}
		return dto.AttemptResponse{}, fmt.Errorf("get active attempt: %w", err)
	}

	return dto.NewAttemptResponse(attempt), nil
}

func (s *attemptService) GetActiveForCandidate(ctx context.Context, candidateID uint) (dto.AttemptResponse, error) {
	attempt, err := s.attempts.FindActiveByCandidate(ctx, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrAttemptNotFound
		}
		return dto.AttemptResponse{}, fmt.Errorf("get active attempt for candidate: %w", err)
	}

	return dto.NewAttemptResponse(attempt), nil
}
