package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/models"
	"github.com/veritest/assess-api/internal/observability"
	"github.com/veritest/assess-api/internal/repository"
)

// ErrAttemptDetailNotFound indicates the attempt detail does not exist or is
// not owned by the calling candidate.
var ErrAttemptDetailNotFound = errors.New("attempt detail not found")

// ErrInvalidOption indicates the submitted choice id is not one of the question's choices.
var ErrInvalidOption = errors.New("invalid option")

// ErrAttemptCompleted indicates a mutation was attempted on a sealed attempt.
var ErrAttemptCompleted = errors.New("attempt is already completed")

// AnswerService records and updates a candidate's submission for one question
// within an attempt, recomputing correctness and score on every edit.
type AnswerService interface {
	UpdateAnswer(ctx context.Context, detailID, candidateID uint, payload dto.AnswerUpdateRequest) (dto.AnswerUpdateResponse, error)
}

type answerService struct {
	details   repository.AttemptDetailRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAnswerService constructs an AnswerService instance.
func NewAnswerService(details repository.AttemptDetailRepository, validate *validator.Validate, logger zerolog.Logger) AnswerService {
	return &answerService{
		details:   details,
		validator: validate,
		logger:    logger.With().Str("component", "answer_service").Logger(),
		now:       time.Now,
	}
}

func (s *answerService) UpdateAnswer(ctx context.Context, detailID, candidateID uint, payload dto.AnswerUpdateRequest) (dto.AnswerUpdateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnswerUpdateResponse{}, err
	}

	detail, err := s.details.GetByID(ctx, detailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnswerUpdateResponse{}, ErrAttemptDetailNotFound
		}
		return dto.AnswerUpdateResponse{}, fmt.Errorf("update answer: load detail: %w", err)
	}
	if detail.Attempt.CandidateID != candidateID {
		return dto.AnswerUpdateResponse{}, ErrAttemptDetailNotFound
	}
	if detail.Attempt.IsTerminal() {
		return dto.AnswerUpdateResponse{}, ErrAttemptCompleted
	}

	// Edits outside the assessment window are rejected; reads stay tolerant.
	now := s.now()
	assessment := detail.Attempt.Assessment
	if assessment.NotStarted(now) {
		return dto.AnswerUpdateResponse{}, ErrAssessmentNotStarted
	}
	if assessment.Expired(now) {
		return dto.AnswerUpdateResponse{}, ErrAssessmentExpired
	}

	if payload.ChoiceID == "" {
		detail.Attempted = false
		detail.Correct = false
		detail.Score = 0
		detail.Submission = datatypes.NewJSONType(models.Choice{})
	} else {
		choice, ok := detail.Question.ChoiceByID(payload.ChoiceID)
		if !ok {
			return dto.AnswerUpdateResponse{}, ErrInvalidOption
		}

		correct := choice.ID == detail.Question.Answer.Data().ID
		detail.Attempted = true
		detail.Correct = correct
		detail.Submission = datatypes.NewJSONType(choice)
		if correct {
			detail.Score = detail.Question.Score
		} else {
			detail.Score = 0
		}
	}

	// Every update, including a clear, counts as a revision.
	detail.ChangeCount++

	if err := s.details.Update(ctx, &detail); err != nil {
		return dto.AnswerUpdateResponse{}, fmt.Errorf("update answer: persist detail: %w", err)
	}

	observability.AnswerUpdates().Inc()
	s.logger.Debug().
		Uint("detail_id", detail.ID).
		Uint("attempt_id", detail.AttemptID).
		Bool("attempted", detail.Attempted).
		Int("change_count", detail.ChangeCount).
		Msg("answer updated")

	return dto.AnswerUpdateResponse{ID: detail.ID, Attempted: detail.Attempted}, nil
}
