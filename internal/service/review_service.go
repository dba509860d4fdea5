package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/repository"
)

// ErrScoreExceedsWeight indicates a manual score surpasses the question's weight.
var ErrScoreExceedsWeight = errors.New("score exceeds question weight")

// ReviewService records manual reviewer feedback on attempt details. Reviews
// are advisory: they never re-open an attempt or rewrite its sealed submission.
type ReviewService interface {
	Review(ctx context.Context, detailID uint, payload dto.ReviewRequest) (dto.AttemptDetailResponse, error)
}

type reviewService struct {
	details   repository.AttemptDetailRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewReviewService constructs a ReviewService instance.
func NewReviewService(details repository.AttemptDetailRepository, validate *validator.Validate, logger zerolog.Logger) ReviewService {
	return &reviewService{
		details:   details,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "review_service").Logger(),
		now:       time.Now,
	}
}

func (s *reviewService) Review(ctx context.Context, detailID uint, payload dto.ReviewRequest) (dto.AttemptDetailResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttemptDetailResponse{}, err
	}

	detail, err := s.details.GetByID(ctx, detailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptDetailResponse{}, ErrAttemptDetailNotFound
		}
		return dto.AttemptDetailResponse{}, fmt.Errorf("review detail: load detail: %w", err)
	}

	if payload.Score != nil && *payload.Score > detail.Question.Score {
		return dto.AttemptDetailResponse{}, ErrScoreExceedsWeight
	}

	detail.ReviewerFeedback = strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback))
	gradedAt := s.now()
	detail.GradedAt = &gradedAt
	if payload.Score != nil {
		detail.Score = *payload.Score
	}

	if err := s.details.Update(ctx, &detail); err != nil {
		return dto.AttemptDetailResponse{}, fmt.Errorf("review detail: persist detail: %w", err)
	}

	s.logger.Info().
		Uint("detail_id", detail.ID).
		Uint("attempt_id", detail.AttemptID).
		Msg("attempt detail reviewed")

	return dto.NewAttemptDetailResponse(detail), nil
}
