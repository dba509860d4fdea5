package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/repository"
)

const openAssessmentsCacheKey = "assessments:open"

// AssessmentService exposes read access to assessment definitions.
type AssessmentService interface {
	ListOpen(ctx context.Context) ([]dto.AssessmentResponse, error)
	GetByID(ctx context.Context, id uint) (dto.AssessmentResponse, error)
}

type assessmentService struct {
	assessments repository.AssessmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssessmentService constructs an AssessmentService. The cache client may
// be nil, in which case every list goes to the database.
func NewAssessmentService(assessments repository.AssessmentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AssessmentService {
	return &assessmentService{
		assessments: assessments,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "assessment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assessmentService) ListOpen(ctx context.Context) ([]dto.AssessmentResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, openAssessmentsCacheKey).Result(); err == nil {
			var responses []dto.AssessmentResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				s.logger.Debug().Msg("open assessments cache hit")
				return responses, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read assessments cache")
		}
	}

	assessments, err := s.assessments.ListOpen(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list open assessments: %w", err)
	}

	responses := dto.NewAssessmentResponseSlice(assessments)

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, openAssessmentsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store assessments cache")
			}
		}
	}

	return responses, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id uint) (dto.AssessmentResponse, error) {
	assessment, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssessmentResponse{}, ErrAssessmentNotFound
		}
		return dto.AssessmentResponse{}, fmt.Errorf("get assessment: %w", err)
	}

	return dto.NewAssessmentResponse(assessment), nil
}
