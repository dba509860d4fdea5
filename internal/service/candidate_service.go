package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/repository"
)

// ErrCandidateNotFound indicates the candidate does not exist.
var ErrCandidateNotFound = errors.New("candidate not found")

// CandidateService resolves candidate profiles.
type CandidateService interface {
	GetByID(ctx context.Context, id uint) (dto.CandidateResponse, error)
}

type candidateService struct {
	candidates repository.CandidateRepository
	logger     zerolog.Logger
}

// NewCandidateService constructs a CandidateService instance.
func NewCandidateService(candidates repository.CandidateRepository, logger zerolog.Logger) CandidateService {
	return &candidateService{
		candidates: candidates,
		logger:     logger.With().Str("component", "candidate_service").Logger(),
	}
}

func (s *candidateService) GetByID(ctx context.Context, id uint) (dto.CandidateResponse, error) {
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CandidateResponse{}, ErrCandidateNotFound
		}
		return dto.CandidateResponse{}, fmt.Errorf("get candidate: %w", err)
	}

	return dto.NewCandidateResponse(candidate), nil
}
