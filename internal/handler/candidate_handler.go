package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/veritest/assess-api/internal/service"
	"github.com/veritest/assess-api/internal/utils"
)

// CandidateHandler exposes the candidate bound to the active session.
type CandidateHandler struct {
	candidates service.CandidateService
	logger     zerolog.Logger
}

// NewCandidateHandler builds a candidate handler instance.
func NewCandidateHandler(candidates service.CandidateService, logger zerolog.Logger) *CandidateHandler {
	return &CandidateHandler{
		candidates: candidates,
		logger:     logger.With().Str("component", "candidate_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *CandidateHandler) Register(router fiber.Router) {
	router.Get("/me", h.me)
}

func (h *CandidateHandler) me(c *fiber.Ctx) error {
	candidateID := candidateIDFromContext(c)
	if candidateID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	candidate, err := h.candidates.GetByID(c.Context(), candidateID)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "candidate retrieved", candidate)
}
