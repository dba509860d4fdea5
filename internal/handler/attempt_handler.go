package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/service"
	"github.com/veritest/assess-api/internal/utils"
)

// AttemptHandler manages attempt inspection, proctoring, and completion endpoints.
type AttemptHandler struct {
	attempts   service.AttemptService
	proctoring service.ProctoringService
	grading    service.GradingService
	logger     zerolog.Logger
}

// NewAttemptHandler builds an attempt handler instance.
func NewAttemptHandler(attempts service.AttemptService, proctoring service.ProctoringService, grading service.GradingService, logger zerolog.Logger) *AttemptHandler {
	return &AttemptHandler{
		attempts:   attempts,
		proctoring: proctoring,
		grading:    grading,
		logger:     logger.With().Str("component", "attempt_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AttemptHandler) Register(router fiber.Router) {
	router.Get("/active", h.getActive)
	router.Get("/results", h.listResults)
	router.Get("/:id", h.get)
	router.Get("/:id/result", h.result)
	router.Patch("/:id/proctoring", h.updateProctoring)
	router.Post("/:id/complete", h.complete)
}

func (h *AttemptHandler) getActive(c *fiber.Ctx) error {
	candidateID := candidateIDFromContext(c)
	if candidateID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	attempt, err := h.attempts.GetActiveForCandidate(c.Context(), candidateID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "active attempt retrieved", attempt)
}

func (h *AttemptHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "attempt id is required in the URL path")
	}

	candidateID := candidateIDFromContext(c)
	if candidateID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	attempt, err := h.attempts.GetByID(c.Context(), id, candidateID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attempt retrieved", attempt)
}

func (h *AttemptHandler) listResults(c *fiber.Ctx) error {
	candidateID := candidateIDFromContext(c)
	if candidateID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	submissions, err := h.grading.Results(c.Context(), candidateID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attempt results retrieved", submissions)
}

func (h *AttemptHandler) result(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "attempt id is required in the URL path")
	}

	candidateID := candidateIDFromContext(c)
	if candidateID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	submission, err := h.grading.Result(c.Context(), id, candidateID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attempt result retrieved", submission)
}

func (h *AttemptHandler) updateProctoring(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "attempt id is required in the URL path")
	}

	candidateID := candidateIDFromContext(c)
	if candidateID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	var payload dto.ProctoringUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.proctoring.Update(c.Context(), id, candidateID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "proctoring updated", result)
}

func (h *AttemptHandler) complete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "attempt id is required in the URL path")
	}

	candidateID := candidateIDFromContext(c)
	sessionID := sessionIDFromContext(c)
	if candidateID == 0 || sessionID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	submission, err := h.grading.Complete(c.Context(), id, candidateID, sessionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attempt completed", submission)
}

func (h *AttemptHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAttemptNotFound), errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAttemptAlreadyCompleted), errors.Is(err, service.ErrAttemptCompleted):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAttemptMismatch):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
