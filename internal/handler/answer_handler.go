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

// AnswerHandler manages per-question answer updates within an attempt.
type AnswerHandler struct {
	answers service.AnswerService
	logger  zerolog.Logger
}

// NewAnswerHandler builds an answer handler instance.
func NewAnswerHandler(answers service.AnswerService, logger zerolog.Logger) *AnswerHandler {
	return &AnswerHandler{
		answers: answers,
		logger:  logger.With().Str("component", "answer_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AnswerHandler) Register(router fiber.Router) {
	router.Patch("/:id/answer", h.update)
}

func (h *AnswerHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "attempt detail id is required in the URL path")
	}

	candidateID := candidateIDFromContext(c)
	if candidateID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	var payload dto.AnswerUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.answers.UpdateAnswer(c.Context(), id, candidateID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "answer updated", result)
}

func (h *AnswerHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAttemptDetailNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidOption):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAttemptCompleted):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAssessmentNotStarted), errors.Is(err, service.ErrAssessmentExpired):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
