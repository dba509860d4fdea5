package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/veritest/assess-api/internal/service"
	"github.com/veritest/assess-api/internal/utils"
)

// AssessmentHandler manages assessment listing and attempt creation endpoints.
type AssessmentHandler struct {
	assessments service.AssessmentService
	attempts    service.AttemptService
	logger      zerolog.Logger
}

// NewAssessmentHandler builds an assessment handler instance.
func NewAssessmentHandler(assessments service.AssessmentService, attempts service.AttemptService, logger zerolog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessments: assessments,
		attempts:    attempts,
		logger:      logger.With().Str("component", "assessment_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AssessmentHandler) Register(router fiber.Router, startLimiter fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	if startLimiter != nil {
		router.Post("/:id/attempts", startLimiter, h.startAttempt)
	} else {
		router.Post("/:id/attempts", h.startAttempt)
	}
	router.Get("/:id/attempts/active", h.getActiveAttempt)
}

func (h *AssessmentHandler) list(c *fiber.Ctx) error {
	assessments, err := h.assessments.ListOpen(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assessments retrieved", assessments)
}

func (h *AssessmentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "assessment id is required in the URL path")
	}

	assessment, err := h.assessments.GetByID(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assessment retrieved", assessment)
}

func (h *AssessmentHandler) startAttempt(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "assessment id is required in the URL path")
	}

	sessionID := sessionIDFromContext(c)
	if sessionID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	attempt, err := h.attempts.Start(c.Context(), id, sessionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assessment started successfully", attempt)
}

func (h *AssessmentHandler) getActiveAttempt(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "assessment id is required in the URL path")
	}

	candidateID := candidateIDFromContext(c)
	if candidateID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	attempt, err := h.attempts.GetActive(c.Context(), id, candidateID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "active attempt retrieved", attempt)
}

func (h *AssessmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAssessmentNotFound), errors.Is(err, service.ErrAttemptNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAssessmentNotStarted),
		errors.Is(err, service.ErrAssessmentExpired),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionExpired),
		errors.Is(err, service.ErrInsufficientQuestions):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrAttemptInProgress):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
