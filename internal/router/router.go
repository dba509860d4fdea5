package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/veritest/assess-api/internal/config"
	"github.com/veritest/assess-api/internal/handler"
	"github.com/veritest/assess-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssessmentHandler *handler.AssessmentHandler
	AttemptHandler    *handler.AttemptHandler
	AnswerHandler     *handler.AnswerHandler
	CandidateHandler  *handler.CandidateHandler
	ReviewHandler     *handler.ReviewHandler
	SessionMiddleware fiber.Handler
	StartLimiter      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided session middleware, or a no-op if nil
	sessionMiddleware := deps.SessionMiddleware
	if sessionMiddleware == nil {
		sessionMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Assessments (listing, attempt creation)
	if deps.AssessmentHandler != nil {
		assessments := api.Group("/assessments", sessionMiddleware)
		deps.AssessmentHandler.Register(assessments, deps.StartLimiter)
	}

	// Attempts (inspection, proctoring, completion)
	if deps.AttemptHandler != nil {
		attempts := api.Group("/attempts", sessionMiddleware)
		deps.AttemptHandler.Register(attempts)
	}

	// Attempt details (answer updates)
	if deps.AnswerHandler != nil {
		details := api.Group("/attempt-details", sessionMiddleware)
		deps.AnswerHandler.Register(details)
	}

	// Candidate self lookup
	if deps.CandidateHandler != nil {
		candidates := api.Group("/candidates", sessionMiddleware)
		deps.CandidateHandler.Register(candidates)
	}

	// Manual review of coding answers
	if deps.ReviewHandler != nil {
		review := api.Group("/admin/attempt-details", sessionMiddleware)
		deps.ReviewHandler.Register(review)
	}
}
