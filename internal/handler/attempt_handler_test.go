package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/handler"
	"github.com/veritest/assess-api/internal/models"
	"github.com/veritest/assess-api/internal/service"
)

type mockAttemptService struct {
	attempt dto.AttemptResponse
	err     error
}

func (m *mockAttemptService) Start(_ context.Context, assessmentID, sessionID uint) (dto.AttemptResponse, error) {
	return m.attempt, m.err
}

func (m *mockAttemptService) GetByID(_ context.Context, attemptID, candidateID uint) (dto.AttemptResponse, error) {
	return m.attempt, m.err
}

func (m *mockAttemptService) GetActive(_ context.Context, assessmentID, candidateID uint) (dto.AttemptResponse, error) {
	return m.attempt, m.err
}

func (m *mockAttemptService) GetActiveForCandidate(_ context.Context, candidateID uint) (dto.AttemptResponse, error) {
	return m.attempt, m.err
}

type mockProctoringService struct {
	lastPayload dto.ProctoringUpdateRequest
	response    dto.ProctoringResponse
	err         error
}

func (m *mockProctoringService) Update(_ context.Context, attemptID, candidateID uint, payload dto.ProctoringUpdateRequest) (dto.ProctoringResponse, error) {
	m.lastPayload = payload
	if m.err != nil {
		return dto.ProctoringResponse{}, m.err
	}
	return m.response, nil
}

type mockGradingService struct {
	submission dto.SubmissionResponse
	err        error
	calls      int
}

func (m *mockGradingService) Complete(_ context.Context, attemptID, candidateID, sessionID uint) (dto.SubmissionResponse, error) {
	m.calls++
	if m.err != nil {
		return dto.SubmissionResponse{}, m.err
	}
	return m.submission, nil
}

func (m *mockGradingService) Result(_ context.Context, attemptID, candidateID uint) (dto.SubmissionResponse, error) {
	if m.err != nil {
		return dto.SubmissionResponse{}, m.err
	}
	return m.submission, nil
}

func (m *mockGradingService) Results(_ context.Context, candidateID uint) ([]dto.SubmissionResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []dto.SubmissionResponse{m.submission}, nil
}

func sessionStub(candidateID, sessionID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("candidate_id", candidateID)
		c.Locals("session_id", sessionID)
		return c.Next()
	}
}

func newAttemptTestApp(attempts service.AttemptService, proctoring service.ProctoringService, grading service.GradingService) *fiber.App {
	logger := zerolog.New(io.Discard)
	app := fiber.New()
	group := app.Group("/api/v1/attempts", sessionStub(7, 9))
	handler.NewAttemptHandler(attempts, proctoring, grading, logger).Register(group)
	return app
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestAttemptHandler_GetSuccess(t *testing.T) {
	attempts := &mockAttemptService{attempt: dto.AttemptResponse{
		ID:           3,
		AssessmentID: 5,
		Status:       models.AttemptStatusInProgress,
		Integrity:    models.IntegrityGood,
		StartTime:    time.Now().UTC(),
	}}
	app := newAttemptTestApp(attempts, &mockProctoringService{}, &mockGradingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attempts/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                `json:"success"`
		Data    dto.AttemptResponse `json:"data"`
		Message string              `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, uint(3), response.Data.ID)
}

func TestAttemptHandler_CompleteCreated(t *testing.T) {
	grading := &mockGradingService{submission: dto.SubmissionResponse{ID: 1, AttemptID: 3, TotalScore: 14}}
	app := newAttemptTestApp(&mockAttemptService{}, &mockProctoringService{}, grading)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attempts/3/complete", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, 1, grading.calls)

	var response struct {
		Data dto.SubmissionResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, 14, response.Data.TotalScore)
}

func TestAttemptHandler_ProctoringUpdate(t *testing.T) {
	proctoring := &mockProctoringService{response: dto.ProctoringResponse{AttemptID: 3, Integrity: models.IntegrityBad}}
	app := newAttemptTestApp(&mockAttemptService{}, proctoring, &mockGradingService{})

	body, err := json.Marshal(dto.ProctoringUpdateRequest{VisibilityChanges: 12})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/attempts/3/proctoring", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 12, proctoring.lastPayload.VisibilityChanges)
}

func TestAttemptHandler_ServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "not found", err: service.ErrAttemptNotFound, statusCode: fiber.StatusNotFound},
		{name: "already completed", err: service.ErrAttemptAlreadyCompleted, statusCode: fiber.StatusConflict},
		{name: "mismatch", err: service.ErrAttemptMismatch, statusCode: fiber.StatusBadRequest},
		{name: "generic", err: errors.New("boom"), statusCode: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grading := &mockGradingService{err: tc.err}
			app := newAttemptTestApp(&mockAttemptService{}, &mockProctoringService{}, grading)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/attempts/3/complete", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestAttemptHandler_MissingSessionUnauthorized(t *testing.T) {
	logger := zerolog.New(io.Discard)
	app := fiber.New()
	group := app.Group("/api/v1/attempts")
	handler.NewAttemptHandler(&mockAttemptService{}, &mockProctoringService{}, &mockGradingService{}, logger).Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attempts/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
