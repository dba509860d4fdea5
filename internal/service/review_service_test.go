package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/veritest/assess-api/internal/dto"
	"github.com/veritest/assess-api/internal/models"
)

type fakeAttemptDetailRepo struct {
	detail      models.AttemptDetail
	updateCalls int
}

func (f *fakeAttemptDetailRepo) GetByID(ctx context.Context, id uint) (models.AttemptDetail, error) {
	return f.detail, nil
}

func (f *fakeAttemptDetailRepo) ListByAttempt(ctx context.Context, attemptID uint) ([]models.AttemptDetail, error) {
	return []models.AttemptDetail{f.detail}, nil
}

func (f *fakeAttemptDetailRepo) Update(ctx context.Context, detail *models.AttemptDetail) error {
	f.updateCalls++
	f.detail = *detail
	return nil
}

func newReviewDetail() models.AttemptDetail {
	question := codingQuestion("c0")
	return models.AttemptDetail{
		ID:         1,
		AttemptID:  2,
		QuestionID: 3,
		OrderIndex: 1,
		Attempted:  true,
		Submission: datatypes.NewJSONType(question.Choices[1]),
		Question:   question,
	}
}

func TestReviewServiceSanitizesFeedback(t *testing.T) {
	repo := &fakeAttemptDetailRepo{detail: newReviewDetail()}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewReviewService(repo, validate, testLogger())

	result, err := svc.Review(context.Background(), 1, dto.ReviewRequest{
		Feedback: `Solid approach<script>alert("x")</script>`,
	})
	require.NoError(t, err)
	require.Equal(t, "Solid approach", result.ReviewerFeedback)
	require.Equal(t, 1, repo.updateCalls)
	require.NotNil(t, repo.detail.GradedAt)
}

func TestReviewServiceScoreExceedsWeight(t *testing.T) {
	repo := &fakeAttemptDetailRepo{detail: newReviewDetail()}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewReviewService(repo, validate, testLogger())

	score := models.DefaultCodingScore + 1.0
	_, err := svc.Review(context.Background(), 1, dto.ReviewRequest{Feedback: "too generous", Score: &score})
	require.ErrorIs(t, err, ErrScoreExceedsWeight)
	require.Equal(t, 0, repo.updateCalls)
}

func TestReviewServiceScoreOverride(t *testing.T) {
	repo := &fakeAttemptDetailRepo{detail: newReviewDetail()}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewReviewService(repo, validate, testLogger())

	score := 6.0
	_, err := svc.Review(context.Background(), 1, dto.ReviewRequest{Feedback: "partial credit", Score: &score})
	require.NoError(t, err)
	require.Equal(t, score, repo.detail.Score)
}

func TestReviewServiceFeedbackRequired(t *testing.T) {
	repo := &fakeAttemptDetailRepo{detail: newReviewDetail()}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewReviewService(repo, validate, testLogger())

	_, err := svc.Review(context.Background(), 1, dto.ReviewRequest{})
	require.Error(t, err)
	require.Equal(t, 0, repo.updateCalls)
}
