package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veritest/assess-api/internal/models"
	"github.com/veritest/assess-api/internal/repository"
)

func newGradingFixture(t *testing.T) (attemptFixture, GradingService, uint) {
	t.Helper()

	fx := newAttemptFixture(t, models.TypeDistribution{models.QuestionTypeMCQ: 3}, 3, 0)
	attempt, err := fx.service.Start(context.Background(), fx.assessment.ID, fx.session.ID)
	require.NoError(t, err)

	svc := NewGradingService(repository.NewAttemptRepository(fx.db), repository.NewSubmissionRepository(fx.db), testLogger())

	return fx, svc, attempt.ID
}

func markDetail(t *testing.T, fx attemptFixture, attemptID uint, orderIndex int, attempted, correct bool, score float64) {
	t.Helper()
	require.NoError(t, fx.db.Model(&models.AttemptDetail{}).
		Where("attempt_id = ? AND order_index = ?", attemptID, orderIndex).
		Updates(map[string]interface{}{"attempted": attempted, "correct": correct, "score": score}).Error)
}

func TestGradingServiceAggregatesOnlyCorrectAnswers(t *testing.T) {
	fx, svc, attemptID := newGradingFixture(t)

	// One correct, one attempted but wrong, one untouched.
	markDetail(t, fx, attemptID, 1, true, true, models.DefaultMCQScore)
	markDetail(t, fx, attemptID, 2, true, false, 0)

	submission, err := svc.Complete(context.Background(), attemptID, fx.candidate.ID, fx.session.ID)
	require.NoError(t, err)
	require.Equal(t, models.DefaultMCQScore, submission.TotalScore)
	require.Equal(t, 2, submission.AttemptedQuestions)
	require.Equal(t, 1, submission.CorrectAnswers)
	require.GreaterOrEqual(t, submission.DurationMillis, int64(0))

	var attempt models.AssessmentAttempt
	require.NoError(t, fx.db.First(&attempt, attemptID).Error)
	require.Equal(t, models.AttemptStatusCompleted, attempt.Status)
	require.NotNil(t, attempt.EndTime)
}

func TestGradingServiceRoundsTotalScore(t *testing.T) {
	fx, svc, attemptID := newGradingFixture(t)

	markDetail(t, fx, attemptID, 1, true, true, 2.5)

	submission, err := svc.Complete(context.Background(), attemptID, fx.candidate.ID, fx.session.ID)
	require.NoError(t, err)
	require.Equal(t, 3, submission.TotalScore)
}

func TestGradingServiceDoubleCompletionConflicts(t *testing.T) {
	fx, svc, attemptID := newGradingFixture(t)
	ctx := context.Background()

	_, err := svc.Complete(ctx, attemptID, fx.candidate.ID, fx.session.ID)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, attemptID, fx.candidate.ID, fx.session.ID)
	require.ErrorIs(t, err, ErrAttemptAlreadyCompleted)

	var submissions int64
	require.NoError(t, fx.db.Model(&models.Submission{}).Where("attempt_id = ?", attemptID).Count(&submissions).Error)
	require.EqualValues(t, 1, submissions)
}

func TestGradingServiceMissingInputRejected(t *testing.T) {
	fx, svc, attemptID := newGradingFixture(t)

	_, err := svc.Complete(context.Background(), attemptID, fx.candidate.ID, 0)
	require.ErrorIs(t, err, ErrMissingCompletionInput)
}

func TestGradingServiceOwnershipMismatch(t *testing.T) {
	fx, svc, attemptID := newGradingFixture(t)

	_, err := svc.Complete(context.Background(), attemptID, fx.candidate.ID+1, fx.session.ID)
	require.ErrorIs(t, err, ErrAttemptMismatch)

	var attempt models.AssessmentAttempt
	require.NoError(t, fx.db.First(&attempt, attemptID).Error)
	require.Equal(t, models.AttemptStatusInProgress, attempt.Status)
}

func TestGradingServiceResultReturnsSealedSubmission(t *testing.T) {
	fx, svc, attemptID := newGradingFixture(t)
	ctx := context.Background()

	_, err := svc.Result(ctx, attemptID, fx.candidate.ID)
	require.ErrorIs(t, err, ErrSubmissionNotFound)

	sealed, err := svc.Complete(ctx, attemptID, fx.candidate.ID, fx.session.ID)
	require.NoError(t, err)

	result, err := svc.Result(ctx, attemptID, fx.candidate.ID)
	require.NoError(t, err)
	require.Equal(t, sealed.ID, result.ID)

	_, err = svc.Result(ctx, attemptID, fx.candidate.ID+1)
	require.ErrorIs(t, err, ErrSubmissionNotFound)

	results, err := svc.Results(ctx, fx.candidate.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestGradingServiceUnknownAttempt(t *testing.T) {
	fx, svc, attemptID := newGradingFixture(t)

	_, err := svc.Complete(context.Background(), attemptID+100, fx.candidate.ID, fx.session.ID)
	require.ErrorIs(t, err, ErrAttemptNotFound)
}
