package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/models"
	"github.com/veritest/assess-api/internal/repository"
)

func seedAssessments(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now().UTC()

	open := models.Assessment{
		Name:             "Open Screening",
		StartDate:        now.Add(-time.Hour),
		EndDate:          now.Add(time.Hour),
		QuestionCount:    1,
		MaxAttempts:      1,
		TypeDistribution: datatypes.NewJSONType(models.TypeDistribution{models.QuestionTypeMCQ: 1}),
	}
	closed := models.Assessment{
		Name:             "Closed Screening",
		StartDate:        now.Add(-48 * time.Hour),
		EndDate:          now.Add(-24 * time.Hour),
		QuestionCount:    1,
		MaxAttempts:      1,
		TypeDistribution: datatypes.NewJSONType(models.TypeDistribution{models.QuestionTypeMCQ: 1}),
	}
	require.NoError(t, db.Create(&open).Error)
	require.NoError(t, db.Create(&closed).Error)
}

func TestAssessmentServiceListOpenFiltersAndCaches(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db := newTestDB(t)
	seedAssessments(t, db)

	svc := NewAssessmentService(repository.NewAssessmentRepository(db), redisClient, time.Minute, testLogger())

	listed, err := svc.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Open Screening", listed[0].Name)
	require.True(t, mini.Exists("assessments:open"))

	// The second call must be served from the cache.
	require.NoError(t, db.Where("1 = 1").Delete(&models.Assessment{}).Error)

	cached, err := svc.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, listed[0].ID, cached[0].ID)
}

func TestAssessmentServiceListOpenWithoutCache(t *testing.T) {
	db := newTestDB(t)
	seedAssessments(t, db)

	svc := NewAssessmentService(repository.NewAssessmentRepository(db), nil, time.Minute, testLogger())

	listed, err := svc.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestAssessmentServiceGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)

	svc := NewAssessmentService(repository.NewAssessmentRepository(db), nil, time.Minute, testLogger())

	_, err := svc.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrAssessmentNotFound)
}
