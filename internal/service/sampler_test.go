package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veritest/assess-api/internal/models"
)

func samplerPool(mcq, coding int) []models.Question {
	pool := make([]models.Question, 0, mcq+coding)
	for i := 0; i < mcq; i++ {
		question := mcqQuestion(fmt.Sprintf("m%d", i))
		question.ID = uint(i + 1)
		pool = append(pool, question)
	}
	for i := 0; i < coding; i++ {
		question := codingQuestion(fmt.Sprintf("c%d", i))
		question.ID = uint(mcq + i + 1)
		pool = append(pool, question)
	}
	return pool
}

func TestSamplerDrawsRequestedCountsPerType(t *testing.T) {
	pool := samplerPool(6, 4)
	sampler := NewSampler(nil)

	selected, err := sampler.Sample(pool, models.TypeDistribution{
		models.QuestionTypeMCQ:    3,
		models.QuestionTypeCoding: 1,
	})
	require.NoError(t, err)
	require.Len(t, selected, 4)

	seen := make(map[uint]bool, len(selected))
	for _, question := range selected {
		require.False(t, seen[question.ID], "question %d selected twice", question.ID)
		seen[question.ID] = true
	}

	for i, question := range selected {
		if i < 3 {
			require.Equal(t, models.QuestionTypeMCQ, question.Type)
		} else {
			require.Equal(t, models.QuestionTypeCoding, question.Type)
		}
	}
}

func TestSamplerMCQBeforeCoding(t *testing.T) {
	pool := samplerPool(2, 2)
	sampler := NewSampler(nil)

	selected, err := sampler.Sample(pool, models.TypeDistribution{
		models.QuestionTypeMCQ:    2,
		models.QuestionTypeCoding: 2,
	})
	require.NoError(t, err)
	require.Len(t, selected, 4)
	require.Equal(t, models.QuestionTypeMCQ, selected[0].Type)
	require.Equal(t, models.QuestionTypeMCQ, selected[1].Type)
	require.Equal(t, models.QuestionTypeCoding, selected[2].Type)
	require.Equal(t, models.QuestionTypeCoding, selected[3].Type)
}

func TestSamplerInsufficientPoolFailsWithoutPartialResult(t *testing.T) {
	pool := samplerPool(2, 5)
	sampler := NewSampler(nil)

	selected, err := sampler.Sample(pool, models.TypeDistribution{
		models.QuestionTypeMCQ:    3,
		models.QuestionTypeCoding: 1,
	})
	require.ErrorIs(t, err, ErrInsufficientQuestions)
	require.Nil(t, selected)
}

func TestSamplerDeterministicWithScriptedSource(t *testing.T) {
	pool := samplerPool(4, 0)
	// Always swapping with index zero walks the tail through the head slot.
	sampler := NewSampler(func(n int) int { return 0 })

	selected, err := sampler.Sample(pool, models.TypeDistribution{models.QuestionTypeMCQ: 2})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	require.Equal(t, uint(2), selected[0].ID)
	require.Equal(t, uint(3), selected[1].ID)
}

func TestSamplerDoesNotMutatePool(t *testing.T) {
	pool := samplerPool(4, 2)
	original := make([]uint, len(pool))
	for i, question := range pool {
		original[i] = question.ID
	}

	sampler := NewSampler(nil)
	_, err := sampler.Sample(pool, models.TypeDistribution{
		models.QuestionTypeMCQ:    4,
		models.QuestionTypeCoding: 2,
	})
	require.NoError(t, err)

	for i, question := range pool {
		require.Equal(t, original[i], question.ID)
	}
}

func TestSamplerZeroCountTypeSkipped(t *testing.T) {
	pool := samplerPool(3, 0)
	sampler := NewSampler(nil)

	selected, err := sampler.Sample(pool, models.TypeDistribution{
		models.QuestionTypeMCQ:    2,
		models.QuestionTypeCoding: 0,
	})
	require.NoError(t, err)
	require.Len(t, selected, 2)
}
