package service

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/veritest/assess-api/internal/models"
)

// ErrInsufficientQuestions indicates the bank holds fewer questions of a type
// than the assessment's distribution requests.
var ErrInsufficientQuestions = errors.New("question pool is smaller than the requested count")

// RandInt supplies a uniformly distributed integer in [0, n] inclusive.
// Injectable so sampling is deterministic under test.
type RandInt func(n int) int

// Conventional question types are presented before long-form ones, so the
// ordering index starts with the quicker items.
var samplerTypeOrder = []models.QuestionType{models.QuestionTypeMCQ, models.QuestionTypeCoding}

// Sampler selects a type-balanced random subset of the question bank.
type Sampler struct {
	randInt RandInt
}

// NewSampler builds a sampler. A nil source falls back to math/rand.
func NewSampler(randInt RandInt) *Sampler {
	if randInt == nil {
		randInt = func(n int) int { return rand.IntN(n + 1) }
	}
	return &Sampler{randInt: randInt}
}

// Sample draws counts[t] questions of each type t from the pool, without
// replacement and with equal inclusion probability within each type. The
// result orders mcq questions before coding questions; within a type the
// shuffle order is kept. Fails without partial output when any type has too
// few questions available.
func (s *Sampler) Sample(pool []models.Question, counts models.TypeDistribution) ([]models.Question, error) {
	byType := make(map[models.QuestionType][]models.Question, len(counts))
	for _, question := range pool {
		byType[question.Type] = append(byType[question.Type], question)
	}

	for _, questionType := range samplerTypeOrder {
		if want := counts[questionType]; len(byType[questionType]) < want {
			return nil, fmt.Errorf("%w: have %d %s questions, need %d",
				ErrInsufficientQuestions, len(byType[questionType]), questionType, want)
		}
	}

	selected := make([]models.Question, 0, counts.Total())
	for _, questionType := range samplerTypeOrder {
		want := counts[questionType]
		if want == 0 {
			continue
		}
		selected = append(selected, s.shuffleTake(byType[questionType], want)...)
	}

	return selected, nil
}

// shuffleTake runs an in-place Fisher-Yates shuffle over a copy of the
// partition and returns its first n elements.
func (s *Sampler) shuffleTake(partition []models.Question, n int) []models.Question {
	shuffled := make([]models.Question, len(partition))
	copy(shuffled, partition)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.randInt(i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled[:n]
}
