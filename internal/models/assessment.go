package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// TypeDistribution maps a question type to the number of questions an
// assessment samples for that type.
type TypeDistribution map[QuestionType]int

// Total returns the sum of all per-type counts.
func (d TypeDistribution) Total() int {
	total := 0
	for _, count := range d {
		total += count
	}
	return total
}

// Assessment is a scheduled test definition. Assessments are created by an
// administrative process and are read-only to the attempt lifecycle.
type Assessment struct {
	ID               uint                                 `gorm:"primaryKey" json:"id"`
	Name             string                               `gorm:"size:255;uniqueIndex;not null" json:"name"`
	StartDate        time.Time                            `gorm:"not null" json:"start_date"`
	EndDate          time.Time                            `gorm:"not null" json:"end_date"`
	MaxAttempts      int                                  `gorm:"not null;default:1" json:"max_attempts"`
	QuestionCount    int                                  `gorm:"not null" json:"question_count"`
	TypeDistribution datatypes.JSONType[TypeDistribution] `json:"type_distribution"`
	CreatedAt        time.Time                            `json:"created_at"`
	UpdatedAt        time.Time                            `json:"updated_at"`
}

// NotStarted reports whether the assessment window has not opened yet.
func (a Assessment) NotStarted(reference time.Time) bool {
	return reference.Before(a.StartDate)
}

// Expired reports whether the assessment window has closed.
func (a Assessment) Expired(reference time.Time) bool {
	return reference.After(a.EndDate)
}

// Distribution returns the configured per-type sample counts after checking
// they add up to the assessment's total question count.
func (a Assessment) Distribution() (TypeDistribution, error) {
	distribution := a.TypeDistribution.Data()
	if len(distribution) == 0 {
		return nil, fmt.Errorf("assessment %d has no type distribution configured", a.ID)
	}
	if total := distribution.Total(); total != a.QuestionCount {
		return nil, fmt.Errorf("assessment %d distribution sums to %d, want %d", a.ID, total, a.QuestionCount)
	}
	return distribution, nil
}
