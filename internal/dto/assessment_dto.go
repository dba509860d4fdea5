package dto

import (
	"time"

	"github.com/veritest/assess-api/internal/models"
)

// AssessmentResponse is the public view of an assessment definition.
type AssessmentResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	QuestionCount int       `json:"question_count"`
	MaxAttempts   int       `json:"max_attempts"`
}

// NewAssessmentResponse maps an assessment model to its response shape.
func NewAssessmentResponse(assessment models.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:            assessment.ID,
		Name:          assessment.Name,
		StartDate:     assessment.StartDate,
		EndDate:       assessment.EndDate,
		QuestionCount: assessment.QuestionCount,
		MaxAttempts:   assessment.MaxAttempts,
	}
}

// NewAssessmentResponseSlice maps a slice of assessments.
func NewAssessmentResponseSlice(assessments []models.Assessment) []AssessmentResponse {
	responses := make([]AssessmentResponse, 0, len(assessments))
	for _, assessment := range assessments {
		responses = append(responses, NewAssessmentResponse(assessment))
	}
	return responses
}
