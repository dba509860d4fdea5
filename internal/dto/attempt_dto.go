package dto

import (
	"time"

	"github.com/veritest/assess-api/internal/models"
)

// AttemptDetailResponse is one sampled question inside an attempt, including
// the candidate's current answer reference.
type AttemptDetailResponse struct {
	ID               uint             `json:"id"`
	OrderIndex       int              `json:"order_index"`
	Attempted        bool             `json:"attempted"`
	ChangeCount      int              `json:"change_count"`
	SubmittedChoice  string           `json:"submitted_choice,omitempty"`
	ReviewerFeedback string           `json:"reviewer_feedback,omitempty"`
	Question         QuestionResponse `json:"question"`
}

// AttemptResponse is the candidate-facing view of an attempt.
type AttemptResponse struct {
	ID           uint                    `json:"id"`
	AssessmentID uint                    `json:"assessment_id"`
	Status       models.AttemptStatus    `json:"status"`
	Integrity    models.IntegrityVerdict `json:"integrity"`
	StartTime    time.Time               `json:"start_time"`
	EndTime      *time.Time              `json:"end_time,omitempty"`
	Details      []AttemptDetailResponse `json:"details,omitempty"`
}

// NewAttemptDetailResponse maps a detail model to its response shape.
func NewAttemptDetailResponse(detail models.AttemptDetail) AttemptDetailResponse {
	return AttemptDetailResponse{
		ID:               detail.ID,
		OrderIndex:       detail.OrderIndex,
		Attempted:        detail.Attempted,
		ChangeCount:      detail.ChangeCount,
		SubmittedChoice:  detail.Submission.Data().ID,
		ReviewerFeedback: detail.ReviewerFeedback,
		Question:         NewQuestionResponse(detail.Question),
	}
}

// NewAttemptResponse maps an attempt and its details to the response shape.
func NewAttemptResponse(attempt models.AssessmentAttempt) AttemptResponse {
	details := make([]AttemptDetailResponse, 0, len(attempt.Details))
	for _, detail := range attempt.Details {
		details = append(details, NewAttemptDetailResponse(detail))
	}

	return AttemptResponse{
		ID:           attempt.ID,
		AssessmentID: attempt.AssessmentID,
		Status:       attempt.Status,
		Integrity:    attempt.Integrity,
		StartTime:    attempt.StartTime,
		EndTime:      attempt.EndTime,
		Details:      details,
	}
}
