package dto

import (
	"time"

	"github.com/veritest/assess-api/internal/models"
)

// SubmissionResponse is the sealed result of a completed attempt.
type SubmissionResponse struct {
	ID                 uint      `json:"id"`
	AttemptID          uint      `json:"attempt_id"`
	TotalScore         int       `json:"total_score"`
	AttemptedQuestions int       `json:"attempted_questions"`
	CorrectAnswers     int       `json:"correct_answers"`
	DurationMillis     int64     `json:"duration_millis"`
	SubmittedAt        time.Time `json:"submitted_at"`
}

// NewSubmissionResponse maps a submission model to its response shape.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:                 submission.ID,
		AttemptID:          submission.AttemptID,
		TotalScore:         submission.TotalScore,
		AttemptedQuestions: submission.AttemptedQuestions,
		CorrectAnswers:     submission.CorrectAnswers,
		DurationMillis:     submission.DurationMillis,
		SubmittedAt:        submission.SubmittedAt,
	}
}
