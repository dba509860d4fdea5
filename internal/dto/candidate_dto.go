package dto

import "github.com/veritest/assess-api/internal/models"

// CandidateResponse is the public view of a candidate.
type CandidateResponse struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
}

// NewCandidateResponse maps a candidate model to its response shape.
func NewCandidateResponse(candidate models.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:         candidate.ID,
		FirstName:  candidate.FirstName,
		LastName:   candidate.LastName,
		Email:      candidate.Email,
		RollNumber: candidate.RollNumber,
	}
}
