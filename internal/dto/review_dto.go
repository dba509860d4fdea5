package dto

// ReviewRequest records manual reviewer feedback, and optionally a manual
// score override, on one attempt detail.
type ReviewRequest struct {
	Feedback string   `json:"feedback" validate:"required,max=4000"`
	Score    *float64 `json:"score" validate:"omitempty,gte=0"`
}
