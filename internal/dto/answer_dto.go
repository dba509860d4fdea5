package dto

// AnswerUpdateRequest records or clears a candidate's answer for one attempt
// detail. An empty choice id clears the current answer.
type AnswerUpdateRequest struct {
	ChoiceID string `json:"choice_id" validate:"omitempty,max=64"`
}

// AnswerUpdateResponse acknowledges an answer update.
type AnswerUpdateResponse struct {
	ID        uint `json:"id"`
	Attempted bool `json:"attempted"`
}
