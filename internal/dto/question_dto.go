package dto

import "github.com/veritest/assess-api/internal/models"

// ChoiceResponse is a selectable option as shown to a candidate. The per-tier
// score weight of coding choices is deliberately omitted.
type ChoiceResponse struct {
	Kind models.ChoiceKind `json:"kind"`
	ID   string            `json:"id"`
	Text string            `json:"text"`
}

// SnippetResponse is the code fragment attached to a question, if any.
type SnippetResponse struct {
	Code     string `json:"code,omitempty"`
	Language string `json:"language,omitempty"`
}

// QuestionResponse is the candidate-facing view of a question. The designated
// correct choice never leaves the service through this shape.
type QuestionResponse struct {
	ID          uint                `json:"id"`
	Description string              `json:"description"`
	Hint        string              `json:"hint,omitempty"`
	Type        models.QuestionType `json:"type"`
	Choices     []ChoiceResponse    `json:"choices"`
	Snippet     SnippetResponse     `json:"snippet"`
	Score       float64             `json:"score"`
}

// NewQuestionResponse maps a question model to its candidate-facing shape.
func NewQuestionResponse(question models.Question) QuestionResponse {
	choices := make([]ChoiceResponse, 0, len(question.Choices))
	for _, choice := range question.Choices {
		choices = append(choices, ChoiceResponse{Kind: choice.Kind, ID: choice.ID, Text: choice.Text})
	}

	snippet := question.Snippet.Data()
	return QuestionResponse{
		ID:          question.ID,
		Description: question.Description,
		Hint:        question.Hint,
		Type:        question.Type,
		Choices:     choices,
		Snippet:     SnippetResponse{Code: snippet.Code, Language: snippet.Language},
		Score:       question.Score,
	}
}
