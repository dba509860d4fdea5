package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuestionType distinguishes the kinds of questions the bank can hold.
type QuestionType string

const (
	// QuestionTypeMCQ is a conventional multiple-choice question with four options.
	QuestionTypeMCQ QuestionType = "mcq"
	// QuestionTypeCoding is a long-form coding question graded against fixed outcome tiers.
	QuestionTypeCoding QuestionType = "coding"
)

// Default score weights per question type.
const (
	DefaultMCQScore    = 2
	DefaultCodingScore = 12
)

// ChoiceKind tags the variant a Choice belongs to.
type ChoiceKind string

const (
	// ChoiceKindMCQ marks a regular answer option.
	ChoiceKindMCQ ChoiceKind = "mcq"
	// ChoiceKindCoding marks a graded coding outcome tier.
	ChoiceKindCoding ChoiceKind = "coding"
)

// Labels for the fixed coding outcome tiers.
const (
	CodingTierFullySolved  = "Fully Solved"
	CodingTierMostlySolved = "Mostly Solved (minor issues)"
	CodingTierNotSolved    = "Not Solved"
)

// Choice is one selectable option on a question. MCQ options and coding outcome
// tiers share the shape; Score is only set for coding tiers.
type Choice struct {
	Kind  ChoiceKind `json:"kind"`
	ID    string     `json:"id"`
	Text  string     `json:"text"`
	Score *float64   `json:"score,omitempty"`
}

// IsZero reports whether the choice is empty, i.e. no answer recorded.
func (c Choice) IsZero() bool {
	return c.ID == ""
}

// Snippet holds an optional code fragment shown alongside a question.
type Snippet struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// Question is a single entry in the question bank. Questions referenced by a
// live attempt must not be edited; grading derives from the stored answer.
type Question struct {
	ID          uint                           `gorm:"primaryKey" json:"id"`
	Description string                         `gorm:"type:text;not null" json:"description"`
	Hint        string                         `gorm:"type:text" json:"hint"`
	Type        QuestionType                   `gorm:"size:16;not null;index" json:"type"`
	Choices     datatypes.JSONSlice[Choice]    `json:"choices"`
	Answer      datatypes.JSONType[Choice]     `json:"answer"`
	Snippet     datatypes.JSONType[Snippet]    `json:"snippet"`
	Score       float64                        `gorm:"not null" json:"score"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}

// ChoiceByID returns the question choice with the given id, if any.
func (q Question) ChoiceByID(id string) (Choice, bool) {
	for _, choice := range q.Choices {
		if choice.ID == id {
			return choice, true
		}
	}
	return Choice{}, false
}

// ExpectedChoiceCount returns how many choices a question of this type must carry.
func (t QuestionType) ExpectedChoiceCount() int {
	if t == QuestionTypeCoding {
		return 3
	}
	return 4
}

// NewCodingChoices builds the fixed outcome tiers used by every coding question.
func NewCodingChoices() []Choice {
	fully := float64(DefaultCodingScore)
	mostly := float64(DefaultMCQScore)
	none := 0.0
	return []Choice{
		{Kind: ChoiceKindCoding, ID: uuid.NewString(), Text: CodingTierFullySolved, Score: &fully},
		{Kind: ChoiceKindCoding, ID: uuid.NewString(), Text: CodingTierMostlySolved, Score: &mostly},
		{Kind: ChoiceKindCoding, ID: uuid.NewString(), Text: CodingTierNotSolved, Score: &none},
	}
}
