package models

import (
	"time"

	"gorm.io/datatypes"
)

// AttemptDetail records one sampled question within one attempt, including
// the candidate's current answer and the score derived from it. Details are
// created in a batch at attempt start and never deleted.
type AttemptDetail struct {
	ID               uint                       `gorm:"primaryKey" json:"id"`
	AttemptID        uint                       `gorm:"not null;index" json:"attempt_id"`
	QuestionID       uint                       `gorm:"not null" json:"question_id"`
	OrderIndex       int                        `gorm:"not null;default:0" json:"order_index"`
	Attempted        bool                       `gorm:"not null;default:false" json:"attempted"`
	Correct          bool                       `gorm:"not null;default:false" json:"correct"`
	ChangeCount      int                        `gorm:"not null;default:0" json:"change_count"`
	Submission       datatypes.JSONType[Choice] `json:"submission"`
	Score            float64                    `gorm:"not null;default:0" json:"score"`
	ReviewerFeedback string                     `gorm:"type:text" json:"reviewer_feedback"`
	GradedAt         *time.Time                 `json:"graded_at"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
	Question         Question                   `json:"question"`
	Attempt          AssessmentAttempt          `gorm:"foreignKey:AttemptID" json:"-"`
}
