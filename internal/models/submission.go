package models

import "time"

// Submission is the sealed aggregate result of a completed attempt. Exactly
// one row exists per attempt; it is immutable after creation.
type Submission struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	AttemptID          uint      `gorm:"not null;uniqueIndex" json:"attempt_id"`
	CandidateID        uint      `gorm:"not null" json:"candidate_id"`
	SessionID          uint      `gorm:"not null" json:"session_id"`
	TotalScore         int       `gorm:"not null" json:"total_score"`
	AttemptedQuestions int       `gorm:"not null" json:"attempted_questions"`
	CorrectAnswers     int       `gorm:"not null" json:"correct_answers"`
	DurationMillis     int64     `gorm:"not null" json:"duration_millis"`
	SubmittedAt        time.Time `gorm:"not null" json:"submitted_at"`
}
