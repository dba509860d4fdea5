package models

import (
	"time"

	"gorm.io/datatypes"
)

// AttemptStatus tracks where an attempt sits in its lifecycle.
type AttemptStatus string

const (
	// AttemptStatusDraft is a created attempt that has not been confirmed by the client.
	AttemptStatusDraft AttemptStatus = "Draft"
	// AttemptStatusInProgress is an attempt the candidate is actively taking.
	AttemptStatusInProgress AttemptStatus = "InProgress"
	// AttemptStatusCompleted is a sealed attempt; terminal.
	AttemptStatusCompleted AttemptStatus = "Completed"
)

// IntegrityVerdict classifies the proctoring conditions an attempt was taken under.
type IntegrityVerdict string

const (
	// IntegrityGood means no proctoring thresholds were breached.
	IntegrityGood IntegrityVerdict = "good"
	// IntegrityBad means a violation threshold was crossed or fullscreen access was refused.
	IntegrityBad IntegrityVerdict = "bad"
	// IntegrityPermissionDeclined means the candidate declined proctoring consent.
	IntegrityPermissionDeclined IntegrityVerdict = "permission-declined"
)

// Violation counts at or above this value flip the verdict to bad.
const ProctoringViolationThreshold = 10

// ProctoringData accumulates violation counters and consent flags reported by
// the candidate's client during an attempt.
type ProctoringData struct {
	VisibilityChanges int  `json:"visibility_changes"`
	FullScreenExits   int  `json:"full_screen_exits"`
	ConsentProvided   bool `json:"consent_provided"`
	FullScreenAccess  bool `json:"full_screen_access"`
}

// AssessmentAttempt is one candidate's run through one assessment. At most one
// non-terminal attempt may exist per (candidate, assessment) pair.
type AssessmentAttempt struct {
	ID           uint                               `gorm:"primaryKey" json:"id"`
	AssessmentID uint                               `gorm:"not null;index:idx_attempt_candidate_assessment" json:"assessment_id"`
	CandidateID  uint                               `gorm:"not null;index:idx_attempt_candidate_assessment" json:"candidate_id"`
	SessionID    uint                               `gorm:"not null" json:"session_id"`
	StartTime    time.Time                          `gorm:"not null" json:"start_time"`
	EndTime      *time.Time                         `json:"end_time"`
	Status       AttemptStatus                      `gorm:"size:16;not null;default:Draft" json:"status"`
	Proctoring   datatypes.JSONType[ProctoringData] `json:"proctoring"`
	Integrity    IntegrityVerdict                   `gorm:"size:32;not null;default:good" json:"integrity"`
	CreatedAt    time.Time                          `json:"created_at"`
	UpdatedAt    time.Time                          `json:"updated_at"`
	Assessment   Assessment                         `json:"assessment"`
	Candidate    Candidate                          `json:"candidate"`
	Session      Session                            `json:"session"`
	Details      []AttemptDetail                    `gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"details,omitempty"`
}

// IsTerminal reports whether the attempt can no longer be mutated.
func (a AssessmentAttempt) IsTerminal() bool {
	return a.Status == AttemptStatusCompleted
}
