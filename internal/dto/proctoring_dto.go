package dto

import "github.com/veritest/assess-api/internal/models"

// ProctoringUpdateRequest reports accumulated violation counters and consent
// flags from the candidate's client. Nil flags leave the stored value as is.
type ProctoringUpdateRequest struct {
	VisibilityChanges int   `json:"visibility_changes" validate:"gte=0"`
	FullScreenExits   int   `json:"full_screen_exits" validate:"gte=0"`
	ConsentProvided   *bool `json:"consent_provided"`
	FullScreenAccess  *bool `json:"full_screen_access"`
}

// ProctoringResponse returns the merged counters and recomputed verdict.
type ProctoringResponse struct {
	AttemptID  uint                    `json:"attempt_id"`
	Integrity  models.IntegrityVerdict `json:"integrity"`
	Proctoring models.ProctoringData   `json:"proctoring"`
}
