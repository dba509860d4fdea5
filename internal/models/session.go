package models

import "time"

// Session binds an issued login token to a candidate. Session issuance lives
// outside this service; the core only checks expiry against the clock.
type Session struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Token       string    `gorm:"size:512;uniqueIndex;not null" json:"-"`
	CandidateID uint      `gorm:"not null;index" json:"candidate_id"`
	LoggedInAt  time.Time `gorm:"not null" json:"logged_in_at"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Candidate   Candidate `json:"candidate"`
}

// Expired reports whether the session is no longer valid at the given instant.
func (s Session) Expired(reference time.Time) bool {
	return s.ExpiresAt.Before(reference)
}
