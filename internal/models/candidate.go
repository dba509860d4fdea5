package models

import "time"

// Candidate is a registered test taker.
type Candidate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FirstName  string    `gorm:"size:128;not null" json:"first_name"`
	LastName   string    `gorm:"size:128" json:"last_name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	RollNumber string    `gorm:"size:64;uniqueIndex" json:"roll_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
