package database

import (
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/models"
)

// Migrate applies the schema plus the constraints AutoMigrate cannot express.
// The partial unique index allows at most one open attempt per candidate and
// assessment; concurrent creations race on it instead of on an application
// check, so the loser fails with a duplicate-key error even at read committed.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Candidate{},
		&models.Session{},
		&models.Assessment{},
		&models.Question{},
		&models.AssessmentAttempt{},
		&models.AttemptDetail{},
		&models.Submission{},
	); err != nil {
		return err
	}

	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_attempts_single_active " +
			"ON assessment_attempts (candidate_id, assessment_id) WHERE end_time IS NULL",
	).Error
}
