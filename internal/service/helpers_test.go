package service

import (
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/database"
	"github.com/veritest/assess-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

// mcqQuestion builds a four-option multiple-choice question whose first option
// is the stored answer. The label keeps choice ids unique across a pool.
func mcqQuestion(label string) models.Question {
	choices := make([]models.Choice, 0, 4)
	for i := 0; i < 4; i++ {
		choices = append(choices, models.Choice{
			Kind: models.ChoiceKindMCQ,
			ID:   fmt.Sprintf("%s-opt-%d", label, i),
			Text: fmt.Sprintf("Option %d", i),
		})
	}

	return models.Question{
		Description: fmt.Sprintf("MCQ %s", label),
		Type:        models.QuestionTypeMCQ,
		Choices:     datatypes.NewJSONSlice(choices),
		Answer:      datatypes.NewJSONType(choices[0]),
		Score:       models.DefaultMCQScore,
	}
}

// codingQuestion builds a coding question carrying the fixed outcome tiers.
func codingQuestion(label string) models.Question {
	choices := models.NewCodingChoices()

	return models.Question{
		Description: fmt.Sprintf("Coding %s", label),
		Type:        models.QuestionTypeCoding,
		Choices:     datatypes.NewJSONSlice(choices),
		Answer:      datatypes.NewJSONType(choices[0]),
		Score:       models.DefaultCodingScore,
	}
}
