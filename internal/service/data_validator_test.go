package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/propline/internal/logger"
	"github.com/yourusername/propline/internal/models"
	"github.com/yourusername/propline/internal/statsfeed"
)

func newTestValidator() *DataValidator {
	return NewDataValidator(logger.NewIngestionLogger(quietLogger()))
}

func TestValidateGameLog(t *testing.T) {
	validator := newTestValidator()

	valid := statsfeed.GameLogData{
		PlayerID: 23,
		Sport:    "nba",
		PropType: "points",
		GameDate: time.Now().AddDate(0, 0, -1),
		Value:    27,
	}
	assert.Empty(t, validator.ValidateGameLog(&valid))

	tests := []struct {
		name   string
		mutate func(*statsfeed.GameLogData)
	}{
		{"missing player id", func(l *statsfeed.GameLogData) { l.PlayerID = 0 }},
		{"missing sport", func(l *statsfeed.GameLogData) { l.Sport = "" }},
		{"missing prop type", func(l *statsfeed.GameLogData) { l.PropType = "" }},
		{"zero game date", func(l *statsfeed.GameLogData) { l.GameDate = time.Time{} }},
		{"negative value", func(l *statsfeed.GameLogData) { l.Value = -2 }},
		{"future game date", func(l *statsfeed.GameLogData) { l.GameDate = time.Now().AddDate(0, 0, 7) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := valid
			tt.mutate(&log)
			assert.NotEmpty(t, validator.ValidateGameLog(&log))
		})
	}
}

func TestValidateDefenseRating(t *testing.T) {
	validator := newTestValidator()

	valid := statsfeed.DefenseRatingData{TeamID: 7, Sport: "nba", Season: "2025-26", Tier: 3}
	assert.Empty(t, validator.ValidateDefenseRating(&valid))

	for _, tier := range []int{0, 6, -1} {
		rating := valid
		rating.Tier = tier
		assert.NotEmpty(t, validator.ValidateDefenseRating(&rating))
	}

	missing := valid
	missing.Season = ""
	assert.NotEmpty(t, validator.ValidateDefenseRating(&missing))
}

func TestValidatePropRequest(t *testing.T) {
	validator := newTestValidator()

	valid := models.PropRequest{
		PlayerID:   23,
		PropType:   "points",
		PropLine:   25.5,
		GameValues: []float64{24, 26, 25},
	}
	assert.Empty(t, validator.ValidatePropRequest(&valid))

	noLine := valid
	noLine.PropLine = 0
	assert.Contains(t, validator.ValidatePropRequest(&noLine)[0], "prop_line")

	noValues := valid
	noValues.GameValues = nil
	assert.NotEmpty(t, validator.ValidatePropRequest(&noValues))

	badTier := valid
	tier := 6
	badTier.OpponentTier = &tier
	assert.NotEmpty(t, validator.ValidatePropRequest(&badTier))

	negative := valid
	negative.GameValues = []float64{24, -1, 25}
	assert.NotEmpty(t, validator.ValidatePropRequest(&negative))
}

func TestIsValidSport(t *testing.T) {
	validator := newTestValidator()

	assert.True(t, validator.IsValidSport("nba"))
	assert.True(t, validator.IsValidSport("nfl"))
	assert.False(t, validator.IsValidSport("cricket"))
	assert.False(t, validator.IsValidSport(""))
}

func TestIsValidPropType(t *testing.T) {
	validator := newTestValidator()

	assert.True(t, validator.IsValidPropType("points"))
	assert.True(t, validator.IsValidPropType("passing_yards"))
	assert.False(t, validator.IsValidPropType("triple_doubles"))
}
