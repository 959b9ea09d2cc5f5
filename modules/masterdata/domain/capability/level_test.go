package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScale() []Level {
	return []Level{
		{ID: "lvl-1", Label: "Novice", MinScore: 0, MaxScore: 2.5, Color: "#ef4444", Order: 1, IsActive: true},
		{ID: "lvl-2", Label: "Practitioner", MinScore: 2.5, MaxScore: 3.5, Color: "#f59e0b", Order: 2, IsActive: true},
		{ID: "lvl-3", Label: "Expert", MinScore: 3.5, MaxScore: 5, Color: "#22c55e", Order: 3, IsActive: true},
	}
}

func TestValidateLevels(t *testing.T) {
	require.NoError(t, ValidateLevels(validScale()))
	assert.Error(t, ValidateLevels(nil))
}

func TestValidateLevels_MinBelowMax(t *testing.T) {
	scale := validScale()
	scale[0].MaxScore = scale[0].MinScore
	assert.Error(t, ValidateLevels(scale))
}

func TestValidateLevels_RejectsOverlap(t *testing.T) {
	scale := validScale()
	scale[1].MinScore = 2.0 // overlaps Novice's [0, 2.5)
	assert.Error(t, ValidateLevels(scale))
}

func TestValidateLevels_IgnoresInactiveOverlap(t *testing.T) {
	scale := validScale()
	scale = append(scale, Level{
		ID: "lvl-old", Label: "Retired", MinScore: 0, MaxScore: 5, Order: 4, IsActive: false,
	})
	assert.NoError(t, ValidateLevels(scale))
}

func TestLevelFor(t *testing.T) {
	scale := validScale()

	level, ok := LevelFor(scale, 3.0)
	require.True(t, ok)
	assert.Equal(t, "Practitioner", level.Label)

	_, ok = LevelFor(scale, 99)
	assert.False(t, ok)
}
