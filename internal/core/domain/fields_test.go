package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetField(t *testing.T) {
	var c Campaign

	require.NoError(t, SetField(&c, FieldKeyword, "fitness tracker"))
	assert.Equal(t, "fitness tracker", c.Keyword)

	require.NoError(t, SetField(&c, FieldDifficulty, 42.0))
	require.NotNil(t, c.Difficulty)
	assert.Equal(t, 42.0, *c.Difficulty)

	// Clearing a numeric field.
	require.NoError(t, SetField(&c, FieldDifficulty, nil))
	assert.Nil(t, c.Difficulty)

	// Counters are stored as integers whatever numeric type arrives.
	require.NoError(t, SetField(&c, FieldDay3, 120.0))
	require.NotNil(t, c.Day3)
	assert.Equal(t, int64(120), *c.Day3)

	// Dates arrive as wire strings or as time.Time.
	require.NoError(t, SetField(&c, FieldStartDate, "2024-05-01"))
	require.NotNil(t, c.StartDate)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *c.StartDate)

	require.NoError(t, SetField(&c, FieldNote, nil))
	assert.Equal(t, "", c.Note)
}

func TestSetFieldRejectsBadInput(t *testing.T) {
	var c Campaign
	assert.Error(t, SetField(&c, "nonsense", "x"))
	assert.Error(t, SetField(&c, FieldDifficulty, "not a number"))
	assert.Error(t, SetField(&c, FieldStartDate, "01.05.2024"))
	assert.Error(t, SetField(&c, FieldKeyword, 12.0))
}
