package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int64) *int64      { return &n }
func num(v float64) *float64  { return &v }
func date(s string) *time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCountActiveDays(t *testing.T) {
	tests := []struct {
		name string
		c    Campaign
		want int
	}{
		{"no days entered", Campaign{}, 0},
		{"zero counts as active", Campaign{Day1: day(0), Day3: day(3)}, 2},
		{"all five", Campaign{Day1: day(1), Day2: day(2), Day3: day(3), Day4: day(4), Day5: day(5)}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountActiveDays(tt.c)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 5)
		})
	}
}

func TestCalculateEndDate(t *testing.T) {
	got := CalculateEndDate(date("2024-01-01"), 5)
	require.NotNil(t, got)
	// The start date counts as day 1.
	assert.Equal(t, *date("2024-01-05"), *got)

	assert.Nil(t, CalculateEndDate(nil, 5))
	assert.Nil(t, CalculateEndDate(date("2024-01-01"), 0))
	assert.Nil(t, CalculateEndDate(date("2024-01-01"), -1))
}

func TestCalculateRankBoost(t *testing.T) {
	got := CalculateRankBoost(num(50), num(30))
	require.NotNil(t, got)
	assert.Equal(t, 20.0, *got)

	got = CalculateRankBoost(num(30), num(50))
	require.NotNil(t, got)
	assert.Equal(t, -20.0, *got)

	assert.Nil(t, CalculateRankBoost(nil, num(50)))
	assert.Nil(t, CalculateRankBoost(num(50), nil))
	assert.Nil(t, CalculateRankBoost(num(0), num(50)))
	assert.Nil(t, CalculateRankBoost(num(50), num(0)))
}

func TestCalculateTotalInstalls(t *testing.T) {
	// Nil only when no counter was ever set.
	assert.Nil(t, CalculateTotalInstalls(Campaign{}))

	c := Campaign{Day1: day(0), Day3: day(3)}
	got := CalculateTotalInstalls(c)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), *got)
	assert.Equal(t, 2, CountActiveDays(c))

	// An explicit zero is data, not absence.
	got = CalculateTotalInstalls(Campaign{Day2: day(0)})
	require.NotNil(t, got)
	assert.Equal(t, int64(0), *got)
}

func TestCalculateCost(t *testing.T) {
	total := int64(200)
	got := CalculateCost(&total, num(0.15))
	require.NotNil(t, got)
	assert.InDelta(t, 30.0, *got, 1e-9)

	assert.Nil(t, CalculateCost(nil, num(0.15)))
	assert.Nil(t, CalculateCost(&total, nil))
}

func TestCalculateEffectiveness(t *testing.T) {
	got, err := CalculateEffectiveness(Campaign{Day1: day(100)})
	assert.Nil(t, got)
	if !errors.Is(err, ErrEffectivenessNotDefined) {
		t.Fatalf("expected ErrEffectivenessNotDefined, got %v", err)
	}
}

func TestComputeMetrics(t *testing.T) {
	c := Campaign{
		StartDate:   date("2024-03-01"),
		CurrentRank: num(80),
		EndRank:     num(25),
		Day1:        day(100),
		Day2:        day(150),
		Day3:        day(0),
	}
	s := DefaultSettings()
	s.CostPerInstall = num(0.2)

	m := ComputeMetrics(c, s)
	require.NotNil(t, m.EndDate)
	assert.Equal(t, *date("2024-03-03"), *m.EndDate)
	require.NotNil(t, m.RankBoost)
	assert.Equal(t, 55.0, *m.RankBoost)
	require.NotNil(t, m.TotalInstalls)
	assert.Equal(t, int64(250), *m.TotalInstalls)
	require.NotNil(t, m.Cost)
	assert.InDelta(t, 50.0, *m.Cost, 1e-9)
	assert.Nil(t, m.Effectiveness)
}
