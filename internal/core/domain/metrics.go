package domain

import (
	"errors"
	"time"
)

// ErrEffectivenessNotDefined marks the effectiveness metric as not yet
// specified. Callers that want to render the column must treat this error
// as "no formula" rather than "no data".
var ErrEffectivenessNotDefined = errors.New("effectiveness formula not defined")

// Metrics holds the display values derived from a campaign. Nil means the
// metric cannot be computed from the data entered so far.
type Metrics struct {
	EndDate       *time.Time
	RankBoost     *float64
	TotalInstalls *int64
	Cost          *float64
	Effectiveness *float64
}

// ComputeMetrics derives all metrics for one campaign. Effectiveness is
// always nil until a formula exists, see CalculateEffectiveness.
func ComputeMetrics(c Campaign, s Settings) Metrics {
	total := CalculateTotalInstalls(c)
	eff, _ := CalculateEffectiveness(c)
	return Metrics{
		EndDate:       CalculateEndDate(c.StartDate, CountActiveDays(c)),
		RankBoost:     CalculateRankBoost(c.CurrentRank, c.EndRank),
		TotalInstalls: total,
		Cost:          CalculateCost(total, s.CostPerInstall),
		Effectiveness: eff,
	}
}

// CountActiveDays counts the daily counters that hold a non-negative
// value. An entered zero counts as active, an empty slot does not.
func CountActiveDays(c Campaign) int {
	n := 0
	for _, d := range c.Days() {
		if d != nil && *d >= 0 {
			n++
		}
	}
	return n
}

// CalculateEndDate returns the last campaign day, counting the start date
// itself as day 1. Nil when there is no start date or no active days.
func CalculateEndDate(startDate *time.Time, activeDays int) *time.Time {
	if startDate == nil || activeDays <= 0 {
		return nil
	}
	end := startDate.AddDate(0, 0, activeDays-1)
	return &end
}

// CalculateRankBoost returns currentRank - endRank. Lower rank numbers are
// better, so a positive boost is an improvement. Nil unless both ranks are
// present and positive.
func CalculateRankBoost(currentRank, endRank *float64) *float64 {
	if currentRank == nil || endRank == nil || *currentRank <= 0 || *endRank <= 0 {
		return nil
	}
	boost := *currentRank - *endRank
	return &boost
}

// CalculateTotalInstalls sums the five daily counters, treating empty slots
// as zero. It returns nil only when no counter was ever set, so "no data
// entered" stays distinguishable from "zero installs recorded".
func CalculateTotalInstalls(c Campaign) *int64 {
	var (
		sum int64
		any bool
	)
	for _, d := range c.Days() {
		if d == nil {
			continue
		}
		any = true
		sum += *d
	}
	if !any {
		return nil
	}
	return &sum
}

// CalculateCost multiplies total installs by the configured cost per
// install. Nil when either input is missing.
func CalculateCost(totalInstalls *int64, costPerInstall *float64) *float64 {
	if totalInstalls == nil || costPerInstall == nil {
		return nil
	}
	cost := float64(*totalInstalls) * *costPerInstall
	return &cost
}

// CalculateEffectiveness is a placeholder. The formula was never defined
// upstream, so this returns ErrEffectivenessNotDefined instead of guessing
// one; the sentinel keeps "no formula" distinguishable from a metric that
// is nil for lack of data.
func CalculateEffectiveness(Campaign) (*float64, error) {
	return nil, ErrEffectivenessNotDefined
}
