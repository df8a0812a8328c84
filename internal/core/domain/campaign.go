package domain

import "time"

// Known values for the country column. The column accepts free strings as
// well, so these are suggestions rather than a closed set.
const (
	CountryGermany     = "Germany"
	CountryUSA         = "USA"
	CountrySwitzerland = "Switzerland"
	CountryAustria     = "Austria"
)

// Known values for the campaign-type column.
const (
	TypeKick        = "Kick"
	TypeLinear      = "Linear"
	TypeExponential = "Exponential"
	TypeParabolic   = "Parabolic"
)

// Campaign is a single keyword-ranking campaign owned by one user.
// Pointer fields are nullable: nil means the value was never entered,
// which is distinct from an explicit zero. Derived values (end date,
// rank boost, total installs, cost, effectiveness) are never stored;
// they are recomputed from these fields on every read.
type Campaign struct {
	ID      string
	OwnerID string

	Country      string
	Keyword      string
	StartDate    *time.Time
	Difficulty   *float64
	CurrentRank  *float64
	EndRank      *float64
	CampaignType string
	Day1         *int64
	Day2         *int64
	Day3         *int64
	Day4         *int64
	Day5         *int64
	Note         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Days returns the five daily install counters in order.
func (c Campaign) Days() [5]*int64 {
	return [5]*int64{c.Day1, c.Day2, c.Day3, c.Day4, c.Day5}
}

// NewCampaignInput is the minimal set of attributes required to create a
// campaign. Everything else starts null/empty.
type NewCampaignInput struct {
	Country     string
	Keyword     string
	Difficulty  *float64
	CurrentRank *float64
}

// Countries lists the suggested country values for select cells.
func Countries() []string {
	return []string{CountryGermany, CountryUSA, CountrySwitzerland, CountryAustria}
}

// CampaignTypes lists the suggested campaign-type values for select cells.
func CampaignTypes() []string {
	return []string{TypeKick, TypeLinear, TypeExponential, TypeParabolic}
}
