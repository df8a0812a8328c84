// Package table implements the campaign table interaction engine: column
// definitions, the per-cell edit state machine, click-to-filter and sort
// view state, and the single/double-click arbiter. It holds no durable
// state; commits are dispatched through a callback supplied by the caller.
package table

import "keyword-campaigns/internal/core/domain"

// CellType selects the coercion and validation behaviour of a column. It
// is fixed at column-definition time and never inferred from values.
type CellType int

const (
	Text CellType = iota
	Number
	Date
	Select
)

// FilterKind declares how a column reacts to click-to-filter. Columns with
// NoFilter never arm the click timer.
type FilterKind int

const (
	NoFilter FilterKind = iota
	// ExactFilter keeps rows whose value equals the clicked value.
	ExactFilter
	// RangeFilter keeps rows within clicked value +/- the configured
	// tolerance.
	RangeFilter
)

// Column describes one table column. Computed columns are rendered from
// derived metrics, are never editable and never participate in filtering.
type Column struct {
	ID       string
	Title    string
	Type     CellType
	Editable bool
	Computed bool
	Filter   FilterKind
	Sortable bool
	// Min clamps committed number drafts from below.
	Min *float64
	// Options are the suggested values for Select columns.
	Options []string
}

// Column ids of the computed columns.
const (
	ColEndDate       = "endDate"
	ColRankBoost     = "rankBoost"
	ColTotalInstalls = "totalInstalls"
	ColCost          = "cost"
	ColEffectiveness = "effectiveness"
)

// Columns returns the fixed column set, editable columns first, computed
// columns last. Declared once; the controller copies it per instance.
func Columns() []Column {
	zero := float64(0)
	min0 := &zero
	cols := []Column{
		{ID: domain.FieldCountry, Title: "Land", Type: Select, Editable: true, Filter: ExactFilter, Sortable: true, Options: domain.Countries()},
		{ID: domain.FieldKeyword, Title: "Keyword", Type: Text, Editable: true, Filter: ExactFilter, Sortable: true},
		{ID: domain.FieldStartDate, Title: "Startdatum", Type: Date, Editable: true, Sortable: true},
		{ID: domain.FieldDifficulty, Title: "Difficulty", Type: Number, Editable: true, Filter: RangeFilter, Sortable: true, Min: min0},
		{ID: domain.FieldCurrentRank, Title: "Current Rank", Type: Number, Editable: true, Filter: RangeFilter, Sortable: true, Min: min0},
		{ID: domain.FieldEndRank, Title: "End Rank", Type: Number, Editable: true, Filter: RangeFilter, Sortable: true, Min: min0},
		{ID: domain.FieldCampaignType, Title: "Campaign Type", Type: Select, Editable: true, Filter: ExactFilter, Sortable: true, Options: domain.CampaignTypes()},
	}
	for i, day := range []string{domain.FieldDay1, domain.FieldDay2, domain.FieldDay3, domain.FieldDay4, domain.FieldDay5} {
		cols = append(cols, Column{
			ID: day, Title: "Day " + string(rune('1'+i)), Type: Number,
			Editable: true, Sortable: true, Min: min0,
		})
	}
	cols = append(cols,
		Column{ID: domain.FieldNote, Title: "Note", Type: Text, Editable: true},
		Column{ID: ColEndDate, Title: "End Date", Type: Date, Computed: true, Sortable: true},
		Column{ID: ColRankBoost, Title: "Rank Boost", Type: Number, Computed: true, Sortable: true},
		Column{ID: ColTotalInstalls, Title: "Total Installs", Type: Number, Computed: true, Sortable: true},
		Column{ID: ColCost, Title: "Cost", Type: Number, Computed: true, Sortable: true},
		Column{ID: ColEffectiveness, Title: "Effectiveness", Type: Number, Computed: true},
	)
	return cols
}

// toleranceFor maps a range-filterable column to its configured tolerance.
func toleranceFor(columnID string, s domain.Settings) (float64, bool) {
	switch columnID {
	case domain.FieldDifficulty:
		return s.ToleranceDifficulty, true
	case domain.FieldCurrentRank, domain.FieldEndRank:
		return s.ToleranceRank, true
	}
	return 0, false
}
