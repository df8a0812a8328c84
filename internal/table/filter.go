package table

import (
	"slices"

	"keyword-campaigns/internal/core/domain"
)

// FilterRange decides row inclusion for a range filter. filterValue is
// expected to be a two-number [anchor, tolerance] pair; the row is kept
// when anchor-tolerance <= rowValue <= anchor+tolerance, both ends
// inclusive. Any malformed input keeps the row: a broken filter must never
// hide data.
func FilterRange(rowValue, filterValue any) bool {
	rv, ok := toNumber(rowValue)
	if !ok {
		return true
	}
	anchor, tolerance, ok := rangePair(filterValue)
	if !ok {
		return true
	}
	return rv >= anchor-tolerance && rv <= anchor+tolerance
}

func rangePair(v any) (anchor, tolerance float64, ok bool) {
	switch pair := v.(type) {
	case []float64:
		if len(pair) != 2 {
			return 0, 0, false
		}
		return pair[0], pair[1], true
	case []any:
		if len(pair) != 2 {
			return 0, 0, false
		}
		a, okA := toNumber(pair[0])
		t, okT := toNumber(pair[1])
		if !okA || !okT {
			return 0, 0, false
		}
		return a, t, true
	}
	return 0, 0, false
}

// SortDirection is one step of the none -> asc -> desc -> none cycle.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// Filter is one active column filter. Value is the clicked value for
// ExactFilter columns or a []float64{anchor, tolerance} pair for
// RangeFilter columns.
type Filter struct {
	Column string
	Kind   FilterKind
	Value  any
}

// Sort is the single-column sort specification.
type Sort struct {
	Column    string
	Direction SortDirection
}

// ViewState holds the ephemeral per-session filter and sort state. At most
// one filter per column; re-adding a column's filter removes it instead.
type ViewState struct {
	filters []Filter
	sort    *Sort
}

// Filters returns a copy of the active filters.
func (v *ViewState) Filters() []Filter {
	return slices.Clone(v.filters)
}

// Sort returns the active sort, or nil.
func (v *ViewState) Sort() *Sort {
	if v.sort == nil {
		return nil
	}
	s := *v.sort
	return &s
}

// ToggleFilter applies the click-to-filter action for a column. A second
// click on a column that already has a filter removes it, whatever value
// was clicked. Range columns require a numeric clicked value and a
// configured tolerance; otherwise the click is ignored.
func (v *ViewState) ToggleFilter(col Column, clicked any, s domain.Settings) {
	if col.Filter == NoFilter {
		return
	}
	for i, f := range v.filters {
		if f.Column == col.ID {
			v.filters = slices.Delete(v.filters, i, i+1)
			return
		}
	}
	switch col.Filter {
	case RangeFilter:
		anchor, ok := toNumber(clicked)
		if !ok {
			return
		}
		tolerance, ok := toleranceFor(col.ID, s)
		if !ok {
			return
		}
		v.filters = append(v.filters, Filter{Column: col.ID, Kind: RangeFilter, Value: []float64{anchor, tolerance}})
	case ExactFilter:
		v.filters = append(v.filters, Filter{Column: col.ID, Kind: ExactFilter, Value: clicked})
	}
}

// ToggleSort advances the column through the three-state sort cycle.
// Sorting a different column replaces the previous specification.
func (v *ViewState) ToggleSort(columnID string) {
	if v.sort == nil || v.sort.Column != columnID {
		v.sort = &Sort{Column: columnID, Direction: SortAsc}
		return
	}
	switch v.sort.Direction {
	case SortAsc:
		v.sort.Direction = SortDesc
	default:
		v.sort = nil
	}
}

// Matches reports whether a row passes every active filter. Unknown
// columns and malformed filters fail open.
func (v *ViewState) Matches(cells map[string]any) bool {
	for _, f := range v.filters {
		val := cells[f.Column]
		switch f.Kind {
		case RangeFilter:
			if !FilterRange(val, f.Value) {
				return false
			}
		case ExactFilter:
			if !nullEqual(val, f.Value) {
				return false
			}
		}
	}
	return true
}
