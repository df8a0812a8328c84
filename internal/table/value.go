package table

import (
	"strconv"
	"strings"
	"time"

	"keyword-campaigns/internal/core/domain"
)

// Cell values are any of: nil, string, float64, time.Time. Coerce and
// FormatValue are the only places that convert between drafts (strings
// typed into a cell) and values.

// Coerce converts a finished draft into the column's value domain.
// Number: empty becomes nil, a non-numeric draft reverts to the committed
// value, anything below Min clamps to Min. Date: empty becomes nil, a
// malformed date reverts to the committed value. Text/select: empty
// becomes nil.
func (c Column) Coerce(draft string, committed any) any {
	switch c.Type {
	case Number:
		if draft == "" {
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(draft), 64)
		if err != nil {
			return committed
		}
		if c.Min != nil && n < *c.Min {
			n = *c.Min
		}
		return n
	case Date:
		if draft == "" {
			return nil
		}
		t, err := time.Parse(domain.DateLayout, strings.TrimSpace(draft))
		if err != nil {
			return committed
		}
		return t
	default:
		if draft == "" {
			return nil
		}
		return draft
	}
}

// FormatValue renders a cell value as a draft string. Nil renders empty.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(domain.DateLayout)
	default:
		return ""
	}
}

// nullEqual compares two cell values treating nil and the empty string as
// equivalent, so clearing an already-empty cell is not a change.
func nullEqual(a, b any) bool {
	if isEmpty(a) && isEmpty(b) {
		return true
	}
	if isEmpty(a) || isEmpty(b) {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := toNumber(b)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	}
	return a == b
}

func isEmpty(v any) bool {
	return v == nil || v == ""
}

// toNumber widens any numeric cell value to float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
