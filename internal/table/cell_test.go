package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-campaigns/internal/core/domain"
)

func numberColumn() Column {
	zero := float64(0)
	return Column{ID: domain.FieldDifficulty, Type: Number, Editable: true, Min: &zero}
}

func TestCellCommitNumber(t *testing.T) {
	cell := NewCell(numberColumn(), 5.0)
	var calls []any
	cell.OnCommit = func(columnID string, value any) {
		assert.Equal(t, domain.FieldDifficulty, columnID)
		calls = append(calls, value)
	}

	cell.BeginEdit()
	assert.Equal(t, Editing, cell.State())
	assert.Equal(t, "5", cell.Draft())

	cell.SetDraft("42")
	value, changed := cell.Commit()
	assert.Equal(t, Viewing, cell.State())
	assert.True(t, changed)
	assert.Equal(t, 42.0, value)
	require.Len(t, calls, 1)
	assert.Equal(t, 42.0, calls[0])
}

func TestCellCommitIdempotent(t *testing.T) {
	cell := NewCell(numberColumn(), 5.0)
	fired := 0
	cell.OnCommit = func(string, any) { fired++ }

	cell.BeginEdit()
	cell.SetDraft("42")
	cell.Commit()
	require.Equal(t, 1, fired)

	// Committing the same value again must fire nothing.
	cell.BeginEdit()
	_, changed := cell.Commit()
	assert.False(t, changed)
	assert.Equal(t, 1, fired)
}

func TestCellNumberCoercion(t *testing.T) {
	t.Run("empty becomes nil", func(t *testing.T) {
		cell := NewCell(numberColumn(), 5.0)
		cell.BeginEdit()
		cell.SetDraft("")
		value, changed := cell.Commit()
		assert.True(t, changed)
		assert.Nil(t, value)
	})

	t.Run("non-numeric reverts", func(t *testing.T) {
		cell := NewCell(numberColumn(), 5.0)
		fired := 0
		cell.OnCommit = func(string, any) { fired++ }
		cell.BeginEdit()
		cell.SetDraft("abc")
		_, changed := cell.Commit()
		assert.False(t, changed)
		assert.Equal(t, 5.0, cell.Value())
		assert.Equal(t, 0, fired)
	})

	t.Run("below minimum clamps", func(t *testing.T) {
		cell := NewCell(numberColumn(), 5.0)
		cell.BeginEdit()
		cell.SetDraft("-3")
		value, changed := cell.Commit()
		assert.True(t, changed)
		assert.Equal(t, 0.0, value)
	})
}

func TestCellTextNullEquality(t *testing.T) {
	col := Column{ID: domain.FieldNote, Type: Text, Editable: true}
	cell := NewCell(col, nil)
	fired := 0
	cell.OnCommit = func(string, any) { fired++ }

	// Committing an empty draft over a nil value is not a change.
	cell.BeginEdit()
	cell.SetDraft("")
	_, changed := cell.Commit()
	assert.False(t, changed)
	assert.Equal(t, 0, fired)

	cell.BeginEdit()
	cell.SetDraft("ranking drops on weekends")
	_, changed = cell.Commit()
	assert.True(t, changed)
	assert.Equal(t, 1, fired)
}

func TestCellDate(t *testing.T) {
	col := Column{ID: domain.FieldStartDate, Type: Date, Editable: true}
	cell := NewCell(col, nil)
	cell.BeginEdit()
	cell.SetDraft("2024-02-10")
	value, changed := cell.Commit()
	require.True(t, changed)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), value)
}

func TestCellCancelReverts(t *testing.T) {
	cell := NewCell(numberColumn(), 5.0)
	fired := 0
	cell.OnCommit = func(string, any) { fired++ }

	cell.BeginEdit()
	cell.SetDraft("99")
	cell.Cancel()
	assert.Equal(t, Viewing, cell.State())
	assert.Equal(t, 5.0, cell.Value())
	assert.Equal(t, 0, fired)
}

func TestCellRefresh(t *testing.T) {
	cell := NewCell(numberColumn(), 5.0)

	// External updates land while viewing.
	cell.Refresh(7.0)
	assert.Equal(t, 7.0, cell.Value())

	// But never clobber an edit in progress.
	cell.BeginEdit()
	cell.SetDraft("8")
	cell.Refresh(99.0)
	value, changed := cell.Commit()
	assert.True(t, changed)
	assert.Equal(t, 8.0, value)
}

func TestCellReadOnlyColumnNeverEdits(t *testing.T) {
	col := Column{ID: ColCost, Type: Number, Computed: true}
	cell := NewCell(col, 10.0)
	cell.BeginEdit()
	assert.Equal(t, Viewing, cell.State())
}
