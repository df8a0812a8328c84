package table

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-campaigns/internal/core/domain"
)

func pf(v float64) *float64 { return &v }
func pi(v int64) *int64     { return &v }

func testCampaigns() []domain.Campaign {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Campaign{
		{
			ID: "a", OwnerID: "u1", Country: "Germany", Keyword: "fitness tracker",
			StartDate: &start, Difficulty: pf(42), CurrentRank: pf(50), EndRank: pf(20),
			Day1: pi(100), Day2: pi(150),
		},
		{
			ID: "b", OwnerID: "u1", Country: "USA", Keyword: "meal planner",
			Difficulty: pf(80), CurrentRank: pf(120),
		},
	}
}

func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.CostPerInstall = pf(0.5)
	return s
}

func newTestController(commit CommitFunc) *Controller {
	ctrl := NewController(testSettings(), testWindow, commit)
	ctrl.SetCampaigns(testCampaigns())
	return ctrl
}

func TestRowsComputesDerivedColumns(t *testing.T) {
	ctrl := newTestController(nil)
	defer ctrl.Close()

	rows := ctrl.Rows()
	require.Len(t, rows, 2)

	a := rows[0].Cells
	assert.Equal(t, "fitness tracker", a[domain.FieldKeyword])
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), a[ColEndDate])
	assert.Equal(t, 30.0, a[ColRankBoost])
	assert.Equal(t, 250.0, a[ColTotalInstalls])
	assert.Equal(t, 125.0, a[ColCost])
	assert.Nil(t, a[ColEffectiveness])

	b := rows[1].Cells
	assert.Nil(t, b[ColEndDate])
	assert.Nil(t, b[ColTotalInstalls])
	assert.Nil(t, b[ColCost])
}

func TestSingleClickTogglesFilter(t *testing.T) {
	ctrl := newTestController(nil)
	defer ctrl.Close()

	ctrl.Click("a", domain.FieldDifficulty, 42.0)
	settle()

	require.Len(t, ctrl.Filters(), 1)
	rows := ctrl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].ID)

	// Clicking the same column again removes the filter.
	ctrl.Click("a", domain.FieldDifficulty, 42.0)
	settle()
	assert.Empty(t, ctrl.Filters())
	assert.Len(t, ctrl.Rows(), 2)
}

func TestDoubleClickEditsInsteadOfFiltering(t *testing.T) {
	ctrl := newTestController(nil)
	defer ctrl.Close()

	ctrl.Click("a", domain.FieldDifficulty, 42.0)
	ctrl.Click("a", domain.FieldDifficulty, 42.0)
	settle()

	// Zero filter invocations: the pending filter action was suppressed.
	assert.Empty(t, ctrl.Filters())
	cell := ctrl.Cell("a", domain.FieldDifficulty)
	require.NotNil(t, cell)
	assert.Equal(t, Editing, cell.State())
	assert.Equal(t, "42", cell.Draft())
}

func TestNonFilterableColumnsNeverArmTheTimer(t *testing.T) {
	ctrl := newTestController(nil)
	defer ctrl.Close()

	ctrl.Click("a", domain.FieldNote, "x")
	ctrl.Click("a", ColCost, 10.0)
	settle()

	assert.Empty(t, ctrl.Filters())
	// No cell was put into edit mode either; note cells edit via BeginEdit.
	if cell := ctrl.Cell("a", domain.FieldNote); cell != nil {
		assert.Equal(t, Viewing, cell.State())
	}
}

func TestCommitCellDispatchesOnce(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	ctrl := newTestController(func(_ context.Context, recordID, field string, value any) error {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, recordID+"/"+field)
		assert.Equal(t, 55.0, value)
		return nil
	})
	defer ctrl.Close()

	ctrl.BeginEdit("a", domain.FieldDifficulty)
	ctrl.SetDraft("a", domain.FieldDifficulty, "55")
	require.NoError(t, ctrl.CommitCell(context.Background(), "a", domain.FieldDifficulty))
	require.Equal(t, []string{"a/difficulty"}, calls)

	// Committing the unchanged value again sends nothing.
	ctrl.BeginEdit("a", domain.FieldDifficulty)
	require.NoError(t, ctrl.CommitCell(context.Background(), "a", domain.FieldDifficulty))
	assert.Len(t, calls, 1)
}

func TestCancelEditSendsNothing(t *testing.T) {
	fired := 0
	ctrl := newTestController(func(context.Context, string, string, any) error {
		fired++
		return nil
	})
	defer ctrl.Close()

	ctrl.BeginEdit("a", domain.FieldKeyword)
	ctrl.SetDraft("a", domain.FieldKeyword, "something else")
	ctrl.CancelEdit("a", domain.FieldKeyword)
	require.NoError(t, ctrl.CommitCell(context.Background(), "a", domain.FieldKeyword))
	assert.Equal(t, 0, fired)
}

func TestSetCampaignsRefreshesButNotDuringEdit(t *testing.T) {
	ctrl := newTestController(nil)
	defer ctrl.Close()

	ctrl.BeginEdit("a", domain.FieldKeyword)
	ctrl.SetDraft("a", domain.FieldKeyword, "draft in progress")

	updated := testCampaigns()
	updated[0].Keyword = "changed externally"
	updated[1].Keyword = "also changed"
	ctrl.SetCampaigns(updated)

	// The edited cell kept its draft, the viewing cell refreshed.
	assert.Equal(t, "draft in progress", ctrl.Cell("a", domain.FieldKeyword).Draft())
	assert.Equal(t, "also changed", ctrl.Cell("b", domain.FieldKeyword).Value())
}

func TestSortCycleOrdersRows(t *testing.T) {
	ctrl := newTestController(nil)
	defer ctrl.Close()

	ctrl.ToggleSort(domain.FieldDifficulty)
	rows := ctrl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID)

	ctrl.ToggleSort(domain.FieldDifficulty)
	rows = ctrl.Rows()
	assert.Equal(t, "b", rows[0].ID)

	ctrl.ToggleSort(domain.FieldDifficulty)
	assert.Nil(t, ctrl.SortSpec())
}

func TestSortPutsEmptyCellsLast(t *testing.T) {
	ctrl := newTestController(nil)
	defer ctrl.Close()

	// Campaign b has no start date.
	ctrl.ToggleSort(domain.FieldStartDate)
	rows := ctrl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID)

	ctrl.ToggleSort(domain.FieldStartDate)
	rows = ctrl.Rows()
	assert.Equal(t, "a", rows[0].ID, "empty cells stay last on descending sort too")
}
