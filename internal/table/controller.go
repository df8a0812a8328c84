package table

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"keyword-campaigns/internal/core/domain"
)

// CommitFunc propagates a changed cell to the collection store.
type CommitFunc func(ctx context.Context, recordID, field string, value any) error

// Row is one rendered table row: committed editable values plus the
// derived metric columns, keyed by column id.
type Row struct {
	ID    string
	Cells map[string]any
}

// Controller assembles the fixed column set, owns the per-session view
// state and cell machines, and disambiguates click-to-filter from
// double-click-to-edit. One controller per session; Close releases its
// timers.
type Controller struct {
	commit  CommitFunc
	arbiter *ClickArbiter
	columns []Column
	byID    map[string]Column

	mu        sync.Mutex
	settings  domain.Settings
	view      ViewState
	cells     map[string]*Cell
	campaigns []domain.Campaign
}

// NewController builds a controller with the given settings and click
// window (<= 0 selects the default). commit may be nil for a read-only
// view.
func NewController(settings domain.Settings, window time.Duration, commit CommitFunc) *Controller {
	cols := Columns()
	byID := make(map[string]Column, len(cols))
	for _, c := range cols {
		byID[c.ID] = c
	}
	return &Controller{
		commit:   commit,
		arbiter:  NewClickArbiter(window),
		columns:  cols,
		byID:     byID,
		settings: settings,
		cells:    make(map[string]*Cell),
	}
}

// Columns returns the column declarations in display order.
func (t *Controller) Columns() []Column {
	return slices.Clone(t.columns)
}

// SetSettings replaces the settings used for tolerances and cost.
func (t *Controller) SetSettings(s domain.Settings) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settings = s
}

// SetCampaigns replaces the displayed collection. Existing cell machines
// are refreshed with the new committed values; cells being edited keep
// their draft untouched. Cells of records that disappeared are dropped.
func (t *Controller) SetCampaigns(cs []domain.Campaign) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.campaigns = slices.Clone(cs)
	index := make(map[string]domain.Campaign, len(cs))
	for _, c := range cs {
		index[c.ID] = c
	}
	for key, cell := range t.cells {
		recordID, columnID, ok := strings.Cut(key, "/")
		if !ok {
			continue
		}
		c, found := index[recordID]
		if !found {
			delete(t.cells, key)
			continue
		}
		cell.Refresh(campaignValue(c, columnID))
	}
}

// Click handles a pointer click on a body cell. Only filterable columns
// arm the disambiguation timer: a lone click toggles the column filter
// with the clicked value, a second click inside the window suppresses the
// filter action and starts editing instead.
func (t *Controller) Click(recordID, columnID string, value any) {
	col, ok := t.byID[columnID]
	if !ok || col.Filter == NoFilter {
		return
	}
	t.arbiter.Click(recordID+"/"+columnID,
		func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.view.ToggleFilter(col, value, t.settings)
		},
		func() {
			t.BeginEdit(recordID, columnID)
		},
	)
}

// ToggleSort handles a header click on a sortable column, advancing the
// three-state cycle.
func (t *Controller) ToggleSort(columnID string) {
	col, ok := t.byID[columnID]
	if !ok || !col.Sortable {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.view.ToggleSort(columnID)
}

// Filters returns the active filters.
func (t *Controller) Filters() []Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view.Filters()
}

// SortSpec returns the active sort, or nil.
func (t *Controller) SortSpec() *Sort {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view.Sort()
}

// BeginEdit starts editing a cell. Used directly by double-click gestures
// on editable columns that are not filterable.
func (t *Controller) BeginEdit(recordID, columnID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cell := t.cellFor(recordID, columnID); cell != nil {
		cell.BeginEdit()
	}
}

// SetDraft updates the draft of a cell being edited.
func (t *Controller) SetDraft(recordID, columnID, draft string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cell, ok := t.cells[recordID+"/"+columnID]; ok {
		cell.SetDraft(draft)
	}
}

// CommitCell finishes an edit (blur or Enter). When the coerced draft
// differs from the committed value the change is dispatched through the
// commit callback; otherwise nothing is sent.
func (t *Controller) CommitCell(ctx context.Context, recordID, columnID string) error {
	t.mu.Lock()
	cell, ok := t.cells[recordID+"/"+columnID]
	if !ok {
		t.mu.Unlock()
		return nil
	}
	value, changed := cell.Commit()
	t.mu.Unlock()
	if !changed || t.commit == nil {
		return nil
	}
	return t.commit(ctx, recordID, columnID, value)
}

// CancelEdit aborts an edit (Escape), reverting the draft.
func (t *Controller) CancelEdit(recordID, columnID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cell, ok := t.cells[recordID+"/"+columnID]; ok {
		cell.Cancel()
	}
}

// Cell returns the cell machine for one record/column, or nil when the
// column is not editable or the record is unknown.
func (t *Controller) Cell(recordID, columnID string) *Cell {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cellFor(recordID, columnID)
}

// Rows renders the collection through the active filters and sort. Derived
// metrics are recomputed on every call.
func (t *Controller) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]Row, 0, len(t.campaigns))
	for _, c := range t.campaigns {
		cells := rowCells(c, t.settings)
		if !t.view.Matches(cells) {
			continue
		}
		rows = append(rows, Row{ID: c.ID, Cells: cells})
	}
	if s := t.view.Sort(); s != nil && s.Direction != SortNone {
		slices.SortStableFunc(rows, func(x, y Row) int {
			a, b := x.Cells[s.Column], y.Cells[s.Column]
			// Empty cells sort last in either direction.
			switch {
			case isEmpty(a) && isEmpty(b):
				return 0
			case isEmpty(a):
				return 1
			case isEmpty(b):
				return -1
			}
			c := compareCells(a, b)
			if s.Direction == SortDesc {
				c = -c
			}
			return c
		})
	}
	return rows
}

// Close cancels the pending click timers. The controller must not be used
// afterwards.
func (t *Controller) Close() {
	t.arbiter.Stop()
}

// cellFor lazily creates the cell machine for an editable column, seeded
// from the current collection. Caller holds t.mu.
func (t *Controller) cellFor(recordID, columnID string) *Cell {
	key := recordID + "/" + columnID
	if cell, ok := t.cells[key]; ok {
		return cell
	}
	col, ok := t.byID[columnID]
	if !ok || !col.Editable {
		return nil
	}
	idx := slices.IndexFunc(t.campaigns, func(c domain.Campaign) bool { return c.ID == recordID })
	if idx < 0 {
		return nil
	}
	cell := NewCell(col, campaignValue(t.campaigns[idx], columnID))
	t.cells[key] = cell
	return cell
}

// campaignValue extracts the committed cell value of an editable column.
func campaignValue(c domain.Campaign, columnID string) any {
	switch columnID {
	case domain.FieldCountry:
		return textValue(c.Country)
	case domain.FieldKeyword:
		return textValue(c.Keyword)
	case domain.FieldStartDate:
		return timeValue(c.StartDate)
	case domain.FieldDifficulty:
		return floatValue(c.Difficulty)
	case domain.FieldCurrentRank:
		return floatValue(c.CurrentRank)
	case domain.FieldEndRank:
		return floatValue(c.EndRank)
	case domain.FieldCampaignType:
		return textValue(c.CampaignType)
	case domain.FieldDay1:
		return counterValue(c.Day1)
	case domain.FieldDay2:
		return counterValue(c.Day2)
	case domain.FieldDay3:
		return counterValue(c.Day3)
	case domain.FieldDay4:
		return counterValue(c.Day4)
	case domain.FieldDay5:
		return counterValue(c.Day5)
	case domain.FieldNote:
		return textValue(c.Note)
	}
	return nil
}

// rowCells builds the full cell map for one campaign, editable and
// computed columns alike.
func rowCells(c domain.Campaign, s domain.Settings) map[string]any {
	m := make(map[string]any, 18)
	for _, f := range domain.EditableFields() {
		m[f] = campaignValue(c, f)
	}
	metrics := domain.ComputeMetrics(c, s)
	m[ColEndDate] = timeValue(metrics.EndDate)
	m[ColRankBoost] = floatValue(metrics.RankBoost)
	m[ColTotalInstalls] = counterValue(metrics.TotalInstalls)
	m[ColCost] = floatValue(metrics.Cost)
	m[ColEffectiveness] = floatValue(metrics.Effectiveness)
	return m
}

func textValue(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func floatValue(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func counterValue(p *int64) any {
	if p == nil {
		return nil
	}
	return float64(*p)
}

func timeValue(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

// compareCells orders two non-empty cell values: numbers numerically,
// dates chronologically, everything else by formatted string.
func compareCells(a, b any) int {
	if na, okA := toNumber(a); okA {
		if nb, okB := toNumber(b); okB {
			return cmp.Compare(na, nb)
		}
	}
	if ta, okA := a.(time.Time); okA {
		if tb, okB := b.(time.Time); okB {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}
