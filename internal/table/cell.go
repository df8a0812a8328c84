package table

// State is the edit state of a cell.
type State int

const (
	Viewing State = iota
	Editing
)

// Cell is the per-cell edit state machine. It starts in Viewing. Entering
// Editing seeds a draft from the committed value; keystrokes change only
// the draft; Commit coerces and publishes the draft; Cancel discards it.
// A Cell is not safe for concurrent use, the controller serialises access.
type Cell struct {
	col       Column
	state     State
	committed any
	draft     string

	// OnCommit, when set, is invoked exactly once per commit that changed
	// the value, with the column id and the coerced value.
	OnCommit func(columnID string, value any)
}

// NewCell returns a cell in Viewing state holding the committed value.
func NewCell(col Column, committed any) *Cell {
	return &Cell{col: col, committed: committed}
}

func (c *Cell) State() State   { return c.state }
func (c *Cell) Column() Column { return c.col }

// Value returns the committed value, which may be ahead of the store while
// an optimistic update is in flight.
func (c *Cell) Value() any { return c.committed }

// Draft returns the in-progress draft. Meaningful only while Editing.
func (c *Cell) Draft() string { return c.draft }

// BeginEdit moves Viewing -> Editing and seeds the draft from the
// committed value. No-op while already editing or on a read-only cell.
func (c *Cell) BeginEdit() {
	if c.state == Editing || !c.col.Editable {
		return
	}
	c.state = Editing
	c.draft = FormatValue(c.committed)
}

// SetDraft replaces the draft. Ignored outside Editing.
func (c *Cell) SetDraft(draft string) {
	if c.state != Editing {
		return
	}
	c.draft = draft
}

// Commit leaves Editing, coerces the draft and reports whether the value
// changed under null-aware comparison. An unchanged commit fires no
// callback; a changed one fires OnCommit once.
func (c *Cell) Commit() (value any, changed bool) {
	if c.state != Editing {
		return c.committed, false
	}
	c.state = Viewing
	v := c.col.Coerce(c.draft, c.committed)
	if nullEqual(v, c.committed) {
		return c.committed, false
	}
	c.committed = v
	if c.OnCommit != nil {
		c.OnCommit(c.col.ID, v)
	}
	return v, true
}

// Cancel leaves Editing and reverts the draft to the committed value.
// No callback fires.
func (c *Cell) Cancel() {
	if c.state != Editing {
		return
	}
	c.state = Viewing
	c.draft = FormatValue(c.committed)
}

// Refresh replaces the committed value after an external update. An
// in-progress edit is never clobbered; the refresh is dropped and the next
// one after the edit ends wins.
func (c *Cell) Refresh(v any) {
	if c.state == Editing {
		return
	}
	c.committed = v
}
