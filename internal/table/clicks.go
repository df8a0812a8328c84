package table

import (
	"sync"
	"time"
)

// DefaultClickWindow is the single/double-click disambiguation delay.
const DefaultClickWindow = 200 * time.Millisecond

// ClickArbiter turns raw clicks into single- or double-click actions. The
// first click on a key arms a timer; a second click inside the window
// cancels it and fires the double action, otherwise the timer fires the
// single action. The single action must never run once a double-click
// landed. Stop tears down all pending timers so no callback dangles after
// the owning view is gone.
type ClickArbiter struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

// NewClickArbiter returns an arbiter with the given window; window <= 0
// selects DefaultClickWindow.
func NewClickArbiter(window time.Duration) *ClickArbiter {
	if window <= 0 {
		window = DefaultClickWindow
	}
	return &ClickArbiter{
		window:  window,
		pending: make(map[string]*time.Timer),
	}
}

// Click registers a click on key. single runs after the window elapses
// with no second click; double runs immediately on the second click and
// suppresses single entirely.
func (a *ClickArbiter) Click(key string, single, double func()) {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	if t, ok := a.pending[key]; ok {
		t.Stop()
		delete(a.pending, key)
		a.mu.Unlock()
		if double != nil {
			double()
		}
		return
	}
	var timer *time.Timer
	timer = time.AfterFunc(a.window, func() {
		a.mu.Lock()
		// A second click may have replaced or removed the entry between
		// the timer firing and this lock; only the armed timer may act.
		if a.pending[key] != timer || a.stopped {
			a.mu.Unlock()
			return
		}
		delete(a.pending, key)
		a.mu.Unlock()
		if single != nil {
			single()
		}
	})
	a.pending[key] = timer
	a.mu.Unlock()
}

// Stop cancels every pending timer and rejects further clicks.
func (a *ClickArbiter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	for key, t := range a.pending {
		t.Stop()
		delete(a.pending, key)
	}
}
