package table

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testWindow = 20 * time.Millisecond

// settle waits long enough for any armed timer to have fired.
func settle() { time.Sleep(5 * testWindow) }

func TestSingleClickFiresAfterWindow(t *testing.T) {
	a := NewClickArbiter(testWindow)
	defer a.Stop()
	var single, double atomic.Int32

	a.Click("r1/difficulty", func() { single.Add(1) }, func() { double.Add(1) })
	settle()

	assert.Equal(t, int32(1), single.Load())
	assert.Equal(t, int32(0), double.Load())
}

func TestDoubleClickSuppressesSingle(t *testing.T) {
	a := NewClickArbiter(testWindow)
	defer a.Stop()
	var single, double atomic.Int32

	onSingle := func() { single.Add(1) }
	onDouble := func() { double.Add(1) }
	a.Click("r1/difficulty", onSingle, onDouble)
	a.Click("r1/difficulty", onSingle, onDouble)
	settle()

	// The pending single action must not fire at all.
	assert.Equal(t, int32(0), single.Load())
	assert.Equal(t, int32(1), double.Load())
}

func TestClicksOnDifferentKeysAreIndependent(t *testing.T) {
	a := NewClickArbiter(testWindow)
	defer a.Stop()
	var single atomic.Int32

	a.Click("r1/difficulty", func() { single.Add(1) }, nil)
	a.Click("r2/difficulty", func() { single.Add(1) }, nil)
	settle()

	assert.Equal(t, int32(2), single.Load())
}

func TestStopCancelsPendingClicks(t *testing.T) {
	a := NewClickArbiter(testWindow)
	var single atomic.Int32

	a.Click("r1/difficulty", func() { single.Add(1) }, nil)
	a.Stop()
	settle()

	assert.Equal(t, int32(0), single.Load())

	// Clicks after Stop are rejected.
	a.Click("r1/difficulty", func() { single.Add(1) }, nil)
	settle()
	assert.Equal(t, int32(0), single.Load())
}
