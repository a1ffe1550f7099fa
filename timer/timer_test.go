package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManager_FiresAfterDelay(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired atomic.Int32
	m.Schedule(50*time.Millisecond, 0, func() {
		fired.Add(1)
	})

	time.Sleep(300 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("Expected task to fire exactly once, fired %d times", got)
	}
}

func TestManager_CancelPreventsCallback(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired atomic.Int32
	id := m.Schedule(100*time.Millisecond, 0, func() {
		fired.Add(1)
	})
	m.Cancel(id)

	time.Sleep(300 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("Cancelled task should not fire, fired %d times", got)
	}
}

func TestManager_IntervalRepeatsUntilCancelled(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired atomic.Int32
	id := m.Schedule(50*time.Millisecond, 100*time.Millisecond, func() {
		fired.Add(1)
	})

	time.Sleep(450 * time.Millisecond)
	m.Cancel(id)
	count := fired.Load()
	if count < 2 {
		t.Errorf("Expected repeating task to fire at least twice, fired %d times", count)
	}

	time.Sleep(300 * time.Millisecond)
	if fired.Load() != count {
		t.Errorf("Task fired after cancellation: %d -> %d", count, fired.Load())
	}
}

func TestManager_CancelUnknownIDIsNoop(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	m.Cancel(12345)
}
