package schedule

import (
	"sync"
	"time"

	"github.com/wfunc/drawparty/timer"
)

// RoomScheduler enforces the one-timer-per-room rule: arming a new task
// for a room cancels whatever was pending for it. Deleting a room cancels
// its task immediately.
type RoomScheduler struct {
	timers  *timer.Manager
	mu      sync.Mutex
	pending map[string]int64
}

func NewRoomScheduler(timers *timer.Manager) *RoomScheduler {
	return &RoomScheduler{
		timers:  timers,
		pending: make(map[string]int64),
	}
}

// After arms a one-shot task for the room, superseding any pending task.
func (s *RoomScheduler) After(code string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(code)
	var id int64
	wrapped := func() {
		// id is assigned below while s.mu is held; a callback firing
		// immediately blocks here until After has released the lock, so
		// the read is ordered after the write. The entry is only cleared
		// when the firing task is still the room's current one.
		s.mu.Lock()
		if s.pending[code] == id {
			delete(s.pending, code)
		}
		s.mu.Unlock()
		fn()
	}
	id = s.timers.Schedule(delay, 0, wrapped)
	s.pending[code] = id
}

// EverySecond arms the room's drawing countdown, superseding any pending
// task. The tick repeats until superseded or cancelled.
func (s *RoomScheduler) EverySecond(code string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(code)
	id := s.timers.Schedule(time.Second, time.Second, fn)
	s.pending[code] = id
}

// CancelRoom drops whatever is pending for the room.
func (s *RoomScheduler) CancelRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(code)
}

func (s *RoomScheduler) cancelLocked(code string) {
	if id, exists := s.pending[code]; exists {
		s.timers.Cancel(id)
		delete(s.pending, code)
	}
}
