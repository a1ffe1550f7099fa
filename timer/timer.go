// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"
)

type Task struct {
	ID        int64
	Execute   time.Time
	Interval  time.Duration
	Callback  func()
	cancelled atomic.Bool
	index     int
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].Execute.Before(q[j].Execute)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	task := x.(*Task)
	task.index = n
	*q = append(*q, task)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// Manager runs delayed and repeating tasks off a single heap with 100ms
// resolution. Cancel marks the task so a callback still queued for
// dispatch is suppressed even when cancellation races the firing tick.
type Manager struct {
	queue   taskQueue
	tasks   map[int64]*Task
	mutex   sync.Mutex
	nextID  int64
	trigger chan *Task
	done    chan struct{}
}

func NewManager() *Manager {
	m := &Manager{
		queue:   make(taskQueue, 0),
		tasks:   make(map[int64]*Task),
		trigger: make(chan *Task, 1000),
		nextID:  1,
		done:    make(chan struct{}),
	}
	heap.Init(&m.queue)
	go m.process()
	return m
}

// Schedule arms a task. A positive interval makes it repeat until
// cancelled.
func (m *Manager) Schedule(delay time.Duration, interval time.Duration, callback func()) int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	task := &Task{
		ID:       m.nextID,
		Execute:  time.Now().Add(delay),
		Interval: interval,
		Callback: callback,
	}
	m.nextID++

	heap.Push(&m.queue, task)
	m.tasks[task.ID] = task
	return task.ID
}

// Cancel prevents any future invocation. A callback that already started
// may still be running, so callbacks must revalidate state themselves.
func (m *Manager) Cancel(taskID int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	task, exists := m.tasks[taskID]
	if !exists {
		return
	}
	task.cancelled.Store(true)
	delete(m.tasks, taskID)
	if task.index >= 0 {
		heap.Remove(&m.queue, task.index)
	}
}

// Stop shuts down the processing loop. Pending tasks never fire.
func (m *Manager) Stop() {
	close(m.done)
}

func (m *Manager) process() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return

		case <-ticker.C:
			m.mutex.Lock()
			now := time.Now()

			for m.queue.Len() > 0 {
				task := m.queue[0]
				if task.Execute.After(now) {
					break
				}

				heap.Pop(&m.queue)
				m.trigger <- task

				if task.Interval > 0 {
					task.Execute = now.Add(task.Interval)
					heap.Push(&m.queue, task)
				} else {
					delete(m.tasks, task.ID)
				}
			}
			m.mutex.Unlock()

		case task := <-m.trigger:
			if !task.cancelled.Load() {
				task.Callback()
			}
		}
	}
}
