package clock

import (
	"sort"
	"sync"
	"time"

	"github.com/xvierd/startpage/internal/ports"
)

// Manual is a scheduler whose time only moves when Advance is called.
// Callbacks run synchronously on the caller of Advance.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	tasks  map[int]*task
}

type task struct {
	id       int
	due      time.Duration
	interval time.Duration
	fn       func()
}

// NewManual returns a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{tasks: make(map[int]*task)}
}

// Every implements ports.Scheduler.
func (m *Manual) Every(interval time.Duration, fn func()) ports.CancelFunc {
	return m.add(interval, interval, fn)
}

// After implements ports.Scheduler.
func (m *Manual) After(delay time.Duration, fn func()) ports.CancelFunc {
	return m.add(delay, 0, fn)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) ports.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.tasks[id] = &task{id: id, due: m.now + delay, interval: interval, fn: fn}
	return func() {
		m.mu.Lock()
		delete(m.tasks, id)
		m.mu.Unlock()
	}
}

// Pending returns the number of scheduled tasks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves time forward by d, firing every callback that falls due in
// order. A task cancelled by an earlier callback does not fire.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			delete(m.tasks, next.id)
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

func (m *Manual) nextDueLocked(limit time.Duration) *task {
	due := make([]*task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.due <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	return due[0]
}

var _ ports.Scheduler = (*Manual)(nil)
