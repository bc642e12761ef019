// Package timer implements the work/break countdown. The engine owns its
// one-second tick task and is the only writer of the timer state; everything
// else observes snapshots.
package timer

import (
	"sync"
	"time"

	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/logging"
	"github.com/xvierd/startpage/internal/ports"
)

// TickInterval is the period of the countdown.
const TickInterval = time.Second

// Snapshot is the observable state of the engine.
type Snapshot struct {
	domain.TimerState
	Notice *domain.Notice
}

// Observer receives a snapshot after every state change.
type Observer func(Snapshot)

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier forwards completion notices to n.
func WithNotifier(n ports.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithConfig overrides the default durations.
func WithConfig(cfg domain.TimerConfig) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// Engine is the countdown state machine.
type Engine struct {
	mu       sync.Mutex
	cfg      domain.TimerConfig
	sched    ports.Scheduler
	notifier ports.Notifier

	state  domain.TimerState
	notice *domain.Notice

	// gen identifies the live tick task; ticks carrying an older value are
	// dropped.
	gen          uint64
	cancelTick   ports.CancelFunc
	noticeGen    uint64
	cancelNotice ports.CancelFunc
	closed       bool

	version   uint64
	observers map[int]Observer
	nextObs   int

	emitMu      sync.Mutex
	lastEmitted uint64
}

// New creates an idle engine in work mode with the full work duration.
func New(sched ports.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		cfg:       domain.DefaultTimerConfig(),
		sched:     sched,
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state = domain.TimerState{
		Mode:      domain.ModeWork,
		Remaining: e.cfg.FullSeconds(domain.ModeWork),
	}
	return e
}

// Config returns the durations in use.
func (e *Engine) Config() domain.TimerConfig {
	return e.cfg
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers fn and immediately pushes the current state to it so a
// view opened mid-countdown starts from the right value.
func (e *Engine) Subscribe(fn Observer) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn
	snap := e.snapshotLocked()
	e.mu.Unlock()

	fn(snap)

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.observers, id)
			e.mu.Unlock()
		})
	}
}

// Start moves an idle engine to running. Calling it while running does
// nothing, so the tick task is never scheduled twice.
func (e *Engine) Start() {
	e.mu.Lock()
	if !e.startLocked() {
		e.mu.Unlock()
		return
	}
	e.publishLocked()
}

// Pause stops the countdown without touching the remaining time.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.pauseLocked() {
		e.mu.Unlock()
		return
	}
	e.publishLocked()
}

// Toggle starts an idle engine or pauses a running one. The running check
// and the transition happen under one lock, so a completing tick cannot slip
// in between them.
func (e *Engine) Toggle() {
	e.mu.Lock()
	var changed bool
	if e.state.Running {
		changed = e.pauseLocked()
	} else {
		changed = e.startLocked()
	}
	if !changed {
		e.mu.Unlock()
		return
	}
	e.publishLocked()
}

func (e *Engine) startLocked() bool {
	if e.closed || e.state.Running {
		return false
	}
	e.state.Running = true
	e.gen++
	gen := e.gen
	e.cancelTick = e.sched.Every(TickInterval, func() { e.tick(gen) })
	return true
}

func (e *Engine) pauseLocked() bool {
	if !e.state.Running {
		return false
	}
	e.stopLocked()
	return true
}

// Reset restores the full duration of the current mode, stops the countdown
// and drops any pending notice.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.stopLocked()
	e.clearNoticeLocked()
	e.state.Remaining = e.cfg.FullSeconds(e.state.Mode)
	e.publishLocked()
}

// SwitchMode flips between work and break, stopped at the new full duration.
func (e *Engine) SwitchMode() {
	e.mu.Lock()
	e.stopLocked()
	e.clearNoticeLocked()
	e.state.Mode = e.state.Mode.Other()
	e.state.Remaining = e.cfg.FullSeconds(e.state.Mode)
	e.publishLocked()
}

// Tick advances the live countdown by one second. It is a no-op while idle.
func (e *Engine) Tick() {
	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()
	e.tick(gen)
}

// Close cancels all scheduled work. The engine stays readable but no longer
// starts.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.stopLocked()
	if e.cancelNotice != nil {
		e.cancelNotice()
		e.cancelNotice = nil
	}
	e.noticeGen++
	e.mu.Unlock()
}

func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || !e.state.Running {
		e.mu.Unlock()
		return
	}

	e.state.Remaining--
	if e.state.Remaining > 0 {
		e.publishLocked()
		return
	}

	ended := e.state.Mode
	notice := domain.NewNotice(ended)
	e.stopLocked()
	e.state.Mode = ended.Other()
	e.state.Remaining = e.cfg.FullSeconds(e.state.Mode)
	e.raiseNoticeLocked(notice)
	notifier := e.notifier
	e.publishLocked()

	if notifier != nil {
		if err := notifier.NotifyTimerDone(notice); err != nil {
			logging.L().Warn("timer notification failed", "mode", ended, "err", err)
		}
	}
}

// stopLocked cancels the tick task and marks the engine idle.
func (e *Engine) stopLocked() {
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
	e.gen++
	e.state.Running = false
}

func (e *Engine) raiseNoticeLocked(n domain.Notice) {
	e.clearNoticeLocked()
	e.notice = &n
	gen := e.noticeGen
	e.cancelNotice = e.sched.After(e.cfg.NoticeWindow, func() { e.expireNotice(gen) })
}

func (e *Engine) clearNoticeLocked() {
	if e.cancelNotice != nil {
		e.cancelNotice()
		e.cancelNotice = nil
	}
	e.noticeGen++
	e.notice = nil
}

func (e *Engine) expireNotice(gen uint64) {
	e.mu.Lock()
	if gen != e.noticeGen || e.notice == nil {
		e.mu.Unlock()
		return
	}
	e.cancelNotice = nil
	e.noticeGen++
	e.notice = nil
	e.publishLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{TimerState: e.state}
	if e.notice != nil {
		n := *e.notice
		snap.Notice = &n
	}
	return snap
}

// publishLocked takes a snapshot, releases e.mu and delivers the snapshot to
// every observer. Deliveries are serialized; a snapshot older than one
// already delivered is dropped.
func (e *Engine) publishLocked() {
	e.version++
	version := e.version
	snap := e.snapshotLocked()
	observers := make([]Observer, 0, len(e.observers))
	for _, fn := range e.observers {
		observers = append(observers, fn)
	}
	e.mu.Unlock()

	e.emitMu.Lock()
	defer e.emitMu.Unlock()
	if version < e.lastEmitted {
		return
	}
	e.lastEmitted = version
	for _, fn := range observers {
		fn(snap)
	}
}
