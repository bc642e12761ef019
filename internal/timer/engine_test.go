package timer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/startpage/internal/adapters/clock"
	"github.com/xvierd/startpage/internal/domain"
)

type recordingNotifier struct {
	notices []domain.Notice
	err     error
}

func (r *recordingNotifier) NotifyTimerDone(n domain.Notice) error {
	r.notices = append(r.notices, n)
	return r.err
}

func newEngine(t *testing.T, opts ...Option) (*Engine, *clock.Manual) {
	t.Helper()
	sched := clock.NewManual()
	e := New(sched, opts...)
	t.Cleanup(e.Close)
	return e, sched
}

func TestEngine_Initial(t *testing.T) {
	e, _ := newEngine(t)

	snap := e.Snapshot()
	assert.Equal(t, domain.ModeWork, snap.Mode)
	assert.Equal(t, 1500, snap.Remaining)
	assert.False(t, snap.Running)
	assert.Nil(t, snap.Notice)
}

func TestEngine_FullWorkCycle(t *testing.T) {
	notifier := &recordingNotifier{}
	e, _ := newEngine(t, WithNotifier(notifier))

	var notices int
	e.Subscribe(func(s Snapshot) {
		if s.Notice != nil && s.Remaining == 300 && !s.Running {
			notices++
		}
	})

	e.Start()
	for i := 0; i < 1500; i++ {
		e.Tick()
	}

	snap := e.Snapshot()
	assert.Equal(t, domain.ModeBreak, snap.Mode)
	assert.Equal(t, 300, snap.Remaining)
	assert.False(t, snap.Running)
	require.NotNil(t, snap.Notice)
	assert.Equal(t, "Work Time Over!", snap.Notice.Message)
	assert.Equal(t, 1, notices)
	assert.Len(t, notifier.notices, 1)
}

func TestEngine_ScheduledTicksDriveCountdown(t *testing.T) {
	e, sched := newEngine(t)

	e.Start()
	sched.Advance(10 * time.Second)
	assert.Equal(t, 1490, e.Snapshot().Remaining)

	sched.Advance(1490 * time.Second)
	snap := e.Snapshot()
	assert.Equal(t, domain.ModeBreak, snap.Mode)
	assert.Equal(t, 300, snap.Remaining)
	assert.False(t, snap.Running)
}

func TestEngine_StartTwiceSchedulesOnce(t *testing.T) {
	e, sched := newEngine(t)

	e.Start()
	e.Start()
	assert.Equal(t, 1, sched.Pending())

	sched.Advance(time.Second)
	assert.Equal(t, 1499, e.Snapshot().Remaining, "a double start must not double-decrement")
}

func TestEngine_PauseStopsTicks(t *testing.T) {
	e, sched := newEngine(t)

	e.Start()
	sched.Advance(5 * time.Second)
	e.Pause()
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(time.Minute)
	snap := e.Snapshot()
	assert.Equal(t, 1495, snap.Remaining)
	assert.False(t, snap.Running)
}

func TestEngine_StaleTickDiscarded(t *testing.T) {
	e, _ := newEngine(t)

	e.Start()
	stale := e.gen
	e.Pause()
	e.tick(stale)

	assert.Equal(t, 1500, e.Snapshot().Remaining)
}

func TestEngine_TickWhileIdle(t *testing.T) {
	e, _ := newEngine(t)

	e.Tick()
	assert.Equal(t, 1500, e.Snapshot().Remaining)
}

func TestEngine_Reset(t *testing.T) {
	notifier := &recordingNotifier{}
	e, sched := newEngine(t, WithNotifier(notifier))

	e.Start()
	sched.Advance(42 * time.Second)
	e.Reset()

	snap := e.Snapshot()
	assert.Equal(t, 1500, snap.Remaining)
	assert.False(t, snap.Running)
	assert.Nil(t, snap.Notice)
	assert.Empty(t, notifier.notices)
	assert.Equal(t, 0, sched.Pending())
}

func TestEngine_ResetClearsPendingNotice(t *testing.T) {
	e, sched := newEngine(t, WithConfig(domain.TimerConfig{
		WorkDuration:  2 * time.Second,
		BreakDuration: time.Second,
		NoticeWindow:  3 * time.Second,
	}))

	e.Start()
	sched.Advance(2 * time.Second)
	require.NotNil(t, e.Snapshot().Notice)

	e.Reset()
	assert.Nil(t, e.Snapshot().Notice)
	assert.Equal(t, 1, e.Snapshot().Remaining)
	assert.Equal(t, 0, sched.Pending())
}

func TestEngine_SwitchMode(t *testing.T) {
	e, sched := newEngine(t)

	e.Start()
	sched.Advance(3 * time.Second)
	e.SwitchMode()

	snap := e.Snapshot()
	assert.Equal(t, domain.ModeBreak, snap.Mode)
	assert.Equal(t, 300, snap.Remaining)
	assert.False(t, snap.Running)

	e.SwitchMode()
	assert.Equal(t, domain.ModeWork, e.Snapshot().Mode)
	assert.Equal(t, 1500, e.Snapshot().Remaining)
}

func TestEngine_Toggle(t *testing.T) {
	e, _ := newEngine(t)

	e.Toggle()
	assert.True(t, e.Snapshot().Running)
	e.Toggle()
	assert.False(t, e.Snapshot().Running)
}

// A Toggle racing the completing tick must behave as if one ran before the
// other: either the work countdown pauses at 1s, or the break starts running.
func TestEngine_ToggleRacingCompletion(t *testing.T) {
	cfg := domain.TimerConfig{
		WorkDuration:  time.Second,
		BreakDuration: 2 * time.Second,
		NoticeWindow:  time.Second,
	}

	for i := 0; i < 200; i++ {
		e, _ := newEngine(t, WithConfig(cfg))
		e.Start()

		var wg sync.WaitGroup
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			e.Tick()
		}()
		go func() {
			defer wg.Done()
			<-start
			e.Toggle()
		}()
		close(start)
		wg.Wait()

		snap := e.Snapshot()
		pausedFirst := snap.Mode == domain.ModeWork && !snap.Running && snap.Remaining == 1
		completedFirst := snap.Mode == domain.ModeBreak && snap.Running && snap.Remaining == 2
		require.True(t, pausedFirst || completedFirst, "iteration %d: %+v", i, snap.TimerState)
	}
}

func TestEngine_NoticeAutoClears(t *testing.T) {
	e, sched := newEngine(t, WithConfig(domain.TimerConfig{
		WorkDuration:  time.Second,
		BreakDuration: time.Second,
		NoticeWindow:  3 * time.Second,
	}))

	e.Start()
	sched.Advance(time.Second)
	require.NotNil(t, e.Snapshot().Notice)

	sched.Advance(2 * time.Second)
	assert.NotNil(t, e.Snapshot().Notice)

	sched.Advance(time.Second)
	assert.Nil(t, e.Snapshot().Notice)
}

func TestEngine_NotifierFailureDoesNotBlockFlip(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("no dbus")}
	e, sched := newEngine(t, WithNotifier(notifier), WithConfig(domain.TimerConfig{
		WorkDuration:  time.Second,
		BreakDuration: time.Second,
		NoticeWindow:  time.Second,
	}))

	e.Start()
	sched.Advance(time.Second)

	assert.Equal(t, domain.ModeBreak, e.Snapshot().Mode)
	assert.Len(t, notifier.notices, 1)
}

func TestEngine_ObserversSeeEveryChange(t *testing.T) {
	e, sched := newEngine(t)

	var got []Snapshot
	unsubscribe := e.Subscribe(func(s Snapshot) { got = append(got, s) })
	require.Len(t, got, 1, "subscribe pushes the current state")

	e.Start()
	sched.Advance(time.Second)
	e.Pause()
	e.Reset()

	require.Len(t, got, 5)
	assert.True(t, got[1].Running)
	assert.Equal(t, 1499, got[2].Remaining)
	assert.False(t, got[3].Running)
	assert.Equal(t, 1500, got[4].Remaining)

	unsubscribe()
	e.Start()
	assert.Len(t, got, 5)
}

func TestEngine_CloseCancelsEverything(t *testing.T) {
	e, sched := newEngine(t)

	e.Start()
	e.Close()
	assert.Equal(t, 0, sched.Pending())

	e.Start()
	assert.False(t, e.Snapshot().Running)
}
