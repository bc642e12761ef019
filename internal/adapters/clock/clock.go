// Package clock provides ports.Scheduler implementations: a wall-clock one
// backed by the runtime timers and a manual one that tests advance by hand.
package clock

import (
	"sync"
	"time"

	"github.com/xvierd/startpage/internal/ports"
)

// Real schedules callbacks on runtime timers. Callbacks run on their own
// goroutines.
type Real struct{}

// NewReal returns a wall-clock scheduler.
func NewReal() Real {
	return Real{}
}

// Every implements ports.Scheduler.
func (Real) Every(interval time.Duration, fn func()) ports.CancelFunc {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// After implements ports.Scheduler.
func (Real) After(delay time.Duration, fn func()) ports.CancelFunc {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

var _ ports.Scheduler = Real{}
