package hotkeys

import "sync"

// Handler inspects a key event and returns true to suppress it.
type Handler func(KeyEvent) bool

// Bus is the process-wide key stream. Handlers run in subscription order
// until one suppresses the event.
type Bus struct {
	mu       sync.Mutex
	handlers []subscription
	nextID   int
}

type subscription struct {
	id int
	fn Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds fn. The returned func removes it; after it returns fn is
// never invoked again.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.handlers {
				if s.id == id {
					b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

// Publish offers ev to the handlers and reports whether one suppressed it.
// A suppressed event must not reach the focused element.
func (b *Bus) Publish(ev KeyEvent) (suppressed bool) {
	b.mu.Lock()
	handlers := make([]subscription, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, s := range handlers {
		if !b.live(s.id) {
			continue
		}
		if s.fn(ev) {
			return true
		}
	}
	return false
}

func (b *Bus) live(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.handlers {
		if s.id == id {
			return true
		}
	}
	return false
}
