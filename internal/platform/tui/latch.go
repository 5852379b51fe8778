package tui

import (
	"slices"
	"time"

	"github.com/vovakirdan/gridloop/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after the terminal last
// reported it. It has to outlast the usual auto-repeat delay.
const DefaultHoldWindow = 400 * time.Millisecond

// KeyLatch turns the press-only key reports of a terminal into key-down and
// key-up events. A key goes down on its first report and comes up once no
// report (auto-repeat included) arrived within the hold window.
type KeyLatch struct {
	hold time.Duration
	seen map[core.Key]time.Duration
}

// NewKeyLatch creates a latch. A non-positive hold uses DefaultHoldWindow.
func NewKeyLatch(hold time.Duration) *KeyLatch {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &KeyLatch{hold: hold, seen: make(map[core.Key]time.Duration)}
}

// Press records a report of k at now. It returns a key-down event only for
// a key that was not already held.
func (l *KeyLatch) Press(k core.Key, now time.Duration) (core.Event, bool) {
	if k == core.KeyNone {
		return core.Event{}, false
	}
	_, held := l.seen[k]
	l.seen[k] = now
	if held {
		return core.Event{}, false
	}
	return core.KeyDownEvent(k), true
}

// Expire releases every key whose hold window has passed, in key order.
func (l *KeyLatch) Expire(now time.Duration) []core.Event {
	var released []core.Key
	for k, at := range l.seen {
		if now-at >= l.hold {
			released = append(released, k)
		}
	}
	slices.Sort(released)

	events := make([]core.Event, 0, len(released))
	for _, k := range released {
		delete(l.seen, k)
		events = append(events, core.KeyUpEvent(k))
	}
	return events
}

// Held returns the number of keys currently held.
func (l *KeyLatch) Held() int {
	return len(l.seen)
}
