package engine

import "time"

// DefaultPace is the native driver's sleep between ticks, roughly 60 frames
// per second.
const DefaultPace = 16 * time.Millisecond

// Ticker is one frame of work plus the run-flag. *Engine implements it.
type Ticker interface {
	Tick()
	Running() bool
}

// Driver repeatedly ticks until the run-flag clears or its host gives up.
type Driver interface {
	Run(t Ticker) error
}

// NativeDriver owns the loop: tick, then sleep for Pace, while running. The
// tick that clears the run-flag is not followed by a sleep.
type NativeDriver struct {
	Pace time.Duration

	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Run blocks until the run-flag is cleared.
func (d NativeDriver) Run(t Ticker) error {
	sleep := d.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for t.Running() {
		t.Tick()
		if d.Pace > 0 && t.Running() {
			sleep(d.Pace)
		}
	}
	return nil
}

// CallbackDriver hands a per-frame callback to a host that owns the loop and
// never sleeps on the engine's behalf.
type CallbackDriver struct {
	Host Scheduler
}

// Run registers the frame callback with the host.
func (d CallbackDriver) Run(t Ticker) error {
	if d.Host == nil {
		return ErrNoScheduler
	}
	return d.Host.SetMainLoop(Frame(t))
}

// Frame returns the callback a host scheduler invokes once per frame. It
// checks the run-flag before ticking, so a host that keeps calling after the
// loop stopped gets a no-op, and reports whether to keep calling.
func Frame(t Ticker) func() bool {
	return func() bool {
		if !t.Running() {
			return false
		}
		t.Tick()
		return t.Running()
	}
}

// Limit wraps a driver so the run stops after n ticks.
func Limit(d Driver, n uint64) Driver {
	return limitDriver{inner: d, n: n}
}

type limitDriver struct {
	inner Driver
	n     uint64
}

func (l limitDriver) Run(t Ticker) error {
	return l.inner.Run(&limitedTicker{Ticker: t, n: l.n})
}

// limitedTicker stops its ticker once n ticks have run.
type limitedTicker struct {
	Ticker
	n    uint64
	done uint64
}

func (l *limitedTicker) Tick() {
	if !l.Running() {
		return
	}
	l.Ticker.Tick()
	l.done++
	if l.done >= l.n {
		if s, ok := l.Ticker.(interface{ Stop() }); ok {
			s.Stop()
		}
	}
}

func (l *limitedTicker) Running() bool {
	return l.done < l.n && l.Ticker.Running()
}
