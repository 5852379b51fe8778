package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/gridloop/internal/clock"
	"github.com/vovakirdan/gridloop/internal/core"
	"github.com/vovakirdan/gridloop/internal/engine"
	"github.com/vovakirdan/gridloop/internal/platform/headless"
)

// loopHost owns the loop like a browser or UI framework would: it keeps
// calling the frame callback a fixed number of times regardless of what the
// callback returns.
type loopHost struct {
	*headless.Host
	calls    int
	stopSeen int
}

func (h *loopHost) SetMainLoop(frame func() bool) error {
	for i := 0; i < h.calls; i++ {
		if !frame() && h.stopSeen == 0 {
			h.stopSeen = i + 1
		}
	}
	return nil
}

func TestCallbackDriverSelectedForSchedulers(t *testing.T) {
	host := &loopHost{Host: headless.New(10, 10), calls: 10}
	host.QuitAfter(3)
	g := &plain{}

	e, err := engine.New(g, "cb").
		WithHost(host).
		WithDimensions(1, 10, 10).
		WithClock(clock.NewManual()).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if g.updates != 3 || g.renders != 3 {
		t.Errorf("updates/renders = %d/%d, expected 3/3", g.updates, g.renders)
	}
	if host.stopSeen != 3 {
		t.Errorf("host told to stop on call %d, expected 3", host.stopSeen)
	}
	if host.Frames() != 3 {
		t.Errorf("Frames() = %d, expected 3: calls after stop must be no-ops", host.Frames())
	}
}

func TestCallbackDriverWithoutScheduler(t *testing.T) {
	err := engine.CallbackDriver{}.Run(&countTicker{limit: 1})
	if !errors.Is(err, engine.ErrNoScheduler) {
		t.Errorf("Run() error = %v, expected ErrNoScheduler", err)
	}
}

// countTicker stops itself after limit ticks.
type countTicker struct {
	ticks int
	limit int
}

func (c *countTicker) Tick()         { c.ticks++ }
func (c *countTicker) Running() bool { return c.ticks < c.limit }

func TestNativeDriverPaces(t *testing.T) {
	var slept []time.Duration
	d := engine.NativeDriver{Pace: 16 * time.Millisecond, Sleep: func(d time.Duration) { slept = append(slept, d) }}
	tk := &countTicker{limit: 4}

	if err := d.Run(tk); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if tk.ticks != 4 {
		t.Errorf("ticks = %d, expected 4", tk.ticks)
	}
	// No sleep after the last tick.
	if len(slept) != 3 {
		t.Errorf("sleeps = %d, expected 3", len(slept))
	}
	for _, s := range slept {
		if s != 16*time.Millisecond {
			t.Errorf("slept %v, expected 16ms", s)
		}
	}
}

func TestNativeDriverNotRunning(t *testing.T) {
	tk := &countTicker{limit: 0}
	if err := (engine.NativeDriver{}).Run(tk); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if tk.ticks != 0 {
		t.Errorf("ticks = %d, expected 0", tk.ticks)
	}
}

func TestFrameChecksRunFlagFirst(t *testing.T) {
	tk := &countTicker{limit: 2}
	frame := engine.Frame(tk)

	if !frame() {
		t.Error("first frame should ask for more")
	}
	if frame() {
		t.Error("second frame reaches the limit and should ask to stop")
	}
	if frame() {
		t.Error("frames after stop should keep reporting stop")
	}
	if tk.ticks != 2 {
		t.Errorf("ticks = %d, expected 2", tk.ticks)
	}
}

// Both drivers run the same tick logic, so the same script yields the same
// frames.
func TestDriversProduceSameFrames(t *testing.T) {
	run := func(useCallback bool) []*core.Canvas {
		var frames []*core.Canvas
		base := headless.New(20, 20)
		base.OnPresent = func(c *core.Canvas) { frames = append(frames, c.Clone()) }
		base.At(1, core.KeyDownEvent(core.KeyRight))
		base.At(3, core.KeyUpEvent(core.KeyRight))
		base.QuitAfter(6)

		var host engine.Host = base
		var driver engine.Driver = engine.NativeDriver{Sleep: func(time.Duration) {}}
		if useCallback {
			lh := &loopHost{Host: base, calls: 20}
			host = lh
			driver = engine.CallbackDriver{Host: lh}
		}

		err := engine.New(&walker{}, "parity").
			WithHost(host).
			WithDimensions(2, 10, 10).
			WithDriver(driver).
			WithClock(clock.NewManual()).
			Start()
		if err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		return frames
	}

	native := run(false)
	callback := run(true)
	if len(native) != 6 || len(callback) != 6 {
		t.Fatalf("frames = %d native, %d callback, expected 6 each", len(native), len(callback))
	}
	for i := range native {
		if !native[i].Equal(callback[i]) {
			t.Errorf("frame %d differs between drivers", i)
		}
	}
	if native[0].Equal(native[5]) {
		t.Error("walker should have moved while Right was held")
	}
}

// walker moves one point right per tick while Right is held.
type walker struct {
	x int
}

func (w *walker) Update(_ float64, v engine.ReadView) {
	if v.IsKeyDown(core.KeyRight) {
		w.x++
	}
}

func (w *walker) Render(v engine.DrawView) {
	v.DrawPoint(w.x, 0, core.Green)
}

func TestLimitStopsEngine(t *testing.T) {
	host := headless.New(10, 10)
	g := &plain{}
	sleeps := 0

	e, err := engine.New(g, "limit").
		WithHost(host).
		WithDimensions(1, 10, 10).
		WithClock(clock.NewManual()).
		WithDriver(engine.Limit(engine.NativeDriver{Pace: time.Millisecond, Sleep: func(time.Duration) { sleeps++ }}, 4)).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if e.Ticks() != 4 || g.updates != 4 {
		t.Errorf("Ticks() = %d, updates = %d, expected 4", e.Ticks(), g.updates)
	}
	if e.State() != engine.StateStopped {
		t.Errorf("State() = %v, expected stopped", e.State())
	}
	if sleeps != 3 {
		t.Errorf("sleeps = %d, expected 3", sleeps)
	}
}

func TestLimitWithCallbackDriver(t *testing.T) {
	host := &loopHost{Host: headless.New(10, 10), calls: 10}
	g := &plain{}

	e, err := engine.New(g, "limit").
		WithHost(host).
		WithDimensions(1, 10, 10).
		WithClock(clock.NewManual()).
		WithDriver(engine.Limit(engine.CallbackDriver{Host: host}, 2)).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if g.updates != 2 || host.stopSeen != 2 {
		t.Errorf("updates = %d, stop seen on call %d, expected 2 and 2", g.updates, host.stopSeen)
	}
	if e.Running() {
		t.Error("engine should be stopped")
	}
}

func TestLimitQuitFirst(t *testing.T) {
	host := headless.New(10, 10)
	host.QuitAfter(2)
	g := &plain{}

	e, err := engine.New(g, "limit").
		WithHost(host).
		WithDimensions(1, 10, 10).
		WithClock(clock.NewManual()).
		WithDriver(engine.Limit(engine.NativeDriver{}, 100)).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if e.Ticks() != 2 {
		t.Errorf("Ticks() = %d, expected 2", e.Ticks())
	}
}
