package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridloop/internal/clock"
	"github.com/vovakirdan/gridloop/internal/core"
)

type dimensionPolicy int

const (
	policyDefault dimensionPolicy = iota
	policyExplicit
	policyFit
	policyStretch
)

// Builder collects display parameters for an Engine. It is consumed by the
// first Build or Start.
type Builder struct {
	game       Game
	title      string
	background core.Color

	policy    dimensionPolicy
	pointSize int
	width     int
	height    int

	host     Host
	driver   Driver
	clock    clock.Clock
	logger   *log.Logger
	debug    bool
	consumed bool
}

// New starts building an engine for game. The background defaults to black
// and the grid to core.DefaultDimensions.
func New(game Game, title string) *Builder {
	return &Builder{
		game:       game,
		title:      title,
		background: core.Black,
	}
}

// WithTitle replaces the title given to New.
func (b *Builder) WithTitle(title string) *Builder {
	b.title = title
	return b
}

// WithBackground sets the color each frame is cleared to.
func (b *Builder) WithBackground(c core.Color) *Builder {
	b.background = c
	return b
}

// WithDimensions uses an explicit grid of width x height points, each
// pointSize pixels wide.
func (b *Builder) WithDimensions(pointSize, width, height int) *Builder {
	b.policy = policyExplicit
	b.pointSize, b.width, b.height = pointSize, width, height
	return b
}

// WithPointDimensions uses a width x height grid with the largest point size
// the host display can hold.
func (b *Builder) WithPointDimensions(width, height int) *Builder {
	b.policy = policyFit
	b.width, b.height = width, height
	return b
}

// WithStretchedDimensions fills the host display with points of the given
// size.
func (b *Builder) WithStretchedDimensions(pointSize int) *Builder {
	b.policy = policyStretch
	b.pointSize = pointSize
	return b
}

// WithHost sets the host that provides the surface and input.
func (b *Builder) WithHost(h Host) *Builder {
	b.host = h
	return b
}

// WithDriver overrides the driver. By default hosts that implement Scheduler
// get a CallbackDriver and every other host a NativeDriver at DefaultPace.
func (b *Builder) WithDriver(d Driver) *Builder {
	b.driver = d
	return b
}

// WithClock overrides the clock. By default the host's clock is used when
// it has one, and the process monotonic clock otherwise.
func (b *Builder) WithClock(c clock.Clock) *Builder {
	b.clock = c
	return b
}

// WithLogger sets the engine logger. Logging is discarded by default.
func (b *Builder) WithLogger(l *log.Logger) *Builder {
	b.logger = l
	return b
}

// WithDebug makes programmer errors inside a tick panic instead of being
// logged and skipped.
func (b *Builder) WithDebug(debug bool) *Builder {
	b.debug = debug
	return b
}

// Build resolves the grid against the host display and opens the host.
// Any error is a setup failure the caller should treat as fatal.
func (b *Builder) Build() (*Engine, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	if b.game == nil {
		return nil, ErrNoGame
	}
	if b.host == nil {
		return nil, ErrNoHost
	}

	dims, err := b.dimensions()
	if err != nil {
		return nil, fmt.Errorf("engine: dimensions: %w", err)
	}

	surface, input, err := b.host.Open(b.title, dims.PixelWidth(), dims.PixelHeight())
	if err != nil {
		return nil, fmt.Errorf("engine: open host: %w", err)
	}

	logger := b.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		title:      b.title,
		running:    true,
		host:       b.host,
		surface:    surface,
		input:      input,
		game:       b.game,
		clock:      b.resolveClock(),
		dims:       dims,
		background: b.background,
		keys:       core.NewKeyState(),
		driver:     b.resolveDriver(),
		debug:      b.debug,
		logger:     logger,
	}

	logger.Debug("engine built",
		"pixels", fmt.Sprintf("%dx%d", dims.PixelWidth(), dims.PixelHeight()),
		"driver", fmt.Sprintf("%T", e.driver),
	)
	return e, nil
}

// Start builds the engine and runs it. The engine is closed when the driver
// returns, so Start suits blocking drivers; use Build for hosts that only
// register a callback.
func (b *Builder) Start() error {
	e, err := b.Build()
	if err != nil {
		return err
	}
	runErr := e.Start()
	closeErr := e.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func (b *Builder) dimensions() (core.Dimensions, error) {
	switch b.policy {
	case policyExplicit:
		return core.NewDimensions(b.pointSize, b.width, b.height)
	case policyFit:
		w, h, err := b.host.Bounds()
		if err != nil {
			return core.Dimensions{}, fmt.Errorf("display bounds: %w", err)
		}
		return core.FitDimensions(w, h, b.width, b.height)
	case policyStretch:
		w, h, err := b.host.Bounds()
		if err != nil {
			return core.Dimensions{}, fmt.Errorf("display bounds: %w", err)
		}
		return core.StretchDimensions(w, h, b.pointSize)
	default:
		return core.DefaultDimensions(), nil
	}
}

func (b *Builder) resolveClock() clock.Clock {
	if b.clock != nil {
		return b.clock
	}
	if src, ok := b.host.(ClockSource); ok {
		if c := src.Clock(); c != nil {
			return c
		}
	}
	return clock.NewMonotonic()
}

func (b *Builder) resolveDriver() Driver {
	if b.driver != nil {
		return b.driver
	}
	if s, ok := b.host.(Scheduler); ok {
		return CallbackDriver{Host: s}
	}
	return NativeDriver{Pace: DefaultPace}
}
