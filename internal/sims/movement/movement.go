// Package movement is the basic demo: a square the arrow keys (or WASD)
// move across a grid that stretches to fill the display.
package movement

import (
	"github.com/vovakirdan/gridloop/internal/core"
	"github.com/vovakirdan/gridloop/internal/engine"
	"github.com/vovakirdan/gridloop/internal/registry"
)

const (
	// DefaultSize is the side of the square in points.
	DefaultSize = 20

	// DefaultSpeed is the movement speed in points per second.
	DefaultSpeed = 250.0
)

// Sim moves a square around the grid.
type Sim struct {
	x, y  float64
	size  int
	speed float64
	color core.Color
}

// New creates the demo with the square in the top-left corner.
func New(size int) *Sim {
	if size <= 0 {
		size = DefaultSize
	}
	return &Sim{
		size:  size,
		speed: DefaultSpeed,
		color: core.Green,
	}
}

func init() {
	registry.Register("movement", func(opts registry.Options) registry.Sim {
		return New(opts.Width)
	})
}

// ID implements registry.Sim.
func (s *Sim) ID() string { return "movement" }

// Title implements registry.Sim.
func (s *Sim) Title() string { return "Basic Sample" }

// Configure implements registry.Sim.
func (s *Sim) Configure(b *engine.Builder) {
	b.WithStretchedDimensions(1)
}

// Position returns the square's top-left corner in points.
func (s *Sim) Position() (float64, float64) {
	return s.x, s.y
}

// Update implements engine.Game.
func (s *Sim) Update(dt float64, v engine.ReadView) {
	step := dt * s.speed
	if v.IsKeyDown(core.KeyLeft) || v.IsKeyDown(core.KeyA) {
		s.x -= step
	}
	if v.IsKeyDown(core.KeyRight) || v.IsKeyDown(core.KeyD) {
		s.x += step
	}
	if v.IsKeyDown(core.KeyUp) || v.IsKeyDown(core.KeyW) {
		s.y -= step
	}
	if v.IsKeyDown(core.KeyDown) || v.IsKeyDown(core.KeyS) {
		s.y += step
	}

	// Keep at least part of the square on screen
	d := v.Dimensions()
	s.x = core.ClampF(s.x, float64(1-s.size), float64(d.Width()-1))
	s.y = core.ClampF(s.y, float64(1-s.size), float64(d.Height()-1))
}

// Render implements engine.Game.
func (s *Sim) Render(v engine.DrawView) {
	v.DrawRect(int(s.x), int(s.y), s.size, s.size, s.color)
}
