// Package engine runs a simulation in a real-time loop: each tick it drains
// host input, advances the simulation by the elapsed time and renders it onto
// a logical point grid. The engine owns the simulation outright and hands it
// narrow views of itself by parameter, so a simulation never holds a
// reference back to the engine.
package engine

import "github.com/vovakirdan/gridloop/internal/core"

// Game is the contract a simulation implements to run in the engine.
//
// Per tick the engine calls HandleEvent (if implemented) once per queued
// event, then Update exactly once, then Render exactly once.
type Game interface {
	// Update advances the simulation by dt seconds. The first tick has dt 0.
	// The view allows input queries only.
	Update(dt float64, v ReadView)

	// Render draws the current state. The surface has been cleared to the
	// background color and is presented after Render returns.
	Render(v DrawView)
}

// EventHandler is implemented by simulations that filter input events.
// Returning ok=false consumes the event. Returning ok=true hands the (possibly
// rewritten) event to the engine, which stops the loop on quit events and
// Escape key presses.
type EventHandler interface {
	HandleEvent(ev core.Event) (out core.Event, ok bool)
}

// PassThrough is the event handling used for simulations that do not
// implement EventHandler: every event goes to the engine unchanged.
func PassThrough(ev core.Event) (core.Event, bool) {
	return ev, true
}

// ReadView is the engine as seen from Update.
type ReadView interface {
	// IsKeyDown reports whether k is held in this tick's input snapshot.
	IsKeyDown(k core.Key) bool

	// Dimensions returns the point grid.
	Dimensions() core.Dimensions
}

// DrawView is the engine as seen from Render. Coordinates and sizes are in
// points; scaling to pixels happens inside the engine.
type DrawView interface {
	ReadView

	// DrawPoint fills the grid cell at (x, y).
	DrawPoint(x, y int, c core.Color)

	// DrawRect fills a w x h block of cells with its top-left cell at (x, y).
	DrawRect(x, y, w, h int, c core.Color)
}
