// Package maze is the maze-generation demo: a randomized depth-first
// backtracker that carves one new cell per tick, so the maze grows on screen.
package maze

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/gridloop/internal/core"
	"github.com/vovakirdan/gridloop/internal/engine"
	"github.com/vovakirdan/gridloop/internal/registry"
)

const (
	DefaultWidth     = 40
	DefaultHeight    = 20
	DefaultPathWidth = 3

	// borderOffset leaves one point for the outer wall.
	borderOffset = 1
)

// point is a cell coordinate.
type point struct {
	X, Y int
}

// Sim generates a maze.
type Sim struct {
	width     int
	height    int
	pathWidth int
	seed      int64
	rng       *rand.Rand

	cells   []Cell
	stack   []point
	visited int

	visitedColor   core.Color
	unvisitedColor core.Color
}

// New creates a maze of width x height cells whose corridors are pathWidth
// points wide. Generation starts at the top-left cell.
func New(width, height, pathWidth int, seed int64) *Sim {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if pathWidth <= 0 {
		pathWidth = DefaultPathWidth
	}
	s := &Sim{
		width:          width,
		height:         height,
		pathWidth:      pathWidth,
		visitedColor:   core.White,
		unvisitedColor: core.Blue,
	}
	s.Reset(seed)
	return s
}

func init() {
	registry.Register("maze", func(opts registry.Options) registry.Sim {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return New(opts.Width, opts.Height, DefaultPathWidth, seed)
	})
}

// Reset clears the maze and restarts generation with the given seed.
func (s *Sim) Reset(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
	s.cells = make([]Cell, s.width*s.height)
	s.cells[0].Visited = true
	s.stack = append(s.stack[:0], point{0, 0})
	s.visited = 1
}

// ID implements registry.Sim.
func (s *Sim) ID() string { return "maze" }

// Title implements registry.Sim.
func (s *Sim) Title() string { return "Maze" }

// Configure implements registry.Sim. Each cell takes pathWidth points plus
// one for the wall on its east and south side, and the whole maze one more
// for the outer wall.
func (s *Sim) Configure(b *engine.Builder) {
	w, h := s.PointSize()
	b.WithPointDimensions(w, h)
}

// PointSize returns the grid extent the maze needs, in points.
func (s *Sim) PointSize() (int, int) {
	return s.width*(s.pathWidth+1) + 1, s.height*(s.pathWidth+1) + 1
}

// Done reports whether every cell has been visited.
func (s *Sim) Done() bool {
	return s.visited >= s.width*s.height
}

// Cell returns the cell at (x, y) and whether it is inside the maze.
func (s *Sim) Cell(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Cell{}, false
	}
	return s.cells[y*s.width+x], true
}

// HandleEvent implements engine.EventHandler. R restarts generation with a
// fresh seed; everything else goes to the engine.
func (s *Sim) HandleEvent(ev core.Event) (core.Event, bool) {
	if ev.Kind == core.EventKeyDown && ev.Key == core.KeyR {
		s.Reset(s.rng.Int63())
		return ev, false
	}
	return ev, true
}

// Update implements engine.Game. It carves a path to one unvisited cell,
// backtracking as far as needed to find one.
func (s *Sim) Update(_ float64, _ engine.ReadView) {
	if s.Done() {
		return
	}

	var current point
	var neighbors []Direction
	for len(s.stack) > 0 {
		current = s.stack[len(s.stack)-1]
		neighbors = s.unvisitedNeighbors(current)
		if len(neighbors) > 0 {
			break
		}
		s.stack = s.stack[:len(s.stack)-1]
	}
	if len(neighbors) == 0 {
		return
	}

	dir := neighbors[s.rng.Intn(len(neighbors))]
	dx, dy := dir.Offset()
	next := point{current.X + dx, current.Y + dy}

	nextCell := s.cell(next)
	nextCell.Visited = true
	nextCell.Paths |= dir.Opposite()
	s.cell(current).Paths |= dir

	s.stack = append(s.stack, next)
	s.visited++
}

// Render implements engine.Game.
func (s *Sim) Render(v engine.DrawView) {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.drawCell(v, x, y, s.cells[y*s.width+x])
		}
	}
}

func (s *Sim) drawCell(v engine.DrawView, x, y int, c Cell) {
	pw := s.pathWidth
	ox := x*(pw+1) + borderOffset
	oy := y*(pw+1) + borderOffset

	color := s.unvisitedColor
	if c.Visited {
		color = s.visitedColor
	}
	v.DrawRect(ox, oy, pw, pw, color)

	// Openings to the south and east; north and west are drawn by the
	// neighbor on that side.
	if c.Paths&South != 0 {
		v.DrawRect(ox, oy+pw, pw, 1, s.visitedColor)
	}
	if c.Paths&East != 0 {
		v.DrawRect(ox+pw, oy, 1, pw, s.visitedColor)
	}
}

func (s *Sim) cell(p point) *Cell {
	return &s.cells[p.Y*s.width+p.X]
}

func (s *Sim) unvisitedNeighbors(p point) []Direction {
	var result []Direction
	for _, d := range directions {
		dx, dy := d.Offset()
		if c, ok := s.Cell(p.X+dx, p.Y+dy); ok && !c.Visited {
			result = append(result, d)
		}
	}
	return result
}
