package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridloop/internal/core"
)

// halfBlock draws the upper pixel of a cell in the foreground color and the
// lower one in the background color, so one terminal row holds two pixel
// rows.
const halfBlock = "▀"

// cellColors is the pixel pair shown by one terminal cell.
type cellColors struct {
	top, bottom core.Color
}

// Renderer turns a canvas into styled terminal text.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles map[cellColors]lipgloss.Style
}

// NewRenderer creates a renderer for the given lipgloss renderer. A nil
// renderer uses lipgloss's default, which detects the local terminal.
func NewRenderer(lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{
		lg:     lg,
		styles: make(map[cellColors]lipgloss.Style),
	}
}

// Rows returns the number of terminal rows a canvas of the given pixel
// height occupies.
func Rows(pixelHeight int) int {
	return (pixelHeight + 1) / 2
}

// Render converts the canvas to one line per pair of pixel rows.
// Adjacent cells with the same colors share one styled run to keep the
// escape sequences down.
func (r *Renderer) Render(c *core.Canvas) string {
	return r.RenderRegion(c, c.Width(), Rows(c.Height()))
}

// RenderRegion renders at most cols x rows terminal cells from the top left
// of the canvas. The rest is clipped.
func (r *Renderer) RenderRegion(c *core.Canvas, cols, rows int) string {
	w := min(c.Width(), max(cols, 0))
	rows = min(Rows(c.Height()), max(rows, 0))

	var sb strings.Builder
	sb.Grow(w*rows*len(halfBlock) + rows)

	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		y := row * 2

		x := 0
		for x < w {
			start := r.cell(c, x, y)
			n := 0
			for x < w && r.cell(c, x, y) == start {
				n++
				x++
			}
			sb.WriteString(r.style(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

func (r *Renderer) cell(c *core.Canvas, x, y int) cellColors {
	cc := cellColors{top: c.At(x, y)}
	if y+1 < c.Height() {
		cc.bottom = c.At(x, y+1)
	}
	return cc
}

func (r *Renderer) style(cc cellColors) lipgloss.Style {
	if s, ok := r.styles[cc]; ok {
		return s
	}
	s := r.lg.NewStyle().
		Foreground(lipgloss.Color(cc.top.Hex())).
		Background(lipgloss.Color(cc.bottom.Hex()))
	r.styles[cc] = s
	return s
}
