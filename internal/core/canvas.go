package core

// Canvas is a pixel framebuffer that hosts present to a terminal or window.
// Drawing outside the canvas is clipped silently.
type Canvas struct {
	width  int
	height int
	pix    []Color
}

// NewCanvas creates a canvas of the given size in pixels, cleared to black.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Bounds returns the canvas area as a rectangle at the origin.
func (c *Canvas) Bounds() Rect {
	return Rect{W: c.width, H: c.height}
}

// Resize reallocates the canvas. Content is not preserved.
func (c *Canvas) Resize(width, height int) {
	c.width = Max(width, 0)
	c.height = Max(height, 0)
	c.pix = make([]Color, c.width*c.height)
	c.Clear(Black)
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col Color) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// Set colors a single pixel. Out-of-bounds coordinates are ignored.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pix[y*c.width+x] = col
}

// At returns the color of a pixel, or the zero Color out of bounds.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Color{}
	}
	return c.pix[y*c.width+x]
}

// FillRect fills the part of r that lies on the canvas.
func (c *Canvas) FillRect(r Rect, col Color) {
	r = r.Intersect(c.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		row := c.pix[y*c.width : (y+1)*c.width]
		for x := r.X; x < r.Right(); x++ {
			row[x] = col
		}
	}
}

// Pixels exposes the backing row-major slice.
func (c *Canvas) Pixels() []Color {
	return c.pix
}

// Equal reports whether two canvases have the same size and pixels.
func (c *Canvas) Equal(other *Canvas) bool {
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i := range c.pix {
		if c.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	clone := &Canvas{width: c.width, height: c.height, pix: make([]Color, len(c.pix))}
	copy(clone.pix, c.pix)
	return clone
}
