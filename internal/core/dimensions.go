package core

import "errors"

var (
	// ErrInvalidPointSize is returned when a point size below 1 is requested.
	ErrInvalidPointSize = errors.New("core: point size must be at least 1")

	// ErrInvalidGrid is returned when a grid extent of zero points is requested.
	ErrInvalidGrid = errors.New("core: grid extent must be at least 1x1 points")

	// ErrDisplayTooSmall is returned when the display cannot hold a single point.
	ErrDisplayTooSmall = errors.New("core: display smaller than one point")
)

// Dimensions maps logical points to pixel rectangles.
// A point is a PointSize x PointSize square of pixels; the grid is
// Width x Height points. Values are immutable once constructed.
type Dimensions struct {
	pointSize int
	width     int
	height    int
}

// NewDimensions creates a grid of width x height points, each pointSize
// pixels wide.
func NewDimensions(pointSize, width, height int) (Dimensions, error) {
	if pointSize < 1 {
		return Dimensions{}, ErrInvalidPointSize
	}
	if width < 1 || height < 1 {
		return Dimensions{}, ErrInvalidGrid
	}
	return Dimensions{pointSize: pointSize, width: width, height: height}, nil
}

// DefaultDimensions is an 800x600 grid at one pixel per point.
func DefaultDimensions() Dimensions {
	return Dimensions{pointSize: 1, width: 800, height: 600}
}

// FitDimensions picks the largest point size that fits a gridW x gridH grid
// into a displayW x displayH display. The point size never drops below 1.
func FitDimensions(displayW, displayH, gridW, gridH int) (Dimensions, error) {
	if gridW < 1 || gridH < 1 {
		return Dimensions{}, ErrInvalidGrid
	}
	pointSize := Min(displayW/gridW, displayH/gridH)
	if pointSize < 1 {
		pointSize = 1
	}
	return NewDimensions(pointSize, gridW, gridH)
}

// StretchDimensions fills a displayW x displayH display with as many whole
// points of the given size as fit.
func StretchDimensions(displayW, displayH, pointSize int) (Dimensions, error) {
	if pointSize < 1 {
		return Dimensions{}, ErrInvalidPointSize
	}
	w, h := displayW/pointSize, displayH/pointSize
	if w < 1 || h < 1 {
		return Dimensions{}, ErrDisplayTooSmall
	}
	return NewDimensions(pointSize, w, h)
}

// PointSize returns the size of a point in pixels.
func (d Dimensions) PointSize() int { return d.pointSize }

// Width returns the grid width in points.
func (d Dimensions) Width() int { return d.width }

// Height returns the grid height in points.
func (d Dimensions) Height() int { return d.height }

// PixelWidth returns the grid width in pixels.
func (d Dimensions) PixelWidth() int { return d.width * d.pointSize }

// PixelHeight returns the grid height in pixels.
func (d Dimensions) PixelHeight() int { return d.height * d.pointSize }

// PointAt returns the pixel rectangle of the point at (x, y).
// No bounds checking is done; the surface clips.
func (d Dimensions) PointAt(x, y int) Rect {
	p := d.pointSize
	return Rect{X: x * p, Y: y * p, W: p, H: p}
}

// RectAt scales a rectangle given in points to pixels.
func (d Dimensions) RectAt(x, y, w, h int) Rect {
	p := d.pointSize
	return Rect{X: x * p, Y: y * p, W: w * p, H: h * p}
}
