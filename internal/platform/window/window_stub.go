//go:build !ebiten

package window

import (
	"errors"

	"github.com/vovakirdan/gridloop/internal/engine"
)

// ErrUnavailable is returned when the binary was built without window
// support. Rebuild with `-tags ebiten`.
var ErrUnavailable = errors.New("window: built without the ebiten tag")

// Host is a placeholder that satisfies the API expected by the window build.
type Host struct{}

// New always reports that the ebiten build tag is missing.
func New(int) (*Host, error) {
	return nil, ErrUnavailable
}

// Bounds always reports that the ebiten build tag is missing.
func (h *Host) Bounds() (int, int, error) {
	return 0, 0, ErrUnavailable
}

// Open always reports that the ebiten build tag is missing.
func (h *Host) Open(string, int, int) (engine.Surface, engine.Input, error) {
	return nil, nil, ErrUnavailable
}

// SetMainLoop always reports that the ebiten build tag is missing.
func (h *Host) SetMainLoop(func() bool) error {
	return ErrUnavailable
}
