package window

import (
	"fmt"

	"github.com/vovakirdan/gridloop/internal/clock"
)

// hostClock picks the clock a window host reports to the engine. In the
// browser the page's performance timer is required; native windows leave
// the choice to the engine.
func hostClock(browser bool, perf func() (*clock.HostTimer, error)) (clock.Clock, error) {
	if !browser {
		return nil, nil
	}
	t, err := perf()
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	return t, nil
}
