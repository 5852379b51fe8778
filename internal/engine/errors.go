package engine

import "errors"

var (
	// ErrNoGame is returned by Build when no simulation was given.
	ErrNoGame = errors.New("engine: no game")

	// ErrNoHost is returned by Build when no host was configured.
	ErrNoHost = errors.New("engine: no host")

	// ErrNoScheduler is returned by CallbackDriver without a host scheduler.
	ErrNoScheduler = errors.New("engine: callback driver has no scheduler")

	// ErrBuilderConsumed is returned when a Builder is built twice.
	ErrBuilderConsumed = errors.New("engine: builder already consumed")
)
