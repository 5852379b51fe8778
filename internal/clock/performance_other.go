//go:build !(js && wasm)

package clock

// Performance is only available in js/wasm builds.
func Performance() (*HostTimer, error) {
	return nil, ErrNoHostTimer
}
