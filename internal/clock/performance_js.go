//go:build js && wasm

package clock

import "syscall/js"

// Performance returns a HostTimer reading the browser's performance.now.
func Performance() (*HostTimer, error) {
	perf := js.Global().Get("performance")
	if !perf.Truthy() || perf.Get("now").Type() != js.TypeFunction {
		return nil, ErrNoHostTimer
	}
	return NewHostTimer(func() float64 {
		return perf.Call("now").Float()
	})
}
