//go:build !linux

package perfgroup

import (
	"fmt"
	"runtime"
)

func openPerfDriver(specs []CounterSpec) (driver, error) {
	return nil, fmt.Errorf("%w: perf events are not supported on %s", ErrCounterUnavailable, runtime.GOOS)
}
