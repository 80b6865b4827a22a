//go:build !amd64

package tickcount

import (
	"fmt"
	"runtime"
)

// There is no serializing cycle counter on this architecture. Callers must
// run Check first; reaching this is a programming error.
func TickCount() uint64 {
	panic(fmt.Errorf("%w on %s", ErrCapabilityUnavailable, runtime.GOARCH))
}

func Check() error {
	return fmt.Errorf("%w on %s", ErrCapabilityUnavailable, runtime.GOARCH)
}

func CPUName() string {
	return runtime.GOARCH
}
