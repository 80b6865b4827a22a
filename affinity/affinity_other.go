//go:build !linux

package affinity

import (
	"fmt"
	"runtime"
)

func platformSetAffinity(core int) error {
	return fmt.Errorf("thread affinity is not supported on %s", runtime.GOOS)
}
