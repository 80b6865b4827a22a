// Package affinity binds the measuring thread to one logical CPU.
//
// Pinning is a one-time startup step: the first call decides, later calls
// report the same outcome. There is no unpinning - the binding lives as long
// as the process.
package affinity

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
)

var ErrPinning = errors.New("cannot pin to CPU")

// Function substitutions for unit tests
var (
	logicalCounts = cpu.Counts
	setAffinity   = platformSetAffinity
)

var (
	pinOnce sync.Once
	pinErr  error
	pinCore = -1
)

// Locks calling goroutine to its OS thread and binds the thread to logical CPU `core`.
// Locking happens even when binding fails, so that per-thread counters keep
// observing the same thread.
func PinCurrentTo(core int) error {
	runtime.LockOSThread()
	pinOnce.Do(func() {
		pinErr = pin(core)
		if pinErr == nil {
			pinCore = core
		}
	})
	return pinErr
}

// Core the thread is bound to, -1 if not pinned
func PinnedCore() int {
	return pinCore
}

func pin(core int) error {
	count, err := logicalCounts(true)
	if err != nil {
		return fmt.Errorf("%w %d: %w", ErrPinning, core, err)
	}
	if core < 0 || core >= count {
		return fmt.Errorf("%w %d: host has %d logical CPUs", ErrPinning, core, count)
	}
	if err := setAffinity(core); err != nil {
		return fmt.Errorf("%w %d: %w", ErrPinning, core, err)
	}
	return nil
}
