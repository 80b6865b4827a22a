// Package perfharness runs a workload repeatedly under a counter group and a
// cycle-timestamp bracket, streaming one CSV row per trial.
package perfharness

import (
	"fmt"
	"io"
	"time"

	"github.com/aknopov/perfharness/perfgroup"
	"github.com/aknopov/perfharness/tickcount"
)

// Benchmarked function. The result is reported but otherwise opaque.
type Workload func() uint64

// Counter group as seen by the runner - see perfgroup.Group
type Counters interface {
	Reset() error
	Enable() error
	Disable() error
	Read() ([]uint64, error)
}

// One measured iteration
type TrialResult struct {
	Result    uint64   // workload result
	ElapsedMs int64    // wall clock, truncated to milliseconds
	Cycles    uint64   // RDTSCP delta around the workload call
	Counts    []uint64 // one value per counter, in group order
}

// Function substitutions for unit tests
var (
	tickCountF = tickcount.TickCount
	nowF       = time.Now
)

// Runs one trial. The counter window strictly contains the cycle-timestamp
// window, which in turn contains only the workload call.
func RunOnce(counters Counters, workload Workload, numCounters int) (TrialResult, error) {
	if err := counters.Reset(); err != nil {
		return TrialResult{}, err
	}

	start := nowF()
	if err := counters.Enable(); err != nil {
		return TrialResult{}, err
	}
	t0 := tickCountF()
	result := workload()
	t1 := tickCountF()
	if err := counters.Disable(); err != nil {
		return TrialResult{}, err
	}
	elapsed := nowF().Sub(start)

	counts, err := counters.Read()
	if err != nil {
		return TrialResult{}, err
	}
	if len(counts) != numCounters {
		return TrialResult{}, fmt.Errorf("%w: got %d counter values, expected %d", perfgroup.ErrCounterState, len(counts), numCounters)
	}

	return TrialResult{Result: result, ElapsedMs: elapsed.Milliseconds(), Cycles: t1 - t0, Counts: counts}, nil
}

// Writes header and then runs `iterations` trials, writing every row before
// the next trial starts. Stops at the first failure; rows written so far stay valid.
//
//   - names - counter column names in group order
func RunMany(sink io.Writer, iterations uint64, counters Counters, workload Workload, names []string) error {
	if err := WriteHeader(sink, names); err != nil {
		return err
	}

	for i := uint64(0); i < iterations; i++ {
		trial, err := RunOnce(counters, workload, len(names))
		if err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		if err := WriteRow(sink, trial); err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
	}

	return nil
}

// Recover from error - assume default value
func AssumeOnErr[T any](f func() (T, error), defVal T) T {
	val, err := f()
	if err != nil {
		return defVal
	}
	return val
}
