// Package tickcount reads the processor's serializing time-stamp counter.
package tickcount

import (
	"errors"
	"math"
)

const (
	ovhdCnt = 10000
)

// Host lacks a serializing cycle counter
var ErrCapabilityUnavailable = errors.New("serializing cycle counter is unavailable")

// Minimal number of ticks between two back-to-back reads.
// See https://community.intel.com/t5/Intel-ISA-Extensions/Measure-the-execution-time-using-RDTSC/td-p/1365538
func TickCountOverhead() uint64 {
	ovhd := uint64(math.MaxUint64)

	for i := 0; i < ovhdCnt; i++ {
		cnt0 := TickCount()
		delta := TickCount() - cnt0
		if delta < ovhd {
			ovhd = delta
		}
	}

	return ovhd
}
