//go:build amd64

package tickcount

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
)

// Implemented in tickcount_amd64.s
func readTSCP() uint64

// Returns RDTSCP value. The instruction waits for all preceding instructions
// to retire, so a pair of reads tightly bounds the code between them.
func TickCount() uint64 {
	return readTSCP()
}

// Verifies that the processor implements RDTSCP
func Check() error {
	if !cpuid.CPU.Supports(cpuid.RDTSCP) {
		return fmt.Errorf("%w: RDTSCP is not supported by %q", ErrCapabilityUnavailable, cpuid.CPU.BrandName)
	}
	return nil
}

// Processor brand as reported by CPUID
func CPUName() string {
	return cpuid.CPU.BrandName
}
