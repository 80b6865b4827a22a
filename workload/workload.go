// Package workload is a catalog of functions to benchmark.
//
// Every entry is a factory taking a size parameter ("limit") and returning a
// zero-argument function, so that the measured call carries no argument setup.
package workload

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aknopov/perfharness"
)

var (
	ErrUnknownWorkload = errors.New("unknown workload")
	ErrLimitOutOfRange = errors.New("workload limit out of range")
)

type entry struct {
	defLimit uint64
	maxLimit uint64
	descr    string
	create   func(limit uint64) perfharness.Workload
}

const Default = "primes"

var catalog = map[string]entry{
	"primes": {3_000_000, math.MaxUint64, "count primes below limit, trial division v1", func(limit uint64) perfharness.Workload {
		return func() uint64 { return CountPrimes(limit, IsPrimeV1) }
	}},
	"primes-v2": {3_000_000, math.MaxUint64, "count primes below limit, trial division v2", func(limit uint64) perfharness.Workload {
		return func() uint64 { return CountPrimes(limit, IsPrimeV2) }
	}},
	"flint-hills": {2000, math.MaxInt, "Flint-Hills partial sum of limit terms (x1e6)", func(limit uint64) perfharness.Workload {
		return func() uint64 { return scaledSum(FlintHillsSum(int(limit))) }
	}},
	"argon2": {1, math.MaxUint32, "Argon2id hash with time cost limit", func(limit uint64) perfharness.Workload {
		return func() uint64 { return hashPrefix(Hash(uint32(limit))) }
	}},
}

// Returns workload by name; zero limit selects the workload's default.
// Limits the workload cannot represent are rejected here, before anything is measured.
func Lookup(name string, limit uint64) (perfharness.Workload, error) {
	e, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s', known: %v", ErrUnknownWorkload, name, Names())
	}
	if limit == 0 {
		limit = e.defLimit
	}
	if limit > e.maxLimit {
		return nil, fmt.Errorf("%w: %s accepts up to %d, got %d", ErrLimitOutOfRange, name, e.maxLimit, limit)
	}
	return e.create(limit), nil
}

// Sorted workload names
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Human readable description with the default limit
func Describe(name string) string {
	e, ok := catalog[name]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s (default limit %d)", e.descr, e.defLimit)
}
