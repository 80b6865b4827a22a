//go:build linux

package affinity

import "golang.org/x/sys/unix"

// Binds the calling thread (pid 0) to a single CPU
func platformSetAffinity(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	return unix.SchedSetaffinity(0, &set)
}
