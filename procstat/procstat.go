// Package procstat provides host observations made outside the measured window:
// per-core user time from /proc/stat and detection of concurrent harness runs.
package procstat

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

var ErrNoCpuStat = errors.New("no CPU statistics")

// Function and path substitutions for unit tests
var (
	statPath       = "/proc/stat"
	getProcessList = ps.Processes
	getPid         = os.Getpid
)

// User mode time of logical CPU `core` in clock ticks (USER_HZ).
// A malformed value is reported as an error rather than skipped.
func CpuUser(core int) (uint64, error) {
	stat, err := os.Open(statPath)
	if err != nil {
		return 0, err
	}
	defer stat.Close() //nolint:errcheck

	cpuName := "cpu" + strconv.Itoa(core)
	scanner := bufio.NewScanner(stat)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != cpuName {
			continue
		}
		if len(fields) < 2 {
			return 0, fmt.Errorf("%w: '%s' has no user time", ErrNoCpuStat, cpuName)
		}
		user, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: '%s' user time: %v", ErrNoCpuStat, cpuName, err)
		}
		return user, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return 0, fmt.Errorf("%w: '%s' not found in %s", ErrNoCpuStat, cpuName, statPath)
}

// PIDs of other running processes with the same executable name as `exe`
func OtherInstances(exe string) ([]int, error) {
	procList, err := getProcessList()
	if err != nil {
		return nil, err
	}

	// Linux truncates executable names to 15 characters
	name := filepath.Base(exe)
	if len(name) > 15 {
		name = name[:15]
	}

	self := getPid()
	pids := make([]int, 0)
	for _, p := range procList {
		if p != nil && p.Pid() != self && p.Executable() == name {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
