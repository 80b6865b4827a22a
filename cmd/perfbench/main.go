package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/aknopov/fancylogger"
	"github.com/aknopov/perfharness"
	"github.com/aknopov/perfharness/affinity"
	"github.com/aknopov/perfharness/cmd/param"
	"github.com/aknopov/perfharness/perfgroup"
	"github.com/aknopov/perfharness/procstat"
	"github.com/aknopov/perfharness/tickcount"
	"github.com/aknopov/perfharness/workload"
)

const (
	exitOk    = 0
	exitFail  = 1
	exitUsage = 2
)

var (
	logger = fancylogger.NewLogger(os.Stderr, fancylogger.LiteFg)
)

// Keep main goroutine on the main thread - counters and affinity are per thread
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

// Everything acquired here is released by deferred calls, so the exit code
// is returned instead of exiting in place.
func run(args []string, sink io.Writer) int {
	params, err := param.ParseParams(args, func() { usage(os.Stderr) })
	if errors.Is(err, flag.ErrHelp) {
		return exitOk
	}
	if err != nil {
		logger.Error().Err(err).Msg("Invalid command line")
		return exitUsage
	}

	if err := tickcount.Check(); err != nil {
		logger.Error().Err(err).Msg("Cannot measure cycles")
		return exitFail
	}

	work, err := workload.Lookup(params.Workload, params.Limit)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid workload")
		return exitUsage
	}

	if err := affinity.PinCurrentTo(params.Core); err != nil {
		logger.Warn().Err(err).Msg("Running without CPU pinning - counters may be noisy")
	}
	warnOtherInstances(args[0])

	group, err := perfgroup.Open(perfgroup.DefaultSpecs)
	if err != nil {
		logger.Error().Err(err).Msg("Cannot open performance counters")
		return exitFail
	}
	defer group.Close() //nolint:errcheck

	logger.Info().
		Str("cpu", tickcount.CPUName()).
		Int("core", affinity.PinnedCore()).
		Str("workload", params.Workload).
		Uint64("iterations", params.Iterations).
		Uint64("rdtscp_overhead", tickcount.TickCountOverhead()).
		Msg("Starting benchmark")

	userBefore := sampleCpuUser(params)
	err = perfharness.RunMany(sink, params.Iterations, group, work, group.Names())
	if err != nil {
		logger.Error().Err(err).Msg("Benchmark aborted")
		return exitFail
	}
	if userBefore >= 0 {
		if userAfter := sampleCpuUser(params); userAfter >= userBefore {
			logger.Info().Int("core", params.Core).Int64("user_ticks", userAfter-userBefore).Msg("CPU user time during run")
		}
	}

	if group.Multiplexed() {
		logger.Warn().Msg("Counter group was multiplexed - counts cover only part of the run time")
	}

	return exitOk
}

// User ticks of the pinned core; -1 if not requested or not available
func sampleCpuUser(params *param.Params) int64 {
	if !params.CpuUsage {
		return -1
	}
	user, err := procstat.CpuUser(params.Core)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot read CPU user time")
		return -1
	}
	return int64(user)
}

func warnOtherInstances(exe string) {
	pids := perfharness.AssumeOnErr(func() ([]int, error) { return procstat.OtherInstances(exe) }, []int(nil))
	if len(pids) > 0 {
		logger.Warn().Ints("pids", pids).Msg("Other benchmark instances are running")
	}
}

//nolint:errcheck
func usage(sink io.Writer) {
	fmt.Fprintf(sink, `Runs a workload under hardware performance counters, one CSV row per iteration
Usage: perfbench -core=... -workload=... -limit=... -cpu-usage [iterations]
iterations - number of measured iterations (default %d)
-core - logical CPU to pin to (default %d)
-limit - workload size, 0 for the workload default
-cpu-usage - log user time of the pinned core (from /proc/stat)
-workload - one of (default %s):
`, param.DefIterations, param.DefCore, param.DefWorkload)
	for _, name := range workload.Names() {
		fmt.Fprintf(sink, "  %s - %s\n", name, workload.Describe(name))
	}
}
