package param

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
)

const (
	DefIterations = 1000
	DefCore       = 3
	DefWorkload   = "primes"
)

var ErrMalformedArgument = errors.New("malformed argument")

// Benchmark run settings
type Params struct {
	Iterations uint64 // number of trials
	Core       int    // logical CPU to pin to
	Workload   string // workload name
	Limit      uint64 // workload size, 0 - workload default
	CpuUsage   bool   // log user time of the pinned core
}

// Parses commandline `prog [flags] [iterations]`
func ParseParams(args []string, usage func()) (*Params, error) {
	progName := filepath.Base(args[0])
	flagSet := flag.NewFlagSet(progName, flag.ContinueOnError)
	flagSet.Usage = usage
	flagSet.SetOutput(discard{})

	params := Params{Iterations: DefIterations}
	flagSet.IntVar(&params.Core, "core", DefCore, "")
	flagSet.StringVar(&params.Workload, "workload", DefWorkload, "")
	flagSet.Uint64Var(&params.Limit, "limit", 0, "")
	flagSet.BoolVar(&params.CpuUsage, "cpu-usage", false, "")

	err := flagSet.Parse(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedArgument, err)
	}

	otherArgs := flagSet.Args()
	switch len(otherArgs) {
	case 0:
	case 1:
		params.Iterations, err = strconv.ParseUint(otherArgs[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: iterations '%s' is not a non-negative integer", ErrMalformedArgument, otherArgs[0])
		}
	default:
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrMalformedArgument, otherArgs[1:])
	}

	return &params, nil
}

// Flag package messages are replaced by the caller's usage text
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
