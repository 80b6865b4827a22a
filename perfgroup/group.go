// Package perfgroup manages a set of performance counters that are enabled,
// disabled and read as one group, so that all values describe the same window.
//
// Lifecycle of a group:
//
//	Closed -> Opened -> Enabled <-> Disabled -> Closed
//
// A group counts only the OS thread that opened it. Callers must keep the
// goroutine locked to its thread (runtime.LockOSThread) while the group is alive.
package perfgroup

import (
	"errors"
	"fmt"
)

type State int

const (
	Closed State = iota
	Opened
	Enabled
	Disabled
)

var (
	ErrCounterUnavailable = errors.New("performance counter unavailable")
	ErrCounterState       = errors.New("invalid counter group state")
)

// Raw group sample as returned by the OS - values are in spec order
type sample struct {
	timeEnabled uint64
	timeRunning uint64
	values      []uint64
}

// OS side of a group
type driver interface {
	enable() error
	disable() error
	reset() error
	read() (sample, error)
	close() error
}

// Opens all counters or none; substituted in unit tests
var openDriver = openPerfDriver

// Group of counters sharing one enable/disable schedule
type Group struct {
	specs       []CounterSpec
	drv         driver
	state       State
	multiplexed bool
}

// Opens counters for all specs as one group on the calling thread.
// The group is returned disabled.
func Open(specs []CounterSpec) (*Group, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: empty counter list", ErrCounterUnavailable)
	}

	drv, err := openDriver(specs)
	if err != nil {
		return nil, err
	}

	ownSpecs := make([]CounterSpec, len(specs))
	copy(ownSpecs, specs)
	return &Group{specs: ownSpecs, drv: drv, state: Opened}, nil
}

// Starts or resumes counting of all counters
func (g *Group) Enable() error {
	if g.state != Opened && g.state != Disabled {
		return g.stateErr("enable")
	}
	if err := g.drv.enable(); err != nil {
		return fmt.Errorf("%w: enable: %w", ErrCounterState, err)
	}
	g.state = Enabled
	return nil
}

// Stops counting; values stay frozen until the next Enable
func (g *Group) Disable() error {
	if g.state != Enabled {
		return g.stateErr("disable")
	}
	if err := g.drv.disable(); err != nil {
		return fmt.Errorf("%w: disable: %w", ErrCounterState, err)
	}
	g.state = Disabled
	return nil
}

// Zeroes all counters. Not allowed while counting.
func (g *Group) Reset() error {
	if g.state != Opened && g.state != Disabled {
		return g.stateErr("reset")
	}
	if err := g.drv.reset(); err != nil {
		return fmt.Errorf("%w: reset: %w", ErrCounterState, err)
	}
	return nil
}

// Returns accumulated counts in spec order. Valid only after at least one
// enable/disable cycle.
func (g *Group) Read() ([]uint64, error) {
	if g.state != Disabled {
		return nil, g.stateErr("read")
	}

	s, err := g.drv.read()
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrCounterState, err)
	}
	if len(s.values) != len(g.specs) {
		return nil, fmt.Errorf("%w: read %d values for %d counters", ErrCounterState, len(s.values), len(g.specs))
	}
	if s.timeEnabled > 0 && s.timeRunning == 0 {
		return nil, fmt.Errorf("%w: group of %d counters was never scheduled on the PMU", ErrCounterUnavailable, len(g.specs))
	}
	if s.timeRunning < s.timeEnabled {
		g.multiplexed = true
	}

	return s.values, nil
}

// Releases OS resources. Safe to call more than once.
func (g *Group) Close() error {
	if g.state == Closed {
		return nil
	}
	g.state = Closed
	return g.drv.close()
}

func (g *Group) State() State {
	return g.state
}

// Counter names in spec order
func (g *Group) Names() []string {
	return Names(g.specs)
}

// Whether the kernel ever time-shared the group with other events, i.e. the
// counts cover only a part of the enabled time.
func (g *Group) Multiplexed() bool {
	return g.multiplexed
}

func (g *Group) stateErr(op string) error {
	return fmt.Errorf("%w: cannot %s in state %v", ErrCounterState, op, g.state)
}

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opened:
		return "opened"
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
