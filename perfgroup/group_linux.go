//go:build linux

package perfgroup

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	readFormat = unix.PERF_FORMAT_GROUP | unix.PERF_FORMAT_ID |
		unix.PERF_FORMAT_TOTAL_TIME_ENABLED | unix.PERF_FORMAT_TOTAL_TIME_RUNNING

	// PERF_IOC_FLAG_GROUP - apply ioctl to all group members
	iocFlagGroup = 1
)

// perf_event group: a disabled dummy leader plus one sibling per spec
type perfDriver struct {
	leader int
	fds    []int          // siblings in spec order
	index  map[uint64]int // kernel event id -> spec position
	buf    []byte
}

func openPerfDriver(specs []CounterSpec) (driver, error) {
	leader, err := perfEventOpen(CounterSpec{"dummy", Software, SwDummy}, -1, true)
	if err != nil {
		return nil, fmt.Errorf("%w: group leader: %v", ErrCounterUnavailable, err)
	}

	d := &perfDriver{
		leader: leader,
		fds:    make([]int, 0, len(specs)),
		index:  make(map[uint64]int, len(specs)),
		// nr, time_enabled, time_running, then {value, id} for leader and siblings
		buf: make([]byte, 8*(3+2*(len(specs)+1))),
	}

	for i, spec := range specs {
		fd, err := perfEventOpen(spec, leader, false)
		if err != nil {
			d.close() //nolint:errcheck
			return nil, fmt.Errorf("%w: %s (%v %d): %v", ErrCounterUnavailable, spec.Name, spec.Type, spec.Config, err)
		}
		d.fds = append(d.fds, fd)

		id, err := eventID(fd)
		if err != nil {
			d.close() //nolint:errcheck
			return nil, fmt.Errorf("%w: %s: event id: %v", ErrCounterUnavailable, spec.Name, err)
		}
		d.index[id] = i
	}

	return d, nil
}

// Opens an event for the calling thread on any CPU
func perfEventOpen(spec CounterSpec, groupFd int, disabled bool) (int, error) {
	attr := unix.PerfEventAttr{
		Type:        uint32(spec.Type),
		Size:        uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config:      spec.Config,
		Read_format: readFormat,
		Bits:        unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	if disabled {
		attr.Bits |= unix.PerfBitDisabled
	}

	return unix.PerfEventOpen(&attr, 0, -1, groupFd, unix.PERF_FLAG_FD_CLOEXEC)
}

func eventID(fd int) (uint64, error) {
	var id uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(unix.PERF_EVENT_IOC_ID), uintptr(unsafe.Pointer(&id)))
	if errno != 0 {
		return 0, errno
	}
	return id, nil
}

func (d *perfDriver) enable() error {
	return unix.IoctlSetInt(d.leader, unix.PERF_EVENT_IOC_ENABLE, iocFlagGroup)
}

func (d *perfDriver) disable() error {
	return unix.IoctlSetInt(d.leader, unix.PERF_EVENT_IOC_DISABLE, iocFlagGroup)
}

func (d *perfDriver) reset() error {
	return unix.IoctlSetInt(d.leader, unix.PERF_EVENT_IOC_RESET, iocFlagGroup)
}

func (d *perfDriver) read() (sample, error) {
	n, err := unix.Read(d.leader, d.buf)
	if err != nil {
		return sample{}, err
	}
	return decodeGroup(d.buf[:n], d.index)
}

func (d *perfDriver) close() error {
	var firstErr error
	for _, fd := range d.fds {
		if err := unix.Close(fd); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	d.fds = nil
	if d.leader >= 0 {
		if err := unix.Close(d.leader); err != nil && firstErr == nil {
			firstErr = err
		}
		d.leader = -1
	}
	return firstErr
}

// Decodes PERF_FORMAT_GROUP|ID|TOTAL_TIME_* record. Values are placed by
// event id; ids not in the index (the leader) are skipped.
func decodeGroup(buf []byte, index map[uint64]int) (sample, error) {
	if len(buf) < 24 {
		return sample{}, fmt.Errorf("short group read: %d bytes", len(buf))
	}

	nr := binary.NativeEndian.Uint64(buf[0:])
	if uint64(len(buf)) < 24+16*nr {
		return sample{}, fmt.Errorf("group read of %d bytes is short for %d events", len(buf), nr)
	}

	s := sample{
		timeEnabled: binary.NativeEndian.Uint64(buf[8:]),
		timeRunning: binary.NativeEndian.Uint64(buf[16:]),
		values:      make([]uint64, len(index)),
	}

	found := 0
	for i := uint64(0); i < nr; i++ {
		off := 24 + 16*i
		value := binary.NativeEndian.Uint64(buf[off:])
		id := binary.NativeEndian.Uint64(buf[off+8:])
		if pos, ok := index[id]; ok {
			s.values[pos] = value
			found++
		}
	}
	if found != len(index) {
		return sample{}, fmt.Errorf("group read has %d of %d counters", found, len(index))
	}

	return s, nil
}
