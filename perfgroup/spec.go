package perfgroup

// Kind of a perf event; values follow the perf_event ABI (PERF_TYPE_*)
type EventType uint32

const (
	Hardware EventType = 0
	Software EventType = 1
)

// Hardware event configs (PERF_COUNT_HW_*)
const (
	HwCPUCycles          uint64 = 0
	HwInstructions       uint64 = 1
	HwCacheReferences    uint64 = 2
	HwCacheMisses        uint64 = 3
	HwBranchInstructions uint64 = 4
	HwBranchMisses       uint64 = 5
	HwRefCPUCycles       uint64 = 9
)

// Software event configs (PERF_COUNT_SW_*)
const (
	SwCPUClock        uint64 = 0
	SwTaskClock       uint64 = 1
	SwPageFaults      uint64 = 2
	SwContextSwitches uint64 = 3
	SwCPUMigrations   uint64 = 4
	SwPageFaultsMin   uint64 = 5
	SwPageFaultsMaj   uint64 = 6
	SwDummy           uint64 = 9
)

// One countable event. Name doubles as the output column name.
type CounterSpec struct {
	Name   string
	Type   EventType
	Config uint64
}

// Fixed counter list; the order defines output column order
var DefaultSpecs = []CounterSpec{
	{"cpu_cycles", Hardware, HwCPUCycles},
	{"instructions", Hardware, HwInstructions},
	{"cache_references", Hardware, HwCacheReferences},
	{"cache_missed", Hardware, HwCacheMisses},
	{"branch_instructions", Hardware, HwBranchInstructions},
	{"branch_misses", Hardware, HwBranchMisses},
	{"ref_cpu_cycles", Hardware, HwRefCPUCycles},
	{"cpu_clock", Software, SwCPUClock},
	{"task_clock", Software, SwTaskClock},
	{"page_faults", Software, SwPageFaults},
	{"context_switches", Software, SwContextSwitches},
	{"cpu_migrations", Software, SwCPUMigrations},
	{"page_faults_min", Software, SwPageFaultsMin},
	{"page_faults_maj", Software, SwPageFaultsMaj},
}

// Column names of specs in the same order
func Names(specs []CounterSpec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}

func (t EventType) String() string {
	switch t {
	case Hardware:
		return "hardware"
	case Software:
		return "software"
	default:
		return "unknown"
	}
}
