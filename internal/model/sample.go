package model

// NoBattery is the battery percentage reported when no battery is present.
const NoBattery = -1

// CPUStats is one cumulative read of the aggregate CPU time counters, in
// seconds. Counters only move forward; a single read carries no percentage,
// only the delta between two reads does.
type CPUStats struct {
	User    float64
	Nice    float64
	System  float64
	Idle    float64
	IOWait  float64
	IRQ     float64
	SoftIRQ float64
	Steal   float64
}

// Busy returns the time spent doing work.
func (c CPUStats) Busy() float64 {
	return c.User + c.Nice + c.System + c.IRQ + c.SoftIRQ + c.Steal
}

// IdleAll returns idle time including iowait.
func (c CPUStats) IdleAll() float64 { return c.Idle + c.IOWait }

// Total returns the sum of all counters.
func (c CPUStats) Total() float64 { return c.Busy() + c.IdleAll() }

// Usage is the per-tick CPU utilization derived from two CPUStats reads.
type Usage struct {
	CPU    float64 // busy percent 0-100
	IOWait float64 // iowait percent 0-100
}

// Memory holds instantaneous RAM and swap usage.
type Memory struct {
	Used float64 // percent 0-100
	Swap float64 // percent 0-100
}

// MemInfo is the raw memory counter table, in bytes. Only the ratios matter
// downstream, so the unit is whatever the provider reports consistently.
type MemInfo struct {
	Total     uint64
	Free      uint64
	Buffers   uint64
	Cached    uint64
	SwapTotal uint64
	SwapFree  uint64
}

// LoadAvg mirrors one line of /proc/loadavg: three load averages, the
// running/total process pair, and the last pid the kernel handed out.
type LoadAvg struct {
	Load1   float64
	Load5   float64
	Load15  float64
	Running int
	Procs   int
	LastPID int
}

// Power describes battery and AC state. BatteryPercent is NoBattery when no
// battery device exists.
type Power struct {
	BatteryPercent int
	OnAC           bool
}

// PowerSupply is one enumerated power-supply device. Capacity and Online are
// -1 when the attribute is absent or unreadable.
type PowerSupply struct {
	Name     string
	Type     string
	Capacity int
	Online   int
	Status   string
}

// Sample is the full per-tick snapshot exchanged between sampler and UI.
type Sample struct {
	Usage  Usage
	Memory Memory
	Load   LoadAvg
	Power  Power
}

// Zero returns an empty sample for initialization.
func Zero() Sample { return Sample{Power: Power{BatteryPercent: NoBattery}} }
