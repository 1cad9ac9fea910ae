package sampler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sidecar-sh/sidecar/internal/model"
)

// Sampler turns raw provider reads into normalized per-tick snapshots. CPU
// percentages need the previous counter read, and load/power keep their last
// good value across per-tick failures, so the Sampler is stateful.
type Sampler struct {
	provider Provider
	log      zerolog.Logger

	prev      model.CPUStats
	lastLoad  model.LoadAvg
	lastPower model.Power
}

func New(p Provider, log zerolog.Logger) *Sampler {
	return &Sampler{
		provider:  p,
		log:       log,
		lastPower: model.Power{BatteryPercent: model.NoBattery},
	}
}

// Prime takes the initial reads the first tick's deltas are computed against.
// A CPU read failure here means the counter source is unavailable and the
// dashboard cannot run at all.
func (s *Sampler) Prime() error {
	prev, err := s.provider.CPUTimes()
	if err != nil {
		return fmt.Errorf("prime cpu counters: %w", err)
	}
	s.prev = prev
	if load, err := s.sampleLoad(); err == nil {
		s.lastLoad = load
	}
	if pw, err := s.samplePower(); err == nil {
		s.lastPower = pw
	}
	return nil
}

// Sample performs one tick's worth of reads. It never fails once Prime has
// succeeded: a per-tick read or parse error keeps the last good value.
func (s *Sampler) Sample() model.Sample {
	usage := s.sampleCPU()
	memory := s.sampleMemory()
	if load, err := s.sampleLoad(); err != nil {
		s.log.Warn().Err(err).Msg("loadavg sample failed, keeping previous")
	} else {
		s.lastLoad = load
	}
	if pw, err := s.samplePower(); err != nil {
		s.log.Warn().Err(err).Msg("power sample failed, keeping previous")
	} else {
		s.lastPower = pw
	}
	return model.Sample{
		Usage:  usage,
		Memory: memory,
		Load:   s.lastLoad,
		Power:  s.lastPower,
	}
}

// sampleCPU computes busy and iowait percentages from the delta against the
// previous read. A zero total delta (first tick without Prime, counter reset)
// yields 0 for both rather than a division by zero.
func (s *Sampler) sampleCPU() model.Usage {
	cur, err := s.provider.CPUTimes()
	if err != nil {
		s.log.Warn().Err(err).Msg("cpu sample failed")
		return model.Usage{}
	}
	diffTotal := cur.Total() - s.prev.Total()
	diffIdle := cur.IdleAll() - s.prev.IdleAll()
	diffIOWait := cur.IOWait - s.prev.IOWait
	s.prev = cur
	if diffTotal <= 0 {
		return model.Usage{}
	}
	return model.Usage{
		CPU:    (diffTotal - diffIdle) / diffTotal * 100,
		IOWait: diffIOWait / diffTotal * 100,
	}
}

// sampleMemory derives used and swap percentages from one raw table read.
// used = total - free - buffers - cached, clamped at 0: free+buffers+cached
// can briefly exceed total on some kernels.
func (s *Sampler) sampleMemory() model.Memory {
	mi, err := s.provider.MemInfo()
	if err != nil {
		s.log.Warn().Err(err).Msg("memory sample failed")
		return model.Memory{}
	}
	var m model.Memory
	if mi.Total > 0 {
		var used uint64
		if reclaimable := mi.Free + mi.Buffers + mi.Cached; reclaimable < mi.Total {
			used = mi.Total - reclaimable
		}
		m.Used = float64(used) / float64(mi.Total) * 100
	}
	if mi.SwapTotal > 0 && mi.SwapFree <= mi.SwapTotal {
		m.Swap = float64(mi.SwapTotal-mi.SwapFree) / float64(mi.SwapTotal) * 100
	}
	return m
}

func (s *Sampler) sampleLoad() (model.LoadAvg, error) {
	line, err := s.provider.LoadAvg()
	if err != nil {
		return model.LoadAvg{}, err
	}
	return parseLoadAvg(line)
}

// parseLoadAvg parses one loadavg line, e.g. "0.08 0.03 0.05 2/278 1234":
// three averages, running/total processes, last pid. A short or malformed
// line is an error for this tick only.
func parseLoadAvg(line string) (model.LoadAvg, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return model.LoadAvg{}, fmt.Errorf("loadavg: %d/5 fields in %q", len(fields), strings.TrimSpace(line))
	}
	var la model.LoadAvg
	var err error
	if la.Load1, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return model.LoadAvg{}, fmt.Errorf("loadavg 1min: %w", err)
	}
	if la.Load5, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return model.LoadAvg{}, fmt.Errorf("loadavg 5min: %w", err)
	}
	if la.Load15, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return model.LoadAvg{}, fmt.Errorf("loadavg 15min: %w", err)
	}
	running, procs, ok := strings.Cut(fields[3], "/")
	if !ok {
		return model.LoadAvg{}, fmt.Errorf("loadavg processes: %q", fields[3])
	}
	if la.Running, err = strconv.Atoi(running); err != nil {
		return model.LoadAvg{}, fmt.Errorf("loadavg running: %w", err)
	}
	if la.Procs, err = strconv.Atoi(procs); err != nil {
		return model.LoadAvg{}, fmt.Errorf("loadavg total: %w", err)
	}
	if la.LastPID, err = strconv.Atoi(fields[4]); err != nil {
		return model.LoadAvg{}, fmt.Errorf("loadavg last pid: %w", err)
	}
	return la, nil
}
