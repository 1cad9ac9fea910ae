package sampler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/sidecar-sh/sidecar/internal/model"
)

// Provider abstracts the kernel counter sources so samplers can run against
// synthetic inputs in tests.
type Provider interface {
	CPUTimes() (model.CPUStats, error)
	MemInfo() (model.MemInfo, error)
	// LoadAvg returns the raw first line of the load average source.
	LoadAvg() (string, error)
	PowerSupplies() ([]model.PowerSupply, error)
}

const (
	loadavgPath     = "/proc/loadavg"
	powerSupplyPath = "/sys/class/power_supply"
)

// sysProvider reads the live host: CPU and memory through gopsutil, loadavg
// and power supplies straight from procfs/sysfs.
type sysProvider struct{}

// System returns the live host provider.
func System() Provider { return sysProvider{} }

func (sysProvider) CPUTimes() (model.CPUStats, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return model.CPUStats{}, fmt.Errorf("cpu times: %w", err)
	}
	if len(times) == 0 {
		return model.CPUStats{}, fmt.Errorf("cpu times: no aggregate entry")
	}
	t := times[0]
	return model.CPUStats{
		User:    t.User,
		Nice:    t.Nice,
		System:  t.System,
		Idle:    t.Idle,
		IOWait:  t.Iowait,
		IRQ:     t.Irq,
		SoftIRQ: t.Softirq,
		Steal:   t.Steal,
	}, nil
}

func (sysProvider) MemInfo() (model.MemInfo, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return model.MemInfo{}, fmt.Errorf("meminfo: %w", err)
	}
	swap, err := mem.SwapMemory()
	if err != nil {
		return model.MemInfo{}, fmt.Errorf("swap: %w", err)
	}
	return model.MemInfo{
		Total:     vm.Total,
		Free:      vm.Free,
		Buffers:   vm.Buffers,
		Cached:    vm.Cached,
		SwapTotal: swap.Total,
		SwapFree:  swap.Free,
	}, nil
}

func (sysProvider) LoadAvg() (string, error) {
	b, err := os.ReadFile(loadavgPath)
	if err != nil {
		return "", fmt.Errorf("loadavg: %w", err)
	}
	return string(b), nil
}

func (sysProvider) PowerSupplies() ([]model.PowerSupply, error) {
	entries, err := os.ReadDir(powerSupplyPath)
	if err != nil {
		return nil, fmt.Errorf("power supplies: %w", err)
	}
	supplies := make([]model.PowerSupply, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		dir := filepath.Join(powerSupplyPath, name)
		typ, err := readSysString(filepath.Join(dir, "type"))
		if err != nil {
			continue
		}
		status, _ := readSysString(filepath.Join(dir, "status"))
		supplies = append(supplies, model.PowerSupply{
			Name:     name,
			Type:     typ,
			Capacity: readSysInt(filepath.Join(dir, "capacity")),
			Online:   readSysInt(filepath.Join(dir, "online")),
			Status:   status,
		})
	}
	return supplies, nil
}

func readSysString(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func readSysInt(path string) int {
	s, err := readSysString(path)
	if err != nil {
		return -1
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return v
}
