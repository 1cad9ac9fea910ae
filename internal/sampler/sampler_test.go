package sampler

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidecar-sh/sidecar/internal/model"
)

// fakeProvider feeds canned snapshots. CPU reads consume the cpu slice one
// entry per call, holding the last entry once exhausted.
type fakeProvider struct {
	cpu      []model.CPUStats
	cpuErr   error
	mem      model.MemInfo
	memErr   error
	load     string
	loadErr  error
	power    []model.PowerSupply
	powerErr error
}

func (f *fakeProvider) CPUTimes() (model.CPUStats, error) {
	if f.cpuErr != nil {
		return model.CPUStats{}, f.cpuErr
	}
	if len(f.cpu) == 0 {
		return model.CPUStats{}, nil
	}
	cur := f.cpu[0]
	if len(f.cpu) > 1 {
		f.cpu = f.cpu[1:]
	}
	return cur, nil
}

func (f *fakeProvider) MemInfo() (model.MemInfo, error) {
	return f.mem, f.memErr
}

func (f *fakeProvider) LoadAvg() (string, error) {
	return f.load, f.loadErr
}

func (f *fakeProvider) PowerSupplies() ([]model.PowerSupply, error) {
	return f.power, f.powerErr
}

func newTestSampler(t *testing.T, p Provider) *Sampler {
	t.Helper()
	s := New(p, zerolog.Nop())
	require.NoError(t, s.Prime())
	return s
}

const quietLoad = "0.00 0.00 0.00 1/100 42\n"

func TestSampleCPU_DeltaMath(t *testing.T) {
	p := &fakeProvider{
		cpu: []model.CPUStats{
			{User: 100, System: 50, Idle: 800, IOWait: 50},
			{User: 130, System: 60, Idle: 850, IOWait: 60},
		},
		load: quietLoad,
	}
	s := newTestSampler(t, p)

	got := s.Sample()
	// deltas: busy 40, idle-like 60, total 100
	assert.InDelta(t, 40.0, got.Usage.CPU, 1e-9)
	assert.InDelta(t, 10.0, got.Usage.IOWait, 1e-9)
}

func TestSampleCPU_ZeroDeltaYieldsZero(t *testing.T) {
	snap := model.CPUStats{User: 100, Idle: 900, IOWait: 10}
	p := &fakeProvider{cpu: []model.CPUStats{snap, snap}, load: quietLoad}
	s := newTestSampler(t, p)

	got := s.Sample()
	assert.Zero(t, got.Usage.CPU)
	assert.Zero(t, got.Usage.IOWait)
}

func TestSampleCPU_ReadFailureYieldsZero(t *testing.T) {
	p := &fakeProvider{
		cpu:  []model.CPUStats{{User: 1, Idle: 1}},
		load: quietLoad,
	}
	s := newTestSampler(t, p)
	p.cpuErr = errors.New("proc gone")

	got := s.Sample()
	assert.Zero(t, got.Usage.CPU)
	assert.Zero(t, got.Usage.IOWait)
}

func TestPrime_CPUFailureIsFatal(t *testing.T) {
	p := &fakeProvider{cpuErr: errors.New("no such file")}
	s := New(p, zerolog.Nop())
	err := s.Prime()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prime cpu counters")
}

func TestSampleMemory(t *testing.T) {
	tests := []struct {
		name     string
		mem      model.MemInfo
		wantUsed float64
		wantSwap float64
	}{
		{
			name: "typical table",
			mem: model.MemInfo{
				Total: 1000, Free: 200, Buffers: 100, Cached: 200,
				SwapTotal: 500, SwapFree: 400,
			},
			wantUsed: 50,
			wantSwap: 20,
		},
		{
			name:     "zero totals report zero",
			mem:      model.MemInfo{},
			wantUsed: 0,
			wantSwap: 0,
		},
		{
			name: "inconsistent table clamps used at zero",
			mem: model.MemInfo{
				Total: 1000, Free: 600, Buffers: 300, Cached: 300,
			},
			wantUsed: 0,
		},
		{
			name:     "no swap configured",
			mem:      model.MemInfo{Total: 1000, Free: 500},
			wantUsed: 50,
			wantSwap: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{
				cpu:  []model.CPUStats{{User: 1, Idle: 1}},
				mem:  tt.mem,
				load: quietLoad,
			}
			s := newTestSampler(t, p)
			got := s.Sample()
			assert.InDelta(t, tt.wantUsed, got.Memory.Used, 1e-9)
			assert.InDelta(t, tt.wantSwap, got.Memory.Swap, 1e-9)
		})
	}
}

func TestParseLoadAvg(t *testing.T) {
	la, err := parseLoadAvg("0.08 0.03 0.05 2/278 1234\n")
	require.NoError(t, err)
	assert.Equal(t, model.LoadAvg{
		Load1:   0.08,
		Load5:   0.03,
		Load15:  0.05,
		Running: 2,
		Procs:   278,
		LastPID: 1234,
	}, la)
}

func TestParseLoadAvg_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"short", "0.08 0.03 0.05"},
		{"missing slash", "0.08 0.03 0.05 2 1234"},
		{"non-numeric average", "a b c 2/278 1234"},
		{"non-numeric pid", "0.08 0.03 0.05 2/278 zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLoadAvg(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestSample_LoadFailureKeepsLastGood(t *testing.T) {
	p := &fakeProvider{
		cpu:  []model.CPUStats{{User: 1, Idle: 1}},
		load: "0.50 0.40 0.30 3/200 999\n",
	}
	s := newTestSampler(t, p)

	p.load = "garbage"
	got := s.Sample()
	assert.Equal(t, 0.50, got.Load.Load1)
	assert.Equal(t, 200, got.Load.Procs)

	p.load = "1.00 0.90 0.80 4/210 1000\n"
	got = s.Sample()
	assert.Equal(t, 1.00, got.Load.Load1)
}
