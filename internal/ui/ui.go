package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sidecar-sh/sidecar/internal/config"
	"github.com/sidecar-sh/sidecar/internal/history"
	"github.com/sidecar-sh/sidecar/internal/model"
	"github.com/sidecar-sh/sidecar/internal/sampler"
	"github.com/sidecar-sh/sidecar/internal/tail"
)

// Model drives the poll loop: each tick it samples all metric families,
// drains the tail file, pushes history on the subsampling cadence, and lets
// bubbletea repaint. All state lives here and is touched only from Update.
type Model struct {
	samp   *sampler.Sampler
	tailer *tail.Tailer // nil when no file is attached

	latest model.Sample
	hist   *history.Graph

	width      int
	height     int
	graphWidth int

	tick int // position within the history divisor cycle
}

func New(samp *sampler.Sampler, tailer *tail.Tailer) *Model {
	return &Model{
		samp:       samp,
		tailer:     tailer,
		latest:     model.Zero(),
		hist:       history.New(config.MaxGraphWidth),
		width:      80,
		height:     24,
		graphWidth: config.GraphWidth(80),
	}
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(config.Refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return tickCmd() }

// Update handles resize, quit keys, and the sampling tick. Geometry changes
// land here and are read only by View, so a single frame never mixes old and
// new width assumptions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.graphWidth = config.GraphWidth(msg.Width)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.latest = m.samp.Sample()
		if m.tailer != nil {
			m.tailer.Drain()
		}
		if m.tick == 0 {
			m.hist.Push(m.latest.Usage.CPU, m.latest.Memory.Used)
		}
		m.tick = (m.tick + 1) % config.HistoryDivisor
		return m, tickCmd()
	}
	return m, nil
}

// Run starts the dashboard and blocks until quit.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
