package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sidecar-sh/sidecar/internal/config"
	"github.com/sidecar-sh/sidecar/internal/model"
)

// Sparkline cells. CPU and RAM are overlaid on the same grid, so each cell is
// resolved per row/column: both series reach it, CPU only, RAM only, or blank.
const (
	cellBoth = '▓'
	cellCPU  = '█'
	cellMem  = '░'
	cellNone = ' '
	barFill  = "■"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	tailStyle   = lipgloss.NewStyle().Faint(true)
)

// View paints the full frame: sparkline block, CPU bar, summary, memory bar,
// and the tail window when a file is attached.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("History (CPU=█, RAM=░)"))
	b.WriteByte('\n')
	b.WriteString(m.renderHistory())
	b.WriteByte('\n')
	b.WriteString(m.renderBar("cpu", m.latest.Usage.CPU))
	b.WriteString(m.renderSummary())
	b.WriteString(m.renderBar("mem", m.latest.Memory.Used))
	if m.tailer != nil {
		b.WriteString(m.renderTail())
	}
	return b.String()
}

// renderHistory draws the two overlaid percentage series, newest column on
// the right, scanning rows top-down.
func (m *Model) renderHistory() string {
	cpu, mem := m.hist.Window(m.graphWidth)
	var b strings.Builder
	for row := config.HistoryHeight; row >= 0; row-- {
		for col := range cpu {
			c := int(cpu[col] / 100 * config.HistoryHeight)
			r := int(mem[col] / 100 * config.HistoryHeight)
			switch {
			case c >= row && r >= row:
				b.WriteRune(cellBoth)
			case c >= row:
				b.WriteRune(cellCPU)
			case r >= row:
				b.WriteRune(cellMem)
			default:
				b.WriteRune(cellNone)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// renderBar draws one labeled percentage bar over two lines:
//
//	┌> ■■■■■■■                         cpu
//	└> 23.5 %
func (m *Model) renderBar(label string, pct float64) string {
	filled := int(pct / 100 * float64(m.graphWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > m.graphWidth {
		filled = m.graphWidth
	}
	var b strings.Builder
	b.WriteString("┌> ")
	b.WriteString(strings.Repeat(barFill, filled))
	b.WriteString(strings.Repeat(" ", m.graphWidth-filled))
	fmt.Fprintf(&b, "%-3s\n└> %-5.1f%%\n", label, pct)
	return b.String()
}

// renderSummary is the two-line digest between the bars: swap, iowait, the
// three load averages, then running/total processes and power state.
func (m *Model) renderSummary() string {
	s := m.latest
	batt := s.Power.BatteryPercent
	if batt == model.NoBattery {
		batt = 0
	}
	ac := "on batt)"
	if s.Power.OnAC {
		ac = "on ac)  "
	}
	return fmt.Sprintf(" > s=%-.1f%% | i=%-.1f%% | 1=%-.2f | 5=%-.2f | 15=%-.2f\n > [%d/%d] :: (%d%% %s\n",
		s.Memory.Swap, s.Usage.IOWait,
		s.Load.Load1, s.Load.Load5, s.Load.Load15,
		s.Load.Running, s.Load.Procs, batt, ac)
}

// renderTail shows the newest buffered lines that fit below the bars, each
// truncated to one column short of the terminal width.
func (m *Model) renderTail() string {
	usedAbove := 1 + config.HistoryHeight + 1 + 2*2 + 1
	const usedBelow = 2
	avail := m.height - usedAbove - usedBelow
	if avail < 0 {
		avail = 0
	}
	lines := m.tailer.Lines()
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	maxw := m.width - 1
	if maxw < 1 {
		maxw = 1
	}
	var b strings.Builder
	b.WriteString(tailStyle.Render(" > tail: " + m.tailer.Path()))
	b.WriteByte('\n')
	for _, line := range lines {
		b.WriteString(truncate(line, maxw))
		b.WriteByte('\n')
	}
	return b.String()
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
