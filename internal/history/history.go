// Package history retains the rolling CPU and memory percentage series shown
// as the sparkline.
package history

// Graph holds two parallel fixed-capacity series, oldest first. The backing
// size is fixed at construction; the rendered window is the rightmost slice
// of whatever width the terminal currently allows, so shrinking the terminal
// never discards retained history.
type Graph struct {
	cpu []float64
	mem []float64
}

func New(backing int) *Graph {
	if backing < 1 {
		backing = 1
	}
	return &Graph{
		cpu: make([]float64, backing),
		mem: make([]float64, backing),
	}
}

// Push evicts the oldest pair and writes the new one at the newest end.
// O(backing) per call, but pushes happen only once per subsampling period.
func (g *Graph) Push(cpu, mem float64) {
	copy(g.cpu, g.cpu[1:])
	copy(g.mem, g.mem[1:])
	g.cpu[len(g.cpu)-1] = cpu
	g.mem[len(g.mem)-1] = mem
}

// Window returns the newest w entries of each series, oldest first. w is
// clamped to the backing size.
func (g *Graph) Window(w int) (cpu, mem []float64) {
	if w < 0 {
		w = 0
	}
	if w > len(g.cpu) {
		w = len(g.cpu)
	}
	return g.cpu[len(g.cpu)-w:], g.mem[len(g.mem)-w:]
}

// Backing returns the fixed backing capacity.
func (g *Graph) Backing() int { return len(g.cpu) }
