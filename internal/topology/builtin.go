package topology

// Unconnected has no edges; islands evolve in isolation. It is the default
// topology of a new archipelago.
type Unconnected struct{ *graph }

func NewUnconnected() *Unconnected {
	g, _ := newGraph(UnconnectedKind, DefaultWeight, func(int, int) []int { return nil })
	return &Unconnected{g}
}

func (t *Unconnected) Name() string     { return "Unconnected" }
func (t *Unconnected) Clone() Topology { return &Unconnected{t.clone()} }

// Ring connects every node to its two neighbours in both directions.
type Ring struct{ *graph }

func NewRing(weight float64) (*Ring, error) {
	g, err := newGraph(RingKind, weight, ringEdges)
	if err != nil {
		return nil, err
	}
	return &Ring{g}, nil
}

func (t *Ring) Name() string     { return "Ring" }
func (t *Ring) Clone() Topology { return &Ring{t.clone()} }

func ringEdges(i, n int) []int {
	switch {
	case n < 2:
		return nil
	case n == 2:
		return []int{1 - i}
	default:
		return []int{(i - 1 + n) % n, (i + 1) % n}
	}
}

// FullyConnected links every node to every other node.
type FullyConnected struct{ *graph }

func NewFullyConnected(weight float64) (*FullyConnected, error) {
	g, err := newGraph(FullyConnectedKind, weight, fullEdges)
	if err != nil {
		return nil, err
	}
	return &FullyConnected{g}, nil
}

func (t *FullyConnected) Name() string     { return "Fully connected" }
func (t *FullyConnected) Clone() Topology { return &FullyConnected{t.clone()} }

func fullEdges(i, n int) []int {
	out := make([]int, 0, n)
	for j := range n {
		if j != i {
			out = append(out, j)
		}
	}
	return out
}
