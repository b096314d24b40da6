// Package topology describes which islands exchange migrants and with what
// weight. Every implementation here is safe for concurrent reads interleaved
// with PushBack.
package topology

import (
	"fmt"
	"math"
	"sync"

	dErrors "archipelago/pkg/domain-errors"
)

// Topology is a graph over island ordinals. Connections returns the inbound
// edges of a node: the ordinals migrants may come from and the weight of
// each edge.
type Topology interface {
	Name() string
	// PushBack adds one node. It is called exactly once per island append.
	PushBack() error
	Connections(ordinal int) (Connections, error)
	NumNodes() int
	Clone() Topology
	State() State
}

// Connections lists the inbound edges of a node.
type Connections struct {
	Sources []int     `json:"sources"`
	Weights []float64 `json:"weights"`
}

// WeightFrom returns the weight of the edge from source, if there is one.
func (c Connections) WeightFrom(source int) (float64, bool) {
	for i, s := range c.Sources {
		if s == source {
			return c.Weights[i], true
		}
	}
	return 0, false
}

// State is the serialisable form of a topology.
type State struct {
	Kind   string  `json:"kind"`
	Nodes  int     `json:"nodes"`
	Weight float64 `json:"weight"`
}

const (
	UnconnectedKind    = "unconnected"
	RingKind           = "ring"
	FullyConnectedKind = "fully_connected"
)

// DefaultWeight is the edge weight callers pass when they have no preference.
// Weights are taken literally: 0 connects nodes that never exchange migrants.
const DefaultWeight = 1.0

// New builds an empty topology of the given kind.
func New(kind string, weight float64) (Topology, error) {
	return FromState(State{Kind: kind, Weight: weight})
}

// FromState rebuilds a topology with st.Nodes nodes.
func FromState(st State) (Topology, error) {
	if st.Nodes < 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "topology node count must not be negative, got %d", st.Nodes)
	}
	var t Topology
	switch st.Kind {
	case UnconnectedKind, "":
		t = NewUnconnected()
	case RingKind:
		r, err := NewRing(st.Weight)
		if err != nil {
			return nil, err
		}
		t = r
	case FullyConnectedKind:
		f, err := NewFullyConnected(st.Weight)
		if err != nil {
			return nil, err
		}
		t = f
	default:
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown topology kind %q", st.Kind)
	}
	for range st.Nodes {
		if err := t.PushBack(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// graph is the shared node counter behind the built-in topologies.
type graph struct {
	mu     sync.RWMutex
	nodes  int
	weight float64
	kind   string
	edges  func(ordinal, nodes int) []int
}

func newGraph(kind string, weight float64, edges func(int, int) []int) (*graph, error) {
	if math.IsNaN(weight) || weight < 0 || weight > 1 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "edge weight must be in [0, 1], got %g", weight)
	}
	return &graph{kind: kind, weight: weight, edges: edges}, nil
}

func (g *graph) PushBack() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes++
	return nil
}

func (g *graph) NumNodes() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes
}

func (g *graph) Connections(ordinal int) (Connections, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if ordinal < 0 || ordinal >= g.nodes {
		return Connections{}, dErrors.Newf(dErrors.CodeOutOfRange,
			"cannot get the connections of node %d in a topology with %d nodes", ordinal, g.nodes)
	}
	sources := g.edges(ordinal, g.nodes)
	weights := make([]float64, len(sources))
	for i := range weights {
		weights[i] = g.weight
	}
	return Connections{Sources: sources, Weights: weights}, nil
}

func (g *graph) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return State{Kind: g.kind, Nodes: g.nodes, Weight: g.weight}
}

func (g *graph) clone() *graph {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return &graph{nodes: g.nodes, weight: g.weight, kind: g.kind, edges: g.edges}
}

func (g *graph) String() string {
	return fmt.Sprintf("%s (%d nodes, weight %g)", g.kind, g.NumNodes(), g.weight)
}
