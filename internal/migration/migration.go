// Package migration defines the unit of exchange between islands.
package migration

// Individual is one member of a population travelling between islands.
type Individual struct {
	ID uint64    `json:"id"`
	X  []float64 `json:"x"`
	F  []float64 `json:"f"`
}

// Clone returns a deep copy of the individual.
func (i Individual) Clone() Individual {
	return Individual{
		ID: i.ID,
		X:  append([]float64(nil), i.X...),
		F:  append([]float64(nil), i.F...),
	}
}

// Group is an ordered collection of individuals. A group is treated as
// immutable once produced; consumers that need to keep one should Clone it.
type Group struct {
	Individuals []Individual `json:"individuals"`
}

// NewGroup builds a group from ids, decision vectors and fitness vectors.
// The three slices must have the same length.
func NewGroup(ids []uint64, xs, fs [][]float64) Group {
	g := Group{Individuals: make([]Individual, len(ids))}
	for i := range ids {
		g.Individuals[i] = Individual{ID: ids[i], X: xs[i], F: fs[i]}
	}
	return g
}

// Len returns the number of individuals in the group.
func (g Group) Len() int {
	return len(g.Individuals)
}

// Empty reports whether the group holds no individuals.
func (g Group) Empty() bool {
	return len(g.Individuals) == 0
}

// IDs returns the identities of the group members in order.
func (g Group) IDs() []uint64 {
	ids := make([]uint64, len(g.Individuals))
	for i, ind := range g.Individuals {
		ids[i] = ind.ID
	}
	return ids
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	if g.Individuals == nil {
		return Group{}
	}
	out := Group{Individuals: make([]Individual, len(g.Individuals))}
	for i, ind := range g.Individuals {
		out.Individuals[i] = ind.Clone()
	}
	return out
}

// Append adds other's members after g's, preserving the emission order of
// each producer.
func (g *Group) Append(other Group) {
	g.Individuals = append(g.Individuals, other.Individuals...)
}

// Take moves the group's members out, leaving g empty.
func (g *Group) Take() Group {
	out := Group{Individuals: g.Individuals}
	g.Individuals = nil
	return out
}
