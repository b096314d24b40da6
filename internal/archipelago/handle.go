package archipelago

import (
	"sync"

	"github.com/google/uuid"

	"archipelago/internal/archipelago/metrics"
	"archipelago/internal/migration"
	"archipelago/internal/topology"
)

// topologyRef lets SetTopology swap the graph while islands hold handles.
// The lock only guards the reference; the topology guards its own state.
type topologyRef struct {
	mu sync.RWMutex
	t  topology.Topology
}

func (r *topologyRef) get() topology.Topology {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.t
}

func (r *topologyRef) set(t topology.Topology) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t = t
}

// migrationHandle is passed to an island with each evolve request. It carries
// the shared state an island needs during its run, never the archipelago.
type migrationHandle struct {
	id       uuid.UUID
	registry *IndexRegistry
	mailbox  *Mailbox
	topo     *topologyRef
	metrics  *metrics.Metrics
}

func (h migrationHandle) Ordinal() (int, error) {
	return h.registry.Lookup(h.id)
}

func (h migrationHandle) NumIslands() int {
	return h.mailbox.Len()
}

func (h migrationHandle) Connections(ordinal int) (topology.Connections, error) {
	return h.topo.get().Connections(ordinal)
}

func (h migrationHandle) Extract(ordinal int) (migration.Group, error) {
	g, err := h.mailbox.ExtractAll(ordinal)
	if err == nil && h.metrics != nil {
		h.metrics.AddExtracted(g.Len())
	}
	return g, err
}

func (h migrationHandle) Deposit(ordinal int, group migration.Group) error {
	n := group.Len()
	if err := h.mailbox.Deposit(ordinal, group); err != nil {
		return err
	}
	if h.metrics != nil {
		h.metrics.AddDeposited(n)
	}
	return nil
}
