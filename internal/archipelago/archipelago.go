// Package archipelago coordinates a collection of islands: it fans evolution
// out to them, aggregates their status, and owns the state they share while
// evolving (Index Registry, Migration Mailbox and Topology).
package archipelago

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"archipelago/internal/archipelago/events"
	"archipelago/internal/archipelago/metrics"
	"archipelago/internal/island"
	"archipelago/internal/migration"
	"archipelago/internal/topology"
	dErrors "archipelago/pkg/domain-errors"
)

// DefaultMaxIslands bounds the number of ordinals an archipelago hands out.
const DefaultMaxIslands = math.MaxInt32

// Archipelago owns its islands exclusively. Islands are appended, never
// removed, and keep their ordinal for as long as they belong to it.
type Archipelago struct {
	logger     *slog.Logger
	metrics    *metrics.Metrics
	publisher  events.Publisher
	maxIslands int

	// mu guards the island slice and the identity of the shared state, which
	// is swapped wholesale on restore. Islands never take it.
	mu       sync.RWMutex
	islands  []*island.Island
	registry *IndexRegistry
	mailbox  *Mailbox
	topo     *topologyRef
	closed   bool
}

type Option func(*Archipelago)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Archipelago) {
		a.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Archipelago) {
		a.metrics = m
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(a *Archipelago) {
		a.publisher = p
	}
}

// WithTopology sets the initial topology. It must have no nodes yet.
func WithTopology(t topology.Topology) Option {
	return func(a *Archipelago) {
		a.topo = &topologyRef{t: t}
	}
}

func WithMaxIslands(n int) Option {
	return func(a *Archipelago) {
		a.maxIslands = n
	}
}

// NewEmpty creates an archipelago without islands. The default topology is
// unconnected.
func NewEmpty(opts ...Option) (*Archipelago, error) {
	a := &Archipelago{
		maxIslands: DefaultMaxIslands,
		registry:   newIndexRegistry(),
		mailbox:    newMailbox(0),
		topo:       &topologyRef{t: topology.NewUnconnected()},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.topo.t == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "topology is required")
	}
	if n := a.topo.t.NumNodes(); n != 0 {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"an empty archipelago needs an empty topology, got one with %d nodes", n)
	}
	if a.maxIslands <= 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "maximum island count must be positive, got %d", a.maxIslands)
	}
	if a.metrics != nil {
		a.metrics.SetIslands(0)
	}
	return a, nil
}

// New creates an archipelago of n islands built from args. When args carries
// a seed, each island gets its own seed drawn from a generator seeded with it.
func New(n int, args island.Args, opts ...Option) (*Archipelago, error) {
	if n < 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "island count must not be negative, got %d", n)
	}
	a, err := NewEmpty(opts...)
	if err != nil {
		return nil, err
	}
	var seeds []uint64
	if args.Seed != nil {
		seeds = DeriveSeeds(*args.Seed, n)
	}
	for i := range n {
		islArgs := args
		if seeds != nil {
			islArgs.Seed = island.Seed(seeds[i])
		}
		if err := a.PushBack(islArgs); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// DeriveSeeds returns the per-island seeds New uses for seed and n islands.
func DeriveSeeds(seed uint64, n int) []uint64 {
	gen := rand.New(rand.NewPCG(seed, seed))
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(gen.Uint32())
	}
	return out
}

// PushBack builds an island from args and appends it. A construction failure
// leaves the archipelago untouched.
func (a *Archipelago) PushBack(args island.Args) error {
	isl, err := island.New(args, island.WithID(uuid.New()), island.WithLogger(a.logger))
	if err != nil {
		return err
	}
	return a.push(isl)
}

// PushBackIsland appends a copy of isl under a new handle.
func (a *Archipelago) PushBackIsland(isl *island.Island) error {
	if isl == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "island is required")
	}
	return a.push(isl.Clone(island.WithID(uuid.New()), island.WithLogger(a.logger)))
}

// push registers isl at the next ordinal. Every check and the only fallible
// step (the topology node addition) happen before anything is mutated.
func (a *Archipelago) push(isl *island.Island) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return errClosed()
	}
	ordinal := len(a.islands)
	if ordinal >= a.maxIslands {
		a.mu.Unlock()
		return dErrors.Newf(dErrors.CodeOverflow,
			"cannot add an island: the archipelago already holds the maximum of %d islands", a.maxIslands)
	}
	if err := a.topo.get().PushBack(); err != nil {
		a.mu.Unlock()
		return dErrors.Wrap(err, dErrors.CodeInvariantViolation, "add topology node")
	}
	a.islands = append(a.islands, isl)
	a.registry.register(isl.ID(), ordinal)
	a.mailbox.addSlot()
	a.mu.Unlock()

	if a.metrics != nil {
		a.metrics.SetIslands(ordinal + 1)
	}
	if a.logger != nil {
		a.logger.Debug("island added",
			"ordinal", ordinal,
			"island_id", isl.ID(),
		)
	}
	ev := events.New(events.IslandAdded, ordinal)
	ev.IslandID = isl.ID().String()
	ev.Islands = ordinal + 1
	a.publish(ev)
	return nil
}

// Evolve asks every island to run n more generations and returns without
// waiting. Requests made while islands are busy are queued behind the
// running ones.
func (a *Archipelago) Evolve(n uint) error {
	a.mu.RLock()
	if a.closed {
		a.mu.RUnlock()
		return errClosed()
	}
	for _, isl := range a.islands {
		isl.Evolve(n, a.handle(isl.ID()))
	}
	count := len(a.islands)
	a.mu.RUnlock()

	if a.metrics != nil {
		a.metrics.IncrementEvolveRequests(count)
	}
	if a.logger != nil {
		a.logger.Debug("evolve requested",
			"islands", count,
			"generations", n,
		)
	}
	ev := events.New(events.EvolveRequested, -1)
	ev.Islands = count
	ev.Detail = fmt.Sprintf("%d generations", n)
	a.publish(ev)
	return nil
}

// handle bundles the shared state an island needs while evolving.
// Callers hold mu.
func (a *Archipelago) handle(id uuid.UUID) migrationHandle {
	return migrationHandle{
		id:       id,
		registry: a.registry,
		mailbox:  a.mailbox,
		topo:     a.topo,
		metrics:  a.metrics,
	}
}

// Wait blocks until no island is busy. Faults stay pending.
func (a *Archipelago) Wait() {
	for _, isl := range a.Islands() {
		isl.Wait()
	}
}

// WaitCheck waits for every island, then consumes and returns the fault of
// the lowest-ordinal faulted island. Faults of other islands stay pending.
func (a *Archipelago) WaitCheck() error {
	islands := a.Islands()
	for _, isl := range islands {
		isl.Wait()
	}
	for i, isl := range islands {
		if isl.Fault() == nil {
			continue
		}
		err := isl.WaitCheck()
		if err == nil {
			continue
		}
		if a.metrics != nil {
			a.metrics.IncrementFaults()
		}
		if a.logger != nil {
			a.logger.Warn("island fault observed",
				"ordinal", i,
				"island_id", isl.ID(),
				"error", err,
			)
		}
		ev := events.New(events.FaultObserved, i)
		ev.IslandID = isl.ID().String()
		ev.Detail = err.Error()
		a.publish(ev)
		return fmt.Errorf("island at ordinal %d: %w", i, err)
	}
	return nil
}

// Status aggregates island status without consuming faults.
func (a *Archipelago) Status() island.Status {
	var busy, busyErr, idleErr int
	for _, isl := range a.Islands() {
		switch isl.Status() {
		case island.StatusBusy:
			busy++
		case island.StatusBusyError:
			busyErr++
		case island.StatusIdleError:
			idleErr++
		}
	}
	switch {
	case busyErr > 0 || (busy > 0 && idleErr > 0):
		return island.StatusBusyError
	case busy > 0:
		return island.StatusBusy
	case idleErr > 0:
		return island.StatusIdleError
	default:
		return island.StatusIdle
	}
}

// Size is the number of islands.
func (a *Archipelago) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.islands)
}

// Island returns the island at ordinal i.
func (a *Archipelago) Island(i int) (*island.Island, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if err := a.checkOrdinal(i); err != nil {
		return nil, err
	}
	return a.islands[i], nil
}

// Islands returns the islands in ordinal order. The slice is a copy; the
// islands are still owned by the archipelago.
func (a *Archipelago) Islands() []*island.Island {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]*island.Island(nil), a.islands...)
}

// All iterates over (ordinal, island) pairs as of the call.
func (a *Archipelago) All() iter.Seq2[int, *island.Island] {
	islands := a.Islands()
	return func(yield func(int, *island.Island) bool) {
		for i, isl := range islands {
			if !yield(i, isl) {
				return
			}
		}
	}
}

// IslandIndex is the externally callable form of the Index Registry lookup.
func (a *Archipelago) IslandIndex(isl *island.Island) (int, error) {
	if isl == nil {
		return 0, dErrors.New(dErrors.CodeNotFound, "nil island does not belong to this archipelago")
	}
	a.mu.RLock()
	reg := a.registry
	a.mu.RUnlock()
	return reg.Lookup(isl.ID())
}

// ChampionsF returns each island's champion fitness in ordinal order.
// Islands that are still evolving report their last completed generation.
func (a *Archipelago) ChampionsF() ([][]float64, error) {
	islands := a.Islands()
	out := make([][]float64, 0, len(islands))
	for i, isl := range islands {
		f, err := isl.Population().ChampionF()
		if err != nil {
			return nil, fmt.Errorf("island at ordinal %d: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// ChampionsX returns each island's champion decision vector in ordinal order.
func (a *Archipelago) ChampionsX() ([][]float64, error) {
	islands := a.Islands()
	out := make([][]float64, 0, len(islands))
	for i, isl := range islands {
		x, err := isl.Population().ChampionX()
		if err != nil {
			return nil, fmt.Errorf("island at ordinal %d: %w", i, err)
		}
		out = append(out, x)
	}
	return out, nil
}

// MigrantsDB returns a copy of the whole mailbox, one group per ordinal.
func (a *Archipelago) MigrantsDB() []migration.Group {
	a.mu.RLock()
	box := a.mailbox
	a.mu.RUnlock()
	return box.Snapshot()
}

// ExtractMigrants drains the mailbox slot of ordinal i.
func (a *Archipelago) ExtractMigrants(i int) (migration.Group, error) {
	a.mu.RLock()
	h := a.handle(uuid.Nil)
	a.mu.RUnlock()
	return h.Extract(i)
}

// DepositMigrants appends group to the mailbox slot of ordinal i.
func (a *Archipelago) DepositMigrants(i int, group migration.Group) error {
	a.mu.RLock()
	h := a.handle(uuid.Nil)
	a.mu.RUnlock()
	return h.Deposit(i, group.Clone())
}

// SetMigrantsDB replaces the whole mailbox. db needs one group per island.
func (a *Archipelago) SetMigrantsDB(db []migration.Group) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(db) != len(a.islands) {
		return dErrors.Newf(dErrors.CodeInvalidInput,
			"the migrants database must have %d entries, one per island, but it has %d", len(a.islands), len(db))
	}
	a.mailbox.replace(db)
	return nil
}

// IslandConnections returns the inbound edges of ordinal i.
func (a *Archipelago) IslandConnections(i int) (topology.Connections, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if err := a.checkOrdinal(i); err != nil {
		return topology.Connections{}, err
	}
	return a.topo.get().Connections(i)
}

// Topology returns a copy of the current topology.
func (a *Archipelago) Topology() topology.Topology {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.topo.get().Clone()
}

// SetTopology replaces the topology. Its node count must equal the island
// count; a mismatch is rejected and nothing changes. Islands pick up the new
// topology on their next migration step.
func (a *Archipelago) SetTopology(t topology.Topology) error {
	if t == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "topology is required")
	}
	c := t.Clone()
	a.mu.Lock()
	n := len(a.islands)
	if c.NumNodes() != n {
		a.mu.Unlock()
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"topology has %d nodes but the archipelago holds %d islands", c.NumNodes(), n)
	}
	a.topo.set(c)
	a.mu.Unlock()

	ev := events.New(events.TopologySet, -1)
	ev.Islands = n
	ev.Detail = c.Name()
	a.publish(ev)
	return nil
}

// Clone returns an independent archipelago with copies of every island
// (fresh handles, last completed populations), the mailbox and the topology.
// The copy shares the logger, metrics and publisher.
func (a *Archipelago) Clone() *Archipelago {
	a.mu.RLock()
	islands := append([]*island.Island(nil), a.islands...)
	migrants := a.mailbox.Snapshot()
	topo := a.topo.get().Clone()
	a.mu.RUnlock()

	out := &Archipelago{
		logger:     a.logger,
		metrics:    a.metrics,
		publisher:  a.publisher,
		maxIslands: a.maxIslands,
		registry:   newIndexRegistry(),
		mailbox:    newMailbox(0),
		topo:       &topologyRef{t: topo},
	}
	for i, isl := range islands {
		c := isl.Clone(island.WithID(uuid.New()), island.WithLogger(a.logger))
		out.islands = append(out.islands, c)
		out.registry.register(c.ID(), i)
	}
	out.mailbox.replace(migrants)
	return out
}

// Close waits for every island to finish. Afterwards the archipelago can
// still be inspected but no longer evolves, grows or restores. Close is
// idempotent.
func (a *Archipelago) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	islands := append([]*island.Island(nil), a.islands...)
	a.mu.Unlock()

	for _, isl := range islands {
		isl.Wait()
	}
	if a.logger != nil {
		a.logger.Info("archipelago closed", "islands", len(islands))
	}
	ev := events.New(events.Closed, -1)
	ev.Islands = len(islands)
	a.publish(ev)
	return nil
}

// String summarises the archipelago: island count, topology, per-island
// status and pending migrants.
func (a *Archipelago) String() string {
	a.mu.RLock()
	islands := append([]*island.Island(nil), a.islands...)
	topo := a.topo.get()
	box := a.mailbox
	a.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Number of islands: %d\n", len(islands))
	fmt.Fprintf(&b, "Topology: %s\n", topo.Name())
	fmt.Fprintf(&b, "Status: %s\n\n", a.Status())
	b.WriteString("Islands summaries:\n\n")
	fmt.Fprintf(&b, "\t%-4s %-10s %-28s %-6s %s\n", "#", "Pending", "Status", "Size", "Algorithm")
	migrants := box.Snapshot()
	for i, isl := range islands {
		pending := 0
		if i < len(migrants) {
			pending = migrants[i].Len()
		}
		fmt.Fprintf(&b, "\t%-4d %-10d %-28s %-6d %s\n",
			i, pending, isl.Status(), isl.Population().Size(), isl.Algorithm().Name())
	}
	return b.String()
}

func (a *Archipelago) checkOrdinal(i int) error {
	if i < 0 || i >= len(a.islands) {
		return dErrors.Newf(dErrors.CodeOutOfRange,
			"cannot access the island at index %d: the archipelago has a size of only %d", i, len(a.islands))
	}
	return nil
}

func (a *Archipelago) publish(ev events.Event) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(context.Background(), ev); err != nil && a.logger != nil {
		a.logger.Warn("failed to publish archipelago event",
			"type", ev.Type,
			"error", err,
		)
	}
}

func errClosed() error {
	return dErrors.New(dErrors.CodeUnavailable, "archipelago is closed")
}
