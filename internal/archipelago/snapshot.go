package archipelago

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"archipelago/internal/archipelago/events"
	"archipelago/internal/island"
	"archipelago/internal/migration"
	"archipelago/internal/topology"
	dErrors "archipelago/pkg/domain-errors"
)

// Snapshot is the persisted form of an archipelago. It is restorable only
// as a whole.
type Snapshot struct {
	Islands  []island.State    `json:"islands"`
	Migrants []migration.Group `json:"migrants"`
	Topology topology.State    `json:"topology"`
}

// Snapshot captures islands, mailbox and topology in one pass. It fails with
// CodeConflict while any island is evolving; Wait first. No evolution can be
// requested while the capture runs.
func (a *Archipelago) Snapshot() (Snapshot, error) {
	start := time.Now()
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, isl := range a.islands {
		if isl.Status().Busy() {
			return Snapshot{}, dErrors.Newf(dErrors.CodeConflict,
				"cannot snapshot while the island at ordinal %d is evolving", i)
		}
	}

	snap := Snapshot{
		Islands:  make([]island.State, len(a.islands)),
		Migrants: a.mailbox.Snapshot(),
		Topology: a.topo.get().State(),
	}
	for i, isl := range a.islands {
		st, err := isl.State()
		if err != nil {
			return Snapshot{}, dErrors.Wrap(err, dErrors.CodeInternal, "capture island state")
		}
		snap.Islands[i] = st
	}
	if a.metrics != nil {
		a.metrics.ObserveSave(start)
	}
	return snap, nil
}

// Save writes the snapshot as JSON.
func (a *Archipelago) Save(w io.Writer) error {
	snap, err := a.Snapshot()
	if err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode snapshot")
	}
	return nil
}

// Load reads a JSON snapshot and restores it. A malformed stream leaves the
// archipelago untouched.
func (a *Archipelago) Load(ctx context.Context, r io.Reader) error {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "decode snapshot")
	}
	return a.Restore(ctx, snap)
}

// restored is a fully built, not yet visible replacement state.
type restored struct {
	islands  []*island.Island
	registry *IndexRegistry
	mailbox  *Mailbox
	topo     *topologyRef
}

// Restore replaces the archipelago's whole state with snap. Everything is
// rebuilt into temporaries first; only when that succeeds is the state
// exchanged in one step. The displaced islands keep their own registry,
// mailbox and topology, so they are waited for after the swap without
// holding the lock.
func (a *Archipelago) Restore(ctx context.Context, snap Snapshot) error {
	start := time.Now()
	next, err := a.build(ctx, snap)
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return errClosed()
	}
	displaced := a.islands
	a.islands = next.islands
	a.registry = next.registry
	a.mailbox = next.mailbox
	a.topo = next.topo
	a.mu.Unlock()

	for _, isl := range displaced {
		isl.Wait()
	}

	n := len(next.islands)
	if a.metrics != nil {
		a.metrics.SetIslands(n)
		a.metrics.ObserveRestore(start)
	}
	if a.logger != nil {
		a.logger.Info("archipelago restored",
			"islands", n,
			"topology", snap.Topology.Kind,
		)
	}
	ev := events.New(events.Restored, -1)
	ev.Islands = n
	a.publish(ev)
	return nil
}

func (a *Archipelago) build(ctx context.Context, snap Snapshot) (*restored, error) {
	n := len(snap.Islands)
	if len(snap.Migrants) != n {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput,
			"snapshot has %d islands but %d migrant entries", n, len(snap.Migrants))
	}
	if n > a.maxIslands {
		return nil, dErrors.Newf(dErrors.CodeOverflow,
			"snapshot has %d islands, more than the maximum of %d", n, a.maxIslands)
	}
	topo, err := topology.FromState(snap.Topology)
	if err != nil {
		return nil, err
	}
	if topo.NumNodes() != n {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"snapshot topology has %d nodes but there are %d islands", topo.NumNodes(), n)
	}

	islands := make([]*island.Island, n)
	g, gctx := errgroup.WithContext(ctx)
	for i, st := range snap.Islands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			isl, err := island.FromState(st, island.WithLogger(a.logger))
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInvalidInput, "restore island")
			}
			islands[i] = isl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	registry := newIndexRegistry()
	for i, isl := range islands {
		registry.register(isl.ID(), i)
	}
	mailbox := newMailbox(0)
	mailbox.replace(snap.Migrants)
	return &restored{
		islands:  islands,
		registry: registry,
		mailbox:  mailbox,
		topo:     &topologyRef{t: topo},
	}, nil
}
