// Package island runs one algorithm against one population on its own
// goroutine. Evolution requests queue in FIFO order; faults are recorded and
// only surface through Status and WaitCheck.
package island

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"archipelago/internal/algorithm"
	"archipelago/internal/migration"
	"archipelago/internal/population"
	"archipelago/internal/topology"
	dErrors "archipelago/pkg/domain-errors"
)

// DefaultMigrationRate is the number of emigrants selected per cycle.
const DefaultMigrationRate = 1

// Migration is the handle an island receives with each evolution request.
// It bundles the owning archipelago's Index Registry, Migration Mailbox and
// Topology for the duration of the request; islands never keep it.
type Migration interface {
	// Ordinal resolves the island's current position.
	Ordinal() (int, error)
	NumIslands() int
	Connections(ordinal int) (topology.Connections, error)
	Extract(ordinal int) (migration.Group, error)
	Deposit(ordinal int, group migration.Group) error
}

// Args describes how to build an island. Either Population is set, or
// Problem and Size are; Seed is optional and random when nil.
type Args struct {
	Algorithm     algorithm.Algorithm
	Problem       population.Problem
	Size          int
	Seed          *uint64
	Population    *population.Population
	MigrationRate int
}

// Seed is a convenience for filling Args.Seed.
func Seed(v uint64) *uint64 { return &v }

// Island owns a population and an algorithm.
type Island struct {
	id     uuid.UUID
	rate   int
	logger *slog.Logger

	mu      sync.Mutex
	drained *sync.Cond
	algo    algorithm.Algorithm
	pop     *population.Population
	queue   []task
	running bool
	faults  []error

	// rng drives migration acceptance; only the worker goroutine touches it.
	rng *rand.Rand
}

type task struct {
	cycles uint
	mig    Migration
}

type Option func(*Island)

func WithLogger(logger *slog.Logger) Option {
	return func(i *Island) {
		i.logger = logger
	}
}

// WithID sets the island's handle. Archipelagos issue handles this way.
func WithID(id uuid.UUID) Option {
	return func(i *Island) {
		i.id = id
	}
}

// New builds an island from args. Nothing is started until Evolve.
func New(args Args, opts ...Option) (*Island, error) {
	if args.Algorithm == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "algorithm is required")
	}
	if args.MigrationRate < 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "migration rate must not be negative, got %d", args.MigrationRate)
	}
	pop := args.Population
	if pop != nil {
		pop = pop.Clone()
	} else {
		seed := rand.Uint64()
		if args.Seed != nil {
			seed = *args.Seed
		}
		var err error
		pop, err = population.New(args.Problem, args.Size, seed)
		if err != nil {
			return nil, err
		}
	}
	rate := args.MigrationRate
	if rate == 0 {
		rate = DefaultMigrationRate
	}
	return newIsland(args.Algorithm.Clone(), pop, rate, opts...), nil
}

func newIsland(algo algorithm.Algorithm, pop *population.Population, rate int, opts ...Option) *Island {
	i := &Island{
		id:   uuid.New(),
		rate: rate,
		algo: algo,
		pop:  pop,
		rng:  rand.New(rand.NewPCG(pop.Seed(), uint64(rate))),
	}
	i.drained = sync.NewCond(&i.mu)
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ID is the island's opaque handle.
func (i *Island) ID() uuid.UUID { return i.id }

// MigrationRate is the number of emigrants selected per cycle.
func (i *Island) MigrationRate() int { return i.rate }

// Evolve queues cycles generations and returns immediately. Requests made
// while the island is busy run after the current ones. Faults left over from
// a previous, finished run are cleared.
func (i *Island) Evolve(cycles uint, mig Migration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.running {
		i.faults = nil
	}
	i.queue = append(i.queue, task{cycles: cycles, mig: mig})
	if !i.running {
		i.running = true
		go i.run()
	}
}

// Wait blocks until every queued evolution has finished. It never fails.
func (i *Island) Wait() {
	i.mu.Lock()
	defer i.mu.Unlock()
	for i.running {
		i.drained.Wait()
	}
}

// WaitCheck waits like Wait, then consumes the recorded faults and returns
// the first one.
func (i *Island) WaitCheck() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for i.running {
		i.drained.Wait()
	}
	faults := i.faults
	i.faults = nil
	if len(faults) == 0 {
		return nil
	}
	return faults[0]
}

// Status reports the island state without consuming faults.
func (i *Island) Status() Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return statusOf(i.running, len(i.faults) > 0)
}

// Fault returns the first pending fault without consuming it.
func (i *Island) Fault() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.faults) == 0 {
		return nil
	}
	return i.faults[0]
}

// Population returns a copy of the last completed population.
func (i *Island) Population() *population.Population {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.pop.Clone()
}

// SetPopulation replaces the population. A running evolution overwrites it
// when its current generation completes.
func (i *Island) SetPopulation(pop *population.Population) {
	c := pop.Clone()
	i.mu.Lock()
	defer i.mu.Unlock()
	i.pop = c
}

// Algorithm returns a copy of the island's algorithm.
func (i *Island) Algorithm() algorithm.Algorithm {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.algo.Clone()
}

// SetAlgorithm replaces the algorithm used from the next generation on.
func (i *Island) SetAlgorithm(algo algorithm.Algorithm) {
	c := algo.Clone()
	i.mu.Lock()
	defer i.mu.Unlock()
	i.algo = c
}

// Clone returns an idle copy of the island with a fresh handle.
func (i *Island) Clone(opts ...Option) *Island {
	i.mu.Lock()
	algo, pop := i.algo.Clone(), i.pop.Clone()
	i.mu.Unlock()
	opts = append([]Option{WithLogger(i.logger)}, opts...)
	return newIsland(algo, pop, i.rate, opts...)
}

func (i *Island) String() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return fmt.Sprintf("Island %s: %s, %s, %d individuals, %s",
		i.id, i.algo.Name(), i.pop.Problem().Name(), i.pop.Size(), statusOf(i.running, len(i.faults) > 0))
}

func (i *Island) run() {
	for {
		i.mu.Lock()
		if len(i.queue) == 0 {
			i.running = false
			i.drained.Broadcast()
			i.mu.Unlock()
			return
		}
		t := i.queue[0]
		i.queue = i.queue[1:]
		i.mu.Unlock()

		if err := i.execute(t); err != nil {
			i.mu.Lock()
			i.faults = append(i.faults, err)
			i.mu.Unlock()
			if i.logger != nil {
				i.logger.Warn("island evolution failed",
					"island_id", i.id,
					"error", err,
				)
			}
		}
	}
}

func (i *Island) execute(t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("island %s: evolution panicked: %v", i.id, r)
		}
	}()
	ctx := context.Background()
	for range t.cycles {
		if t.mig != nil {
			if err := i.immigrate(t.mig); err != nil {
				return fmt.Errorf("island %s: immigration: %w", i.id, err)
			}
		}

		i.mu.Lock()
		algo, pop := i.algo, i.pop.Clone()
		i.mu.Unlock()

		evolved, err := algo.Evolve(ctx, pop)
		if err != nil {
			return fmt.Errorf("island %s: evolve: %w", i.id, err)
		}

		i.mu.Lock()
		i.pop = evolved
		i.mu.Unlock()

		if t.mig != nil {
			if err := i.emigrate(t.mig); err != nil {
				return fmt.Errorf("island %s: emigration: %w", i.id, err)
			}
		}
	}
	return nil
}

// immigrate drains the island's mailbox slot and lets each immigrant replace
// the current worst individual when it is strictly better.
func (i *Island) immigrate(mig Migration) error {
	self, err := mig.Ordinal()
	if err != nil {
		return err
	}
	group, err := mig.Extract(self)
	if err != nil {
		return err
	}
	if group.Empty() {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	fs := i.pop.F()
	for _, ind := range group.Individuals {
		worst := i.pop.Worst()
		if worst < 0 || !population.Less(ind.F, fs[worst]) {
			continue
		}
		if err := i.pop.Replace(worst, ind); err != nil {
			return err
		}
		fs[worst] = ind.F
	}
	return nil
}

// emigrate sends the island's best individuals to every island that lists it
// as a source, accepting each edge with probability equal to its weight.
func (i *Island) emigrate(mig Migration) error {
	self, err := mig.Ordinal()
	if err != nil {
		return err
	}
	i.mu.Lock()
	group := i.pop.Group(i.pop.Best(i.rate))
	i.mu.Unlock()
	if group.Empty() {
		return nil
	}
	for dst := range mig.NumIslands() {
		if dst == self {
			continue
		}
		conns, err := mig.Connections(dst)
		if err != nil {
			return err
		}
		w, ok := conns.WeightFrom(self)
		if !ok || i.rng.Float64() >= w {
			continue
		}
		if err := mig.Deposit(dst, group.Clone()); err != nil {
			return err
		}
	}
	return nil
}
