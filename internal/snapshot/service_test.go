package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"archipelago/internal/algorithm"
	"archipelago/internal/archipelago"
	"archipelago/internal/island"
	"archipelago/internal/population"
	"archipelago/internal/snapshot/store/memory"
	dErrors "archipelago/pkg/domain-errors"
	"archipelago/pkg/platform/sentinel"
)

type brokenStore struct {
	memory.Store
	err error
}

func (b *brokenStore) Put(context.Context, string, []byte) error { return b.err }
func (b *brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, b.err
}

// gated holds every generation until gate is closed.
type gated struct {
	gate chan struct{}
}

func (gated) Name() string { return "gated" }
func (g gated) Evolve(_ context.Context, pop *population.Population) (*population.Population, error) {
	<-g.gate
	return pop, nil
}
func (g gated) Clone() algorithm.Algorithm { return g }
func (gated) State() algorithm.State       { return algorithm.State{Kind: "gated"} }

type ServiceSuite struct {
	suite.Suite
	arch     *archipelago.Archipelago
	store    *memory.Store
	spans    *tracetest.SpanRecorder
	provider *sdktrace.TracerProvider
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	sphere, err := population.NewSphere(2)
	s.Require().NoError(err)
	s.arch, err = archipelago.New(3, island.Args{
		Algorithm: algorithm.DefaultMutation(),
		Problem:   sphere,
		Size:      5,
		Seed:      island.Seed(7),
	})
	s.Require().NoError(err)

	s.store = memory.New()
	s.spans = tracetest.NewSpanRecorder()
	s.provider = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.spans))
	s.service = New(s.store, s.arch, WithTracer(s.provider.Tracer("test")))
}

func (s *ServiceSuite) TearDownTest() {
	_ = s.provider.Shutdown(context.Background())
	_ = s.arch.Close()
}

func (s *ServiceSuite) TestSaveAndRestore() {
	ctx := context.Background()
	s.Require().NoError(s.arch.Evolve(2))
	s.Require().NoError(s.arch.WaitCheck())
	want, err := s.arch.ChampionsF()
	s.Require().NoError(err)

	s.Require().NoError(s.service.Save(ctx, "run-1"))

	s.Require().NoError(s.arch.Evolve(5))
	s.Require().NoError(s.arch.WaitCheck())

	s.Require().NoError(s.service.Restore(ctx, "run-1"))
	got, err := s.arch.ChampionsF()
	s.Require().NoError(err)
	s.Equal(want, got)

	ended := s.spans.Ended()
	s.Require().Len(ended, 2)
	s.Equal("snapshot.Save", ended[0].Name())
	s.Equal("snapshot.Restore", ended[1].Name())
}

func (s *ServiceSuite) TestKeyValidation() {
	for _, key := range []string{"", "../x", "a/b", ".hidden", string(make([]byte, 200))} {
		err := s.service.Save(context.Background(), key)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation), "key %q", key)
	}
}

func (s *ServiceSuite) TestRestoreMissing() {
	err := s.service.Restore(context.Background(), "nope")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	ended := s.spans.Ended()
	s.Require().Len(ended, 1)
	s.Equal(codes.Error, ended[0].Status().Code)
}

func (s *ServiceSuite) TestRestoreCorruptPayloadLeavesArchipelago() {
	ctx := context.Background()
	before := s.arch.Islands()
	s.Require().NoError(s.store.Put(ctx, DefaultPrefix+"bad", []byte(`{"islands":`)))

	err := s.service.Restore(ctx, "bad")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal(before, s.arch.Islands())
}

func (s *ServiceSuite) TestListAndDelete() {
	ctx := context.Background()
	s.Require().NoError(s.service.Save(ctx, "b"))
	s.Require().NoError(s.service.Save(ctx, "a"))
	s.Require().NoError(s.store.Put(ctx, "elsewhere/c", []byte(`{}`)))

	keys, err := s.service.List(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, keys)

	s.Require().NoError(s.service.Delete(ctx, "a"))
	keys, err = s.service.List(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"b"}, keys)
}

func (s *ServiceSuite) TestStoreErrorsTranslated() {
	ctx := context.Background()
	svc := New(&brokenStore{err: errors.Join(sentinel.ErrUnavailable, errors.New("conn refused"))}, s.arch)
	s.True(dErrors.HasCode(svc.Save(ctx, "k"), dErrors.CodeUnavailable))

	svc = New(&brokenStore{err: errors.New("disk full")}, s.arch)
	s.True(dErrors.HasCode(svc.Save(ctx, "k"), dErrors.CodeInternal))
}

func (s *ServiceSuite) TestSaveWaitsForRunningEvolution() {
	ctx := context.Background()
	sphere, err := population.NewSphere(2)
	s.Require().NoError(err)
	g := gated{gate: make(chan struct{})}
	arch, err := archipelago.New(2, island.Args{Algorithm: g, Problem: sphere, Size: 4, Seed: island.Seed(3)})
	s.Require().NoError(err)
	store := memory.New()
	svc := New(store, arch)

	s.Require().NoError(arch.Evolve(1))
	done := make(chan error, 1)
	go func() { done <- svc.Save(ctx, "mid-run") }()

	s.Never(func() bool { return len(done) > 0 }, 100*time.Millisecond, 10*time.Millisecond,
		"save must not capture islands that are still evolving")
	_, err = store.Get(ctx, DefaultPrefix+"mid-run")
	s.ErrorIs(err, sentinel.ErrNotFound)

	close(g.gate)
	select {
	case err := <-done:
		s.Require().NoError(err)
	case <-time.After(2 * time.Second):
		s.FailNow("save did not return after the evolution finished")
	}
	s.False(arch.Status().Busy())

	data, err := store.Get(ctx, DefaultPrefix+"mid-run")
	s.Require().NoError(err)
	var snap archipelago.Snapshot
	s.Require().NoError(json.Unmarshal(data, &snap))
	s.Len(snap.Islands, 2)
	s.Len(snap.Migrants, 2)
	s.NoError(arch.Close())
}
