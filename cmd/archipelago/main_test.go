package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archipelago/internal/archipelago/handler"
	"archipelago/internal/platform/config"
	"archipelago/internal/snapshot"
	"archipelago/pkg/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	cfg.Evolution.Islands = 3
	cfg.Evolution.PopulationSize = 6
	cfg.Evolution.Generations = 2
	cfg.Evolution.Rounds = 2
	return cfg
}

func TestRouter(t *testing.T) {
	testutil.Given(t, "an archipelago built from configuration", func(t *testing.T) {
		cfg := testConfig(t)
		archi, err := buildArchipelago(cfg.Evolution)
		require.NoError(t, err)
		t.Cleanup(func() { _ = archi.Close() })
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		router := newRouter(archi, nil, log, prometheus.NewRegistry())

		testutil.When(t, "calling GET /archipelago", func(t *testing.T) {
			rr := testutil.DoRequest(router, http.MethodGet, "/archipelago")

			testutil.Then(t, "it describes every island", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rr.Code)
				resp := testutil.UnmarshalResponse[handler.SummaryResponse](t, rr)
				assert.Equal(t, 3, resp.Islands)
				assert.Equal(t, "Ring", resp.Topology)
			})
		})

		testutil.When(t, "asking for an island past the end", func(t *testing.T) {
			rr := testutil.DoRequest(router, http.MethodGet, "/archipelago/islands/9")

			testutil.Then(t, "it reports out of range", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "out_of_range")
			})
		})

		testutil.When(t, "scraping /metrics", func(t *testing.T) {
			_ = testutil.DoRequest(router, http.MethodGet, "/archipelago/status")
			rr := testutil.DoRequest(router, http.MethodGet, "/metrics")

			testutil.Then(t, "http metrics are exposed", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rr.Code)
				assert.Contains(t, rr.Body.String(), "archipelago_http_requests_total")
			})
		})
	})
}

func TestBuildArchipelagoRejectsUnknownKinds(t *testing.T) {
	for name, mutate := range map[string]func(*config.Evolution){
		"problem":   func(e *config.Evolution) { e.Problem = "ackley" },
		"algorithm": func(e *config.Evolution) { e.Algorithm = "pso" },
		"topology":  func(e *config.Evolution) { e.Topology = "star" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			mutate(&cfg.Evolution)
			_, err := buildArchipelago(cfg.Evolution)
			assert.Error(t, err)
		})
	}
}

func TestDriveCheckpointsEachRound(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Snapshot.Driver = "sqlite"
	cfg.Snapshot.Path = t.TempDir() + "/snapshots.db"

	archi, err := buildArchipelago(cfg.Evolution)
	require.NoError(t, err)
	defer func() { _ = archi.Close() }()

	store, closeStore, err := openStore(ctx, cfg)
	require.NoError(t, err)
	defer closeStore()
	checkpoints := snapshot.New(store, archi)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, drive(ctx, archi, checkpoints, cfg, log))

	keys, err := checkpoints.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.Snapshot.Key}, keys)
}

func TestOpenStoreDrivers(t *testing.T) {
	ctx := context.Background()
	for _, driver := range []string{"", "memory", "fs"} {
		t.Run("driver "+driver, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Snapshot.Driver = driver
			cfg.Snapshot.Path = t.TempDir()
			store, closeStore, err := openStore(ctx, cfg)
			require.NoError(t, err)
			defer closeStore()
			if driver == "" {
				assert.Nil(t, store)
				return
			}
			assert.NotNil(t, store)
		})
	}
}
