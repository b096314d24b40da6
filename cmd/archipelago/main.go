package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"archipelago/internal/archipelago"
	"archipelago/internal/archipelago/events"
	"archipelago/internal/archipelago/handler"
	archmetrics "archipelago/internal/archipelago/metrics"
	"archipelago/internal/platform/config"
	"archipelago/internal/platform/httpserver"
	"archipelago/internal/platform/logger"
	"archipelago/internal/platform/metrics"
	"archipelago/internal/snapshot"
	dErrors "archipelago/pkg/domain-errors"
)

// main wires dependencies and runs the HTTP server next to the evolution
// driver. Domain logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("archipelago exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	shutdownTracing, err := setupTracing(cfg.Server)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	g, gctx := errgroup.WithContext(ctx)

	sink, closeSink, err := eventSink(gctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeSink()
	worker := events.NewWorker(sink, 0, log)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		_ = worker.Run(workerCtx)
	}()

	archi, err := buildArchipelago(cfg.Evolution,
		archipelago.WithLogger(log),
		archipelago.WithMetrics(archmetrics.New(reg)),
		archipelago.WithPublisher(worker),
	)
	if err != nil {
		stopWorker()
		return err
	}

	store, closeStore, err := openStore(gctx, cfg)
	if err != nil {
		stopWorker()
		return err
	}
	defer closeStore()
	var checkpoints *snapshot.Service
	var checkpointer handler.Checkpointer
	if store != nil {
		checkpoints = snapshot.New(store, archi, snapshot.WithLogger(log))
		checkpointer = checkpoints
		if err := checkpoints.Restore(gctx, cfg.Snapshot.Key); err != nil {
			if !dErrors.HasCode(err, dErrors.CodeNotFound) {
				log.Warn("startup restore failed", "key", cfg.Snapshot.Key, "error", err)
			}
		} else {
			log.Info("resumed from snapshot", "key", cfg.Snapshot.Key, "islands", archi.Size())
		}
	}

	srv := httpserver.New(cfg.Server.Addr, newRouter(archi, checkpointer, log, reg))

	g.Go(func() error {
		log.Info("starting archipelago", "addr", cfg.Server.Addr, "islands", archi.Size())
		return httpserver.Run(gctx, srv, 10*time.Second)
	})
	g.Go(func() error {
		return drive(gctx, archi, checkpoints, cfg, log)
	})

	err = g.Wait()

	if cerr := archi.Close(); cerr != nil {
		log.Warn("close archipelago", "error", cerr)
	}
	if checkpoints != nil {
		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if serr := checkpoints.Save(saveCtx, cfg.Snapshot.Key); serr != nil {
			log.Warn("final checkpoint failed", "error", serr)
		}
		cancel()
	}
	stopWorker()
	<-workerDone

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newRouter(archi handler.Service, checkpointer handler.Checkpointer, log *slog.Logger, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	handler.New(archi, checkpointer, log, metrics.New(reg)).Register(r)
	return r
}

// drive runs the configured evolution rounds, checkpointing after each.
func drive(ctx context.Context, archi *archipelago.Archipelago, checkpoints *snapshot.Service, cfg config.Config, log *slog.Logger) error {
	for round := range cfg.Evolution.Rounds {
		if ctx.Err() != nil {
			return nil
		}
		if err := archi.Evolve(cfg.Evolution.Generations); err != nil {
			return err
		}
		if err := archi.WaitCheck(); err != nil {
			log.Warn("evolution round faulted", "round", round, "error", err)
		}
		if champs, err := archi.ChampionsF(); err == nil {
			log.Info("evolution round complete", "round", round, "champions_f", champs)
		}
		if checkpoints != nil {
			if err := checkpoints.Save(ctx, cfg.Snapshot.Key); err != nil {
				log.Warn("checkpoint failed", "round", round, "error", err)
			}
		}
	}
	return nil
}
