package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"archipelago/internal/algorithm"
	"archipelago/internal/archipelago"
	"archipelago/internal/archipelago/events"
	"archipelago/internal/island"
	"archipelago/internal/platform/config"
	"archipelago/internal/platform/kafka"
	platformredis "archipelago/internal/platform/redis"
	"archipelago/internal/population"
	"archipelago/internal/snapshot"
	"archipelago/internal/snapshot/store/fs"
	"archipelago/internal/snapshot/store/memory"
	"archipelago/internal/snapshot/store/postgres"
	"archipelago/internal/snapshot/store/redis"
	"archipelago/internal/snapshot/store/s3"
	"archipelago/internal/snapshot/store/sqlite"
	"archipelago/internal/topology"
)

func buildArchipelago(cfg config.Evolution, opts ...archipelago.Option) (*archipelago.Archipelago, error) {
	problem, err := population.ProblemFromState(population.ProblemState{Kind: cfg.Problem, Dimension: cfg.Dimension})
	if err != nil {
		return nil, err
	}
	algo, err := algorithm.New(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	topo, err := topology.New(cfg.Topology, topology.DefaultWeight)
	if err != nil {
		return nil, err
	}
	return archipelago.New(cfg.Islands, island.Args{
		Algorithm:     algo,
		Problem:       problem,
		Size:          cfg.PopulationSize,
		Seed:          island.Seed(cfg.Seed),
		MigrationRate: cfg.MigrationRate,
	}, append(opts, archipelago.WithTopology(topo))...)
}

// openStore returns nil when checkpoints are disabled.
func openStore(ctx context.Context, cfg config.Config) (snapshot.Store, func(), error) {
	noop := func() {}
	switch cfg.Snapshot.Driver {
	case "":
		return nil, noop, nil
	case "memory":
		return memory.New(), noop, nil
	case "fs":
		s, err := fs.New(cfg.Snapshot.Path)
		return s, noop, err
	case "sqlite":
		s, err := sqlite.Open(cfg.Snapshot.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		s, err := postgres.Open(ctx, cfg.Snapshot.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	case "redis":
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return redis.New(client.Client, cfg.Redis.TTL), func() { _ = client.Close() }, nil
	case "s3":
		s, err := s3.New(ctx, s3.Config{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		})
		return s, noop, err
	default:
		return nil, noop, fmt.Errorf("unknown snapshot driver %q", cfg.Snapshot.Driver)
	}
}

// eventSink ships events to Kafka when brokers are configured and to the log
// otherwise.
func eventSink(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (events.Publisher, func(), error) {
	if !cfg.Enabled() {
		return logSink{log: log}, func() {}, nil
	}
	client, err := kafka.NewProducer(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, nil, err
	}
	if err := kafka.EnsureTopic(ctx, client, cfg.Topic, 3, 1); err != nil {
		client.Close()
		return nil, nil, err
	}
	return events.NewKafka(client, cfg.Topic), client.Close, nil
}

type logSink struct {
	log *slog.Logger
}

func (s logSink) Publish(ctx context.Context, e events.Event) error {
	s.log.DebugContext(ctx, "archipelago event",
		"type", e.Type,
		"ordinal", e.Ordinal,
		"island_id", e.IslandID,
		"islands", e.Islands,
		"detail", e.Detail,
	)
	return nil
}

func setupTracing(cfg config.Server) (func(context.Context) error, error) {
	if !cfg.TraceStdout {
		return func(context.Context) error { return nil }, nil
	}
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
