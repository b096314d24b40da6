package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the whole service configuration.
type Config struct {
	Server    Server
	Evolution Evolution
	Snapshot  Snapshot
	Redis     RedisConfig
	S3        S3Config
	Kafka     KafkaConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	LogLevel    string
	TraceStdout bool
}

// Evolution describes the archipelago built at startup and how it is driven.
type Evolution struct {
	Islands        int
	PopulationSize int
	Seed           uint64
	Generations    uint
	// Rounds of Evolve+WaitCheck to run at startup; 0 leaves the archipelago
	// idle until driven over HTTP.
	Rounds        int
	Problem       string
	Dimension     int
	Algorithm     string
	Topology      string
	MigrationRate int
}

// Snapshot selects the checkpoint store.
type Snapshot struct {
	Driver      string // memory|fs|sqlite|postgres|redis|s3; empty disables checkpoints
	Path        string
	Key         string
	PostgresDSN string
}

// RedisConfig holds connection settings for the redis snapshot store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TTL          time.Duration
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether events should be shipped to Kafka.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

var snapshotDrivers = map[string]bool{
	"": true, "memory": true, "fs": true, "sqlite": true, "postgres": true, "redis": true, "s3": true,
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var p parser
	cfg := Config{
		Server: Server{
			Addr:        p.str("ARCHI_ADDR", ":8080"),
			LogLevel:    p.str("ARCHI_LOG_LEVEL", "info"),
			TraceStdout: p.boolean("ARCHI_TRACE_STDOUT", false),
		},
		Evolution: Evolution{
			Islands:        p.integer("ARCHI_ISLANDS", 4),
			PopulationSize: p.integer("ARCHI_POP_SIZE", 20),
			Seed:           p.uint64("ARCHI_SEED", 42),
			Generations:    uint(p.integer("ARCHI_GENERATIONS", 10)),
			Rounds:         p.integer("ARCHI_ROUNDS", 0),
			Problem:        p.str("ARCHI_PROBLEM", "sphere"),
			Dimension:      p.integer("ARCHI_DIMENSION", 5),
			Algorithm:      p.str("ARCHI_ALGORITHM", "mutation"),
			Topology:       p.str("ARCHI_TOPOLOGY", "ring"),
			MigrationRate:  p.integer("ARCHI_MIGRATION_RATE", 1),
		},
		Snapshot: Snapshot{
			Driver:      p.str("ARCHI_SNAPSHOT_DRIVER", ""),
			Path:        p.str("ARCHI_SNAPSHOT_PATH", "./snapshots"),
			Key:         p.str("ARCHI_SNAPSHOT_KEY", "latest"),
			PostgresDSN: p.str("ARCHI_POSTGRES_DSN", ""),
		},
		Redis: RedisConfig{
			URL:          p.str("REDIS_URL", ""),
			PoolSize:     p.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			TTL:          p.duration("REDIS_SNAPSHOT_TTL", 0),
		},
		S3: S3Config{
			Bucket:    p.str("ARCHI_S3_BUCKET", ""),
			Region:    p.str("ARCHI_S3_REGION", "us-east-1"),
			Endpoint:  p.str("ARCHI_S3_ENDPOINT", ""),
			PathStyle: p.boolean("ARCHI_S3_PATH_STYLE", false),
		},
		Kafka: KafkaConfig{
			Brokers: p.list("ARCHI_KAFKA_BROKERS"),
			Topic:   p.str("ARCHI_KAFKA_TOPIC", "archipelago.events"),
		},
	}
	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Evolution.Islands < 0 {
		return fmt.Errorf("ARCHI_ISLANDS must not be negative, got %d", c.Evolution.Islands)
	}
	if c.Evolution.PopulationSize < 0 {
		return fmt.Errorf("ARCHI_POP_SIZE must not be negative, got %d", c.Evolution.PopulationSize)
	}
	if !snapshotDrivers[c.Snapshot.Driver] {
		return fmt.Errorf("unknown ARCHI_SNAPSHOT_DRIVER %q", c.Snapshot.Driver)
	}
	switch c.Snapshot.Driver {
	case "postgres":
		if c.Snapshot.PostgresDSN == "" {
			return fmt.Errorf("ARCHI_POSTGRES_DSN is required for the postgres snapshot driver")
		}
	case "redis":
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis snapshot driver")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("ARCHI_S3_BUCKET is required for the s3 snapshot driver")
		}
	}
	return nil
}

// parser keeps the first conversion error so FromEnv reads linearly.
type parser struct {
	err error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}

func (p *parser) uint64(key string, def uint64) uint64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}

func (p *parser) boolean(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}

func (p *parser) list(key string) []string {
	var out []string
	for part := range strings.SplitSeq(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
