package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 4, cfg.Evolution.Islands)
	assert.Equal(t, uint64(42), cfg.Evolution.Seed)
	assert.Equal(t, "ring", cfg.Evolution.Topology)
	assert.Empty(t, cfg.Snapshot.Driver)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ARCHI_ISLANDS", "8")
	t.Setenv("ARCHI_SEED", "18446744073709551615")
	t.Setenv("ARCHI_SNAPSHOT_DRIVER", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_SNAPSHOT_TTL", "1h")
	t.Setenv("ARCHI_KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("ARCHI_S3_PATH_STYLE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Evolution.Islands)
	assert.Equal(t, uint64(18446744073709551615), cfg.Evolution.Seed)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.S3.PathStyle)
}

func TestFromEnvErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad int":            {"ARCHI_ISLANDS": "many"},
		"negative islands":   {"ARCHI_ISLANDS": "-2"},
		"unknown driver":     {"ARCHI_SNAPSHOT_DRIVER": "tape"},
		"postgres needs dsn": {"ARCHI_SNAPSHOT_DRIVER": "postgres"},
		"s3 needs bucket":    {"ARCHI_SNAPSHOT_DRIVER": "s3"},
		"bad duration":       {"REDIS_DIAL_TIMEOUT": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
