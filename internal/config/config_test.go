package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://www.alltime-athletics.com", cfg.SourceBaseURL)
	assert.Equal(t, 30*time.Second, cfg.SourceTimeout)
	assert.Equal(t, DefaultUserAgent, cfg.SourceUserAgent)
	assert.Equal(t, CacheBackendFile, cfg.CacheBackend)
	assert.Equal(t, "data/cache", cfg.CacheDir)
	assert.Equal(t, "data/cache.db", cfg.CacheDSN)
	assert.Equal(t, 7*24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 64, cfg.CacheMemorySize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "athletics-rankings", cfg.KafkaSinkTopic)
	assert.Empty(t, cfg.RefreshSchedule)
	assert.Empty(t, cfg.EventCatalogFile)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("SOURCE_BASE_URL", "http://mirror.local")
	t.Setenv("SOURCE_TIMEOUT", "5s")
	t.Setenv("SOURCE_USER_AGENT", "test-agent")
	t.Setenv("CACHE_BACKEND", "SQLite")
	t.Setenv("CACHE_DIR", "/tmp/cache")
	t.Setenv("CACHE_DSN", "/tmp/cache.db")
	t.Setenv("CACHE_TTL", "24h")
	t.Setenv("CACHE_MEMORY_SIZE", "8")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "rankings")
	t.Setenv("REFRESH_SCHEDULE", "0 4 * * *")
	t.Setenv("EVENT_CATALOG_FILE", "events.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://mirror.local", cfg.SourceBaseURL)
	assert.Equal(t, 5*time.Second, cfg.SourceTimeout)
	assert.Equal(t, "test-agent", cfg.SourceUserAgent)
	assert.Equal(t, CacheBackendSQLite, cfg.CacheBackend)
	assert.Equal(t, "/tmp/cache", cfg.CacheDir)
	assert.Equal(t, "/tmp/cache.db", cfg.CacheDSN)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 8, cfg.CacheMemorySize)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "rankings", cfg.KafkaSinkTopic)
	assert.Equal(t, "0 4 * * *", cfg.RefreshSchedule)
	assert.Equal(t, "events.yaml", cfg.EventCatalogFile)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration", "SHUTDOWN_TIMEOUT"},
		{"SOURCE_TIMEOUT", "bad", "SOURCE_TIMEOUT"},
		{"SOURCE_TIMEOUT", "-1s", "SOURCE_TIMEOUT"},
		{"CACHE_TTL", "0s", "CACHE_TTL"},
		{"CACHE_MEMORY_SIZE", "0", "CACHE_MEMORY_SIZE"},
		{"CACHE_MEMORY_SIZE", "many", "CACHE_MEMORY_SIZE"},
		{"CACHE_BACKEND", "redis", "CACHE_BACKEND"},
		{"REFRESH_SCHEDULE", "every day", "REFRESH_SCHEDULE"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
