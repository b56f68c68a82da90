package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/robfig/cron/v3"
)

// Cache backends selectable through CACHE_BACKEND.
const (
	CacheBackendFile   = "file"
	CacheBackendSQLite = "sqlite"
	CacheBackendMemory = "memory"
)

// DefaultSourceBaseURL is the all-time lists site.
const DefaultSourceBaseURL = "http://www.alltime-athletics.com"

// DefaultUserAgent identifies the service to the upstream site.
const DefaultUserAgent = "Mozilla/5.0 (compatible; athletics-rankings-etl/1.0)"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream ranking pages.
	SourceBaseURL   string
	SourceTimeout   time.Duration
	SourceUserAgent string

	// Result cache.
	CacheBackend    string
	CacheDir        string
	CacheDSN        string
	CacheTTL        time.Duration
	CacheMemorySize int

	// Kafka sink; disabled when KafkaBrokers is empty.
	KafkaBrokers   []string
	KafkaSinkTopic string

	// RefreshSchedule is a cron spec for refreshing every cataloged event.
	// Empty disables scheduled refresh.
	RefreshSchedule string

	EventCatalogFile string
}

// KafkaEnabled reports whether normalized records are published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	sourceTimeout, err := parsePositiveDuration("SOURCE_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("CACHE_TTL", "168h")
	if err != nil {
		return nil, err
	}

	memorySize, err := parsePositiveInt("CACHE_MEMORY_SIZE", 64)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SourceBaseURL:   sharedcfg.EnvOrDefault("SOURCE_BASE_URL", DefaultSourceBaseURL),
		SourceTimeout:   sourceTimeout,
		SourceUserAgent: sharedcfg.EnvOrDefault("SOURCE_USER_AGENT", DefaultUserAgent),

		CacheBackend:    strings.ToLower(sharedcfg.EnvOrDefault("CACHE_BACKEND", CacheBackendFile)),
		CacheDir:        sharedcfg.EnvOrDefault("CACHE_DIR", "data/cache"),
		CacheDSN:        sharedcfg.EnvOrDefault("CACHE_DSN", "data/cache.db"),
		CacheTTL:        cacheTTL,
		CacheMemorySize: memorySize,

		KafkaBrokers:   brokers,
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "athletics-rankings"),

		RefreshSchedule:  strings.TrimSpace(os.Getenv("REFRESH_SCHEDULE")),
		EventCatalogFile: os.Getenv("EVENT_CATALOG_FILE"),
	}

	if cfg.SourceBaseURL == "" {
		return nil, errors.New("SOURCE_BASE_URL is required")
	}
	switch cfg.CacheBackend {
	case CacheBackendFile, CacheBackendSQLite, CacheBackendMemory:
	default:
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q: want file, sqlite or memory", cfg.CacheBackend)
	}
	if cfg.KafkaEnabled() && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_BROKERS is set")
	}
	if cfg.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
			return nil, fmt.Errorf("invalid REFRESH_SCHEDULE: %w", err)
		}
	}

	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
