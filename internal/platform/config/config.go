// Package config builds runtime configuration from environment variables so
// main stays lean. Every value has a development default; only broker and
// cache addresses switch features on.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig
	Engine EngineConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Log    LogConfig
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// EngineConfig tunes the advisory engine.
type EngineConfig struct {
	MaxRecommendations  int
	ConfidenceThreshold float64
	HistoryCapacity     int
	AuditCapacity       int
	AuditQueueSize      int
	// KnowledgeFile optionally points at a YAML knowledge document loaded at
	// startup on top of the built-in records.
	KnowledgeFile string
}

// RedisConfig configures the optional result cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ResultTTL    time.Duration
}

// KafkaConfig configures the optional audit event stream. Empty brokers
// disable it and audit events stay in memory.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string
	Format string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Server: ServerConfig{
			Addr:            envString("COUNSEL_ADDR", ":8080"),
			ShutdownTimeout: envDuration("COUNSEL_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Engine: EngineConfig{
			MaxRecommendations:  envInt("COUNSEL_MAX_RECOMMENDATIONS", 5),
			ConfidenceThreshold: envFloat("COUNSEL_CONFIDENCE_THRESHOLD", 0.6),
			HistoryCapacity:     envInt("COUNSEL_HISTORY_CAPACITY", 100),
			AuditCapacity:       envInt("COUNSEL_AUDIT_CAPACITY", 1000),
			AuditQueueSize:      envInt("COUNSEL_AUDIT_QUEUE_SIZE", 256),
			KnowledgeFile:       os.Getenv("COUNSEL_KNOWLEDGE_FILE"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("COUNSEL_REDIS_URL"),
			PoolSize:     envInt("COUNSEL_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("COUNSEL_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("COUNSEL_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("COUNSEL_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("COUNSEL_REDIS_WRITE_TIMEOUT", 3*time.Second),
			ResultTTL:    envDuration("COUNSEL_REDIS_RESULT_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: envList("COUNSEL_KAFKA_BROKERS"),
			Topic:   envString("COUNSEL_KAFKA_TOPIC", "counsel.audit"),
		},
		Log: LogConfig{
			Level:  envString("COUNSEL_LOG_LEVEL", "info"),
			Format: envString("COUNSEL_LOG_FORMAT", "json"),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
