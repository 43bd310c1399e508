package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port string
}

// LoggingConfig mirrors the knobs understood by shared/logging.
type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

// DatabaseConfig points at the postgres instance. An empty URL switches the
// process to the seeded in-memory repositories.
type DatabaseConfig struct {
	URL string
}

// KafkaConfig configures the optional outbound event mirror. Without brokers
// the mirror is never started.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// WebsocketConfig tunes the realtime channel.
type WebsocketConfig struct {
	SendBuffer int
}

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
}

// Load reads configuration from the environment, applying defaults suited to
// local development.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "3000"),
		},
		Logging: LoggingConfig{
			Level:     envOr("LOG_LEVEL", "info"),
			Format:    envOr("LOG_FORMAT", "text"),
			Directory: envOr("LOG_DIR", "./logs"),
		},
		Database: DatabaseConfig{
			URL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(firstNonEmpty(os.Getenv("KAFKA_BROKERS"), os.Getenv("KAFKA_BROKER"))),
			Topic:   envOr("KAFKA_TOPIC", "veroxos.orders"),
		},
		Websocket: WebsocketConfig{
			SendBuffer: 8,
		},
	}

	if raw := strings.TrimSpace(os.Getenv("WS_SEND_BUFFER")); raw != "" {
		buf, err := strconv.Atoi(raw)
		if err != nil || buf < 1 {
			return nil, fmt.Errorf("invalid WS_SEND_BUFFER %q", raw)
		}
		cfg.Websocket.SendBuffer = buf
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
