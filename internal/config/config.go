package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP Configuration
	HTTPAddr string

	// Ollama Backend Configuration
	OllamaURL      string
	DefaultModel   string
	RequestTimeout time.Duration
	ProbeTimeout   time.Duration

	// Interaction Log Configuration
	LogFile string

	// NATS Configuration (empty NatsURL disables the NATS transport)
	NatsURL        string
	NatsSubject    string
	NatsQueueGroup string
}

func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			slog.Warn("Could not load env file", "file", envFile, "error", err)
		} else {
			slog.Info("Environment loaded", "file", envFile)
		}
	}

	return &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":5000"),
		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		DefaultModel:   getEnv("DEFAULT_MODEL", "llama2"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", "30s"),
		ProbeTimeout:   getEnvDuration("PROBE_TIMEOUT", "2s"),
		LogFile:        getEnv("LOG_FILE", "logs/ai_hub_log.jsonl"),
		NatsURL:        getEnv("NATS_URL", ""),
		NatsSubject:    getEnv("NATS_SUBJECT", "localai.generate.request"),
		NatsQueueGroup: getEnv("NATS_QUEUE_GROUP", "workers"),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key, defaultVal string) time.Duration {
	val := getEnv(key, defaultVal)
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultVal)
	return d
}
