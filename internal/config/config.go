package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Queue   QueueConfig
	Poll    PollConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// BackendConfig holds extraction backend settings.
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
	// Timeout applies to ordinary calls; UploadTimeout applies to file
	// submissions, whose extraction can run long on large documents.
	Timeout       time.Duration `mapstructure:"timeout"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
}

// QueueConfig holds submission queue settings.
type QueueConfig struct {
	MinInterval  time.Duration `mapstructure:"min_interval"`
	BackoffStart time.Duration `mapstructure:"backoff_start"`
	BackoffCap   time.Duration `mapstructure:"backoff_cap"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
}

// PollConfig holds task polling settings.
type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Load reads configuration from environment variables with the TRIPDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Backend defaults
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.token", "")
	v.SetDefault("backend.timeout", "60s")
	v.SetDefault("backend.upload_timeout", "120s")

	// Queue defaults mirror the capacity limits of the submission channel.
	v.SetDefault("queue.min_interval", "4s")
	v.SetDefault("queue.backoff_start", "800ms")
	v.SetDefault("queue.backoff_cap", "8s")
	v.SetDefault("queue.max_attempts", 5)

	// Poll defaults
	v.SetDefault("poll.interval", "3s")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "TRIPDESK_SERVER_PORT",
		"server.read_timeout":    "TRIPDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "TRIPDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":     "TRIPDESK_SERVER_ENVIRONMENT",
		"backend.base_url":       "TRIPDESK_BACKEND_BASE_URL",
		"backend.token":          "TRIPDESK_BACKEND_TOKEN",
		"backend.timeout":        "TRIPDESK_BACKEND_TIMEOUT",
		"backend.upload_timeout": "TRIPDESK_BACKEND_UPLOAD_TIMEOUT",
		"queue.min_interval":     "TRIPDESK_QUEUE_MIN_INTERVAL",
		"queue.backoff_start":    "TRIPDESK_QUEUE_BACKOFF_START",
		"queue.backoff_cap":      "TRIPDESK_QUEUE_BACKOFF_CAP",
		"queue.max_attempts":     "TRIPDESK_QUEUE_MAX_ATTEMPTS",
		"poll.interval":          "TRIPDESK_POLL_INTERVAL",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
