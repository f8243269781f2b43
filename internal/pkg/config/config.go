package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIBaseURL is the root of the external job-board REST API.
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8000/api"`
	Port       string `env:"PORT,         default=3000"`
	Env        string `env:"ENV,          default=development"`
	LogLevel   string `env:"LOG_LEVEL,    default=info"`
	// StateDir holds the two persisted session slots (token, user).
	StateDir string `env:"STATE_DIR,     default=.jobdeck"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
