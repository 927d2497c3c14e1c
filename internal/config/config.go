package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	Environment string `json:"environment"`
	Server      struct {
		Host           string   `json:"host"`
		Port           int      `json:"port"`
		AllowedOrigins []string `json:"allowedOrigins"`
	} `json:"server"`
	Analysis struct {
		Workers int `json:"workers"`
	} `json:"analysis"`
	Matchmaking struct {
		IntervalMS int `json:"intervalMs"`
	} `json:"matchmaking"`
	WebSocket struct {
		ReadBufferSize  int `json:"readBufferSize"`
		WriteBufferSize int `json:"writeBufferSize"`
	} `json:"websocket"`
}

// Default is the configuration used when no file exists for the environment.
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 3000
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Analysis.Workers = 1
	cfg.Matchmaking.IntervalMS = 1000
	cfg.WebSocket.ReadBufferSize = 1024
	cfg.WebSocket.WriteBufferSize = 1024
	return &cfg
}

func Load(env string) (*Config, error) {
	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}

	filename := fmt.Sprintf("config.%s.json", env)
	configPath := filepath.Join(configDir, filename)

	cfg := Default()
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.Environment = env
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	configStr := expandEnvVars(string(data))
	if err := json.Unmarshal([]byte(configStr), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	cfg.Environment = env
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	case c.Analysis.Workers < 1:
		return fmt.Errorf("analysis.workers must be at least 1")
	case c.Matchmaking.IntervalMS <= 0:
		return fmt.Errorf("matchmaking.intervalMs must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) MatchmakingInterval() time.Duration {
	return time.Duration(c.Matchmaking.IntervalMS) * time.Millisecond
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}

func GetEnv() string {
	env := os.Getenv("CHESS_ENV")
	if env == "" {
		return "dev"
	}
	return env
}
