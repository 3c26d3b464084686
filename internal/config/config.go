package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type APIConfig struct {
	BaseURL      string `toml:"base_url"`
	StreamPath   string `toml:"stream_path"`
	GeneratePath string `toml:"generate_path"`
	HealthPath   string `toml:"health_path"`
}

type StreamConfig struct {
	// ProgressIntervalMS bounds how often UI-visible progress updates are
	// emitted. Module completions bypass it.
	ProgressIntervalMS int `toml:"progress_interval_ms"`
}

type ExtractConfig struct {
	BracesPerModule    int `toml:"braces_per_module"`
	MinExpectedModules int `toml:"min_expected_modules"`
}

type Config struct {
	API     APIConfig     `toml:"api"`
	Stream  StreamConfig  `toml:"stream"`
	Extract ExtractConfig `toml:"extract"`
}

func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "http://localhost:8080",
			StreamPath:   "/api/curriculum/generate/stream",
			GeneratePath: "/api/curriculum/generate",
			HealthPath:   "/api/health",
		},
		Stream: StreamConfig{
			ProgressIntervalMS: 300,
		},
		Extract: ExtractConfig{
			BracesPerModule:    100,
			MinExpectedModules: 3,
		},
	}
}

// Load reads a TOML file over the defaults. Missing keys keep their default
// values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides config values from the environment. Called by the
// binaries after Load so deployment env wins over the file.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("STUDIO_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("STUDIO_STREAM_PATH"); v != "" {
		c.API.StreamPath = v
	}
	if v := os.Getenv("STUDIO_GENERATE_PATH"); v != "" {
		c.API.GeneratePath = v
	}
	if v := os.Getenv("STUDIO_HEALTH_PATH"); v != "" {
		c.API.HealthPath = v
	}
	if v := os.Getenv("STUDIO_PROGRESS_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Stream.ProgressIntervalMS = n
		}
	}
}

func (c *Config) StreamURL() string   { return c.API.BaseURL + c.API.StreamPath }
func (c *Config) GenerateURL() string { return c.API.BaseURL + c.API.GeneratePath }
func (c *Config) HealthURL() string   { return c.API.BaseURL + c.API.HealthPath }

func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.Stream.ProgressIntervalMS) * time.Millisecond
}
