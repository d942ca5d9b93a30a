package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all analyzer configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Web server
	Server ServerConfig `yaml:"server"`

	// Google Cloud Vision (OCR)
	Vision VisionConfig `yaml:"vision"`

	// Gemini vision-language model
	Gemini GeminiConfig `yaml:"gemini"`

	// Health scoring
	Health HealthConfig `yaml:"health"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
	WebRoot     string `yaml:"web_root"`
}

// VisionConfig configures the Cloud Vision OCR client.
type VisionConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// GeminiConfig configures the vision-language model client.
type GeminiConfig struct {
	APIKey          string  `yaml:"api_key"`
	BaseURL         string  `yaml:"base_url"`
	Model           string  `yaml:"model"`
	Backend         string  `yaml:"backend"` // rest, sdk
	Timeout         string  `yaml:"timeout"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`
}

// HealthConfig configures the scoring rules source.
type HealthConfig struct {
	// RulesPath points at a YAML rules file; empty means built-in rules.
	RulesPath string `yaml:"rules_path"`

	// WatchRules reloads the rules file on change.
	WatchRules bool `yaml:"watch_rules"`
}

// LoggingConfig configures the categorized file logs.
type LoggingConfig struct {
	Dir    string `yaml:"dir"`
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "veya",
		Version: "1.0.0",

		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			MaxUploadMB: 10,
			WebRoot:     "web",
		},

		Vision: VisionConfig{
			BaseURL: "https://vision.googleapis.com/v1",
			Timeout: "30s",
		},

		Gemini: GeminiConfig{
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			Model:           "gemini-2.5-flash",
			Backend:         "rest",
			Timeout:         "60s",
			MaxOutputTokens: 4096,
			Temperature:     0.1,
		},

		Health: HealthConfig{
			RulesPath:  "",
			WatchRules: false,
		},

		Logging: LoggingConfig{
			Dir:    ".veya/logs",
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// GOOGLE_API_KEY fills both services when the specific vars are unset
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		if c.Vision.APIKey == "" {
			c.Vision.APIKey = key
		}
		if c.Gemini.APIKey == "" {
			c.Gemini.APIKey = key
		}
	}
	if key := os.Getenv("VISION_API_KEY"); key != "" {
		c.Vision.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}

	if host := os.Getenv("VEYA_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("VEYA_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if level := os.Getenv("VEYA_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GetVisionTimeout returns the OCR request timeout as a duration.
func (c *Config) GetVisionTimeout() time.Duration {
	d, err := time.ParseDuration(c.Vision.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetGeminiTimeout returns the vision-model request timeout as a duration.
func (c *Config) GetGeminiTimeout() time.Duration {
	d, err := time.ParseDuration(c.Gemini.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// ValidBackends lists the supported vision-model backends.
var ValidBackends = []string{"rest", "sdk"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("invalid upload cap: %d MB", c.Server.MaxUploadMB)
	}

	validBackend := false
	for _, b := range ValidBackends {
		if c.Gemini.Backend == b {
			validBackend = true
			break
		}
	}
	if !validBackend {
		return fmt.Errorf("invalid gemini backend: %s (valid: %v)", c.Gemini.Backend, ValidBackends)
	}

	if _, err := time.ParseDuration(c.Vision.Timeout); err != nil {
		return fmt.Errorf("invalid vision timeout %q: %w", c.Vision.Timeout, err)
	}
	if _, err := time.ParseDuration(c.Gemini.Timeout); err != nil {
		return fmt.Errorf("invalid gemini timeout %q: %w", c.Gemini.Timeout, err)
	}

	return nil
}

// RequireKeys checks that both cloud API keys are configured.
func (c *Config) RequireKeys() error {
	if c.Vision.APIKey == "" {
		return fmt.Errorf("vision API key not configured (set VISION_API_KEY or GOOGLE_API_KEY)")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini API key not configured (set GEMINI_API_KEY or GOOGLE_API_KEY)")
	}
	return nil
}
