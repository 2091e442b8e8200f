package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Recognition RecognitionConfig `yaml:"recognition"`
	Form        FormConfig        `yaml:"form"`
	LogLevel    string            `yaml:"log_level"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string `yaml:"port"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// RecognitionConfig selects and tunes the recognition backend
type RecognitionConfig struct {
	Provider    string        `yaml:"provider"` // mock, gemini, openai, ollama
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	MockLatency time.Duration `yaml:"mock_latency"`
	Timeout     time.Duration `yaml:"timeout"`
}

// FormConfig holds save-flow settings
type FormConfig struct {
	SaveResetDelay time.Duration `yaml:"save_reset_delay"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8888",
			MaxUploadBytes: 10 * 1024 * 1024,
		},
		Recognition: RecognitionConfig{
			Provider:    "mock",
			MockLatency: 1500 * time.Millisecond,
			Timeout:     60 * time.Second,
		},
		Form: FormConfig{
			SaveResetDelay: 3 * time.Second,
		},
		LogLevel: "info",
	}
}

// Load reads an optional YAML file on top of the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("IDCAPTURE_PORT", c.Server.Port)
	c.Server.MaxUploadBytes = getEnvAsInt64("IDCAPTURE_MAX_UPLOAD_BYTES", c.Server.MaxUploadBytes)
	c.Recognition.Provider = getEnv("RECOGNITION_PROVIDER", c.Recognition.Provider)
	c.Recognition.Model = getEnv("RECOGNITION_MODEL", c.Recognition.Model)
	c.Recognition.MockLatency = getEnvAsDuration("RECOGNITION_MOCK_LATENCY", c.Recognition.MockLatency)
	c.Recognition.Timeout = getEnvAsDuration("RECOGNITION_TIMEOUT", c.Recognition.Timeout)
	c.Form.SaveResetDelay = getEnvAsDuration("SAVE_RESET_DELAY", c.Form.SaveResetDelay)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	switch c.Recognition.Provider {
	case "mock", "gemini", "openai", "ollama":
	default:
		return fmt.Errorf("unsupported recognition provider: %s", c.Recognition.Provider)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Recognition.MockLatency < 0 || c.Form.SaveResetDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}

// SlogLevel maps the configured level name onto slog
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
