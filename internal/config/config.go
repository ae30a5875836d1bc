package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/garagepay/paytrack/internal/detect"
	"github.com/garagepay/paytrack/internal/matcher"
	"github.com/garagepay/paytrack/internal/normalize"
	"github.com/garagepay/paytrack/internal/status"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "paytrack.yaml"

// Environment overrides.
const (
	EnvPort     = "PAYTRACK_PORT"
	EnvLogLevel = "PAYTRACK_LOG_LEVEL"
)

// Config represents the top-level paytrack.yaml configuration.
type Config struct {
	Matching  MatchingConfig  `yaml:"matching"`
	Status    StatusConfig    `yaml:"status"`
	Rent      RentConfig      `yaml:"rent"`
	Detection DetectionConfig `yaml:"detection"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MatchingConfig controls how payments are paired with obligations.
type MatchingConfig struct {
	ToleranceDays  int  `yaml:"tolerance_days"`
	ConsumeOnMatch bool `yaml:"consume_on_match"`
	Workers        int  `yaml:"workers"`
}

// StatusConfig controls status classification.
type StatusConfig struct {
	GraceDays int `yaml:"grace_days"`
}

// RentConfig controls rental schedule normalization.
type RentConfig struct {
	TenantPlaceholder string `yaml:"tenant_placeholder"`
}

// DetectionConfig tunes column detection.
type DetectionConfig struct {
	BankSampleRows int             `yaml:"bank_sample_rows"`
	Keywords       detect.Keywords `yaml:"keywords,omitempty"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	StaticDir      string   `yaml:"static_dir,omitempty"`
	MaxUploadMB    int      `yaml:"max_upload_mb"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, auto
}

// MatcherConfig converts the matching section for the matcher package.
func (c *Config) MatcherConfig() matcher.Config {
	return matcher.Config{
		ToleranceDays:  c.Matching.ToleranceDays,
		ConsumeOnMatch: c.Matching.ConsumeOnMatch,
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Matching.ToleranceDays < 0 {
		errs = append(errs, fmt.Errorf("matching.tolerance_days must be >= 0, got %d", c.Matching.ToleranceDays))
	}
	if c.Matching.Workers < 0 {
		errs = append(errs, fmt.Errorf("matching.workers must be >= 0, got %d", c.Matching.Workers))
	}
	if c.Status.GraceDays < 0 {
		errs = append(errs, fmt.Errorf("status.grace_days must be >= 0, got %d", c.Status.GraceDays))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	return errors.Join(errs...)
}

// Load reads a paytrack.yaml file from disk. ${VAR} references are expanded
// from the environment and fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default with
// environment overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cfg, err
}

// LoadDotEnv loads variables from .env files that exist; missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvPort, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard matching rules.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			ToleranceDays: matcher.DefaultConfig().ToleranceDays,
			Workers:       1,
		},
		Status: StatusConfig{
			GraceDays: status.DefaultGraceDays,
		},
		Rent: RentConfig{
			TenantPlaceholder: normalize.DefaultTenantName,
		},
		Detection: DetectionConfig{
			BankSampleRows: detect.DefaultSampleRows,
		},
		Server: ServerConfig{
			Port:           8000,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			MaxUploadMB:    32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}
