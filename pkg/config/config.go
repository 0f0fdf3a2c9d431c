package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"UsageCast/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Log         struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stderr" validate:"required"`
	} `yaml:"log"`
	Data struct {
		TrainPath string `yaml:"train_path" default:"data/train.csv" validate:"required"`
		TestPath  string `yaml:"test_path" default:"data/test.csv" validate:"required"`
		RawPath   string `yaml:"raw_path" default:"data/raw.csv" validate:"required"`
		DailyPath string `yaml:"daily_path" default:"data/daily.csv" validate:"required"`
		Location  string `yaml:"location" default:"UTC"`
	} `yaml:"data"`
	Forecast struct {
		Horizon int `yaml:"horizon" default:"11" validate:"gte=1,lte=10000"`
		// Seasonal settings are accepted for compatibility and never reach the model.
		Seasonal       bool `yaml:"seasonal"`
		SeasonalPeriod int  `yaml:"seasonal_period" validate:"gte=0"`
	} `yaml:"forecast"`
	Model struct {
		Backend    string        `yaml:"backend" default:"arima" validate:"oneof=arima http"`
		ServiceURL string        `yaml:"service_url" validate:"omitempty,url"`
		Timeout    time.Duration `yaml:"timeout" default:"10s" validate:"gt=0"`
	} `yaml:"model"`
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		BodyLimit       string        `yaml:"body_limit" default:"8M"`
		// per-client token bucket on /api routes; rate 0 disables it
		RateLimitRPS   float64 `yaml:"rate_limit_rps" default:"20" validate:"gte=0"`
		RateLimitBurst float64 `yaml:"rate_limit_burst" default:"40" validate:"gte=0"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Default returns a validated configuration built from defaults only.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides fields from environment lookups.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("TRAIN_PATH"); v != "" {
		c.Data.TrainPath = v
	}
	if v := getenv("TEST_PATH"); v != "" {
		c.Data.TestPath = v
	}
	if v := getenv("RAW_PATH"); v != "" {
		c.Data.RawPath = v
	}
	if v := getenv("DAILY_PATH"); v != "" {
		c.Data.DailyPath = v
	}
	if v := getenv("HORIZON"); v != "" {
		c.Forecast.Horizon = util.ParseIntDefault(v, c.Forecast.Horizon)
	}
	if v := getenv("MODEL_BACKEND"); v != "" {
		c.Model.Backend = strings.ToLower(v)
	}
	if v := getenv("MODEL_SERVICE_URL"); v != "" {
		c.Model.ServiceURL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Model.Backend == "http" && c.Model.ServiceURL == "" {
		return fmt.Errorf("model.service_url is required when model.backend is 'http'")
	}
	if _, err := util.LoadLocation(c.Data.Location); err != nil {
		return fmt.Errorf("data.location: %w", err)
	}
	return nil
}

// Location returns the configured location for zone-less timestamps.
func (c *Config) Location() *time.Location {
	loc, err := util.LoadLocation(c.Data.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}
