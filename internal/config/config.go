package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	GRPCAddr         string          `mapstructure:"grpc_addr"`
	HTTPAddr         string          `mapstructure:"http_addr"`
	APIToken         string          `mapstructure:"api_token"`
	TaxTableFile     string          `mapstructure:"tax_table_file"` // empty = built-in tables
	StrictValidation bool            `mapstructure:"strict_validation"`
	LogLevel         string          `mapstructure:"log_level"`
	RateLimit        RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig bounds requests per client IP on the HTTP API
type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Window   time.Duration `mapstructure:"window"`
}

const (
	EnvPrefix = "YIELDCOMPARE"

	DefaultGRPCAddr          = ":8080"
	DefaultHTTPAddr          = ":8081"
	DefaultAPIToken          = "dev-token"
	DefaultLogLevel          = "info"
	DefaultRateLimitCapacity = 30
	DefaultRateLimitWindow   = time.Minute
)

// Load reads config from an optional YAML file, then applies YIELDCOMPARE_* environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"grpc_addr":           DefaultGRPCAddr,
		"http_addr":           DefaultHTTPAddr,
		"api_token":           DefaultAPIToken,
		"tax_table_file":      "",
		"strict_validation":   false,
		"log_level":           DefaultLogLevel,
		"rate_limit.capacity": DefaultRateLimitCapacity,
		"rate_limit.window":   DefaultRateLimitWindow,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that all fields hold usable values
func (c *Config) Validate() error {
	if err := validateAddr("grpc_addr", c.GRPCAddr); err != nil {
		return err
	}
	if err := validateAddr("http_addr", c.HTTPAddr); err != nil {
		return err
	}
	if c.GRPCAddr == c.HTTPAddr {
		return errors.New("grpc_addr and http_addr must differ")
	}
	if c.APIToken == "" {
		return errors.New("api_token is required")
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.RateLimit.Capacity <= 0 {
		return errors.New("rate_limit.capacity must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("rate_limit.window must be positive")
	}
	return nil
}

func validateAddr(key, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", key)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, addr, err)
	}
	return nil
}
