package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/caarlos0/env/v11"
	"github.com/iwvelando/calc-widgets/internal/cache"
	"github.com/iwvelando/calc-widgets/internal/config"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address      string               `yaml:"address" env:"CALC_ADDRESS"`
	MaxFormSize  string               `yaml:"maxFormSize" env:"CALC_MAX_FORM_SIZE"`
	ReadTimeout  time.Duration        `yaml:"readTimeout" env:"CALC_READ_TIMEOUT"`
	WriteTimeout time.Duration        `yaml:"writeTimeout" env:"CALC_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration        `yaml:"idleTimeout" env:"CALC_IDLE_TIMEOUT"`
	RateLimit    RateLimitConfig      `yaml:"rateLimit"`
	Cache        CacheConfig          `yaml:"cache"`
	Logging      config.LoggingConfig `yaml:"logging"`
	formSize     int64
}

// RateLimitConfig sizes the per-client token bucket on evaluation routes.
// A capacity of zero or less disables limiting.
type RateLimitConfig struct {
	Capacity int           `yaml:"capacity" env:"CALC_RATE_LIMIT_CAPACITY"`
	Window   time.Duration `yaml:"window" env:"CALC_RATE_LIMIT_WINDOW"`
}

// CacheConfig selects the rendered result cache backend.
type CacheConfig struct {
	Backend       string        `yaml:"backend" env:"CALC_CACHE_BACKEND"`
	TTL           time.Duration `yaml:"ttl" env:"CALC_CACHE_TTL"`
	MaxEntries    int           `yaml:"maxEntries" env:"CALC_CACHE_MAX_ENTRIES"`
	RedisAddr     string        `yaml:"redisAddr" env:"CALC_REDIS_ADDR"`
	RedisPassword string        `yaml:"redisPassword" env:"CALC_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redisDB" env:"CALC_REDIS_DB"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:      constants.DefaultServerAddress,
		MaxFormSize:  fmt.Sprintf("%d", constants.DefaultMaxFormSizeBytes),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		RateLimit: RateLimitConfig{
			Capacity: constants.DefaultRateLimitCapacity,
			Window:   time.Minute,
		},
		Cache: CacheConfig{
			Backend:    constants.CacheBackendMemory,
			TTL:        constants.DefaultCacheTTLSeconds * time.Second,
			MaxEntries: constants.DefaultCacheEntries,
		},
		formSize: constants.DefaultMaxFormSizeBytes,
	}
}

// LoadConfig loads the server configuration from YAML and then applies
// CALC_* environment overrides. If the file does not exist, defaults are used
// without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv fills target from tagged environment variables, leaving fields
// whose variable is unset untouched.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FormSizeBytes returns the configured form size limit in bytes.
func (c *Config) FormSizeBytes() int64 {
	return c.formSize
}

// SetFormSizeBytes overrides the configured form size limit.
func (c *Config) SetFormSizeBytes(size int64) {
	if size > 0 {
		c.formSize = size
		c.MaxFormSize = fmt.Sprintf("%d", size)
	}
}

// CacheSettings converts the cache section for cache.New.
func (c *Config) CacheSettings() cache.Config {
	return cache.Config{
		Backend:       c.Cache.Backend,
		TTL:           c.Cache.TTL,
		MaxEntries:    c.Cache.MaxEntries,
		RedisAddr:     c.Cache.RedisAddr,
		RedisPassword: c.Cache.RedisPassword,
		RedisDB:       c.Cache.RedisDB,
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = constants.DefaultCacheTTLSeconds * time.Second
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = constants.DefaultCacheEntries
	}

	switch strings.ToLower(strings.TrimSpace(c.Cache.Backend)) {
	case "", constants.CacheBackendNone, constants.CacheBackendMemory:
	case constants.CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache backend %q requires redisAddr", c.Cache.Backend)
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	sizeStr := strings.TrimSpace(c.MaxFormSize)
	if sizeStr == "" {
		c.formSize = constants.DefaultMaxFormSizeBytes
		c.MaxFormSize = fmt.Sprintf("%d", constants.DefaultMaxFormSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxFormSizeBytes
	}
	c.formSize = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxFormSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
