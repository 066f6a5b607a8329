package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/calc-widgets/pkg/constants"
)

func writeServerConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.FormSizeBytes() != constants.DefaultMaxFormSizeBytes {
		t.Fatalf("expected default max form size, got %d", cfg.FormSizeBytes())
	}
	if cfg.Cache.Backend != constants.CacheBackendMemory {
		t.Fatalf("expected memory cache by default, got %q", cfg.Cache.Backend)
	}
	if cfg.RateLimit.Capacity != constants.DefaultRateLimitCapacity || cfg.RateLimit.Window != time.Minute {
		t.Fatalf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeServerConfig(t, `address: 127.0.0.1:9000
maxFormSize: 128K
readTimeout: 5s
rateLimit:
  capacity: 5
  window: 30s
cache:
  backend: redis
  ttl: 2m
  redisAddr: localhost:6379
  redisDB: 2
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.FormSizeBytes() != 128*1024 {
		t.Fatalf("expected max form size override, got %d", cfg.FormSizeBytes())
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("expected read timeout override, got %s", cfg.ReadTimeout)
	}
	if cfg.RateLimit.Capacity != 5 || cfg.RateLimit.Window != 30*time.Second {
		t.Fatalf("unexpected rate limit %+v", cfg.RateLimit)
	}
	settings := cfg.CacheSettings()
	if settings.Backend != "redis" || settings.TTL != 2*time.Minute || settings.RedisAddr != "localhost:6379" || settings.RedisDB != 2 {
		t.Fatalf("unexpected cache settings %+v", settings)
	}
	if settings.MaxEntries != constants.DefaultCacheEntries {
		t.Fatalf("expected default max entries to survive, got %d", settings.MaxEntries)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" || cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CALC_ADDRESS", ":9999")
	t.Setenv("CALC_CACHE_BACKEND", "none")
	t.Setenv("CALC_MAX_FORM_SIZE", "1K")

	cfg, err := LoadConfig(writeServerConfig(t, "address: :7000\ncache:\n  backend: memory\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":9999" {
		t.Fatalf("expected env address, got %s", cfg.Address)
	}
	if cfg.Cache.Backend != "none" {
		t.Fatalf("expected env cache backend, got %s", cfg.Cache.Backend)
	}
	if cfg.FormSizeBytes() != 1024 {
		t.Fatalf("expected env form size, got %d", cfg.FormSizeBytes())
	}
}

func TestLoadConfigRejectsBadCache(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"unknown backend", "cache:\n  backend: memcached\n"},
		{"redis without address", "cache:\n  backend: redis\n"},
		{"bad size", "maxFormSize: 12Q\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeServerConfig(t, tt.contents)); err == nil {
				t.Fatalf("expected error for %q", tt.contents)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"", constants.DefaultMaxFormSizeBytes, false},
		{"512", 512, false},
		{"64K", 64 * 1024, false},
		{"2mb", 2 * 1024 * 1024, false},
		{"KB", 0, true},
		{"10T", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSize(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetFormSizeBytes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetFormSizeBytes(0)
	if cfg.FormSizeBytes() != constants.DefaultMaxFormSizeBytes {
		t.Fatalf("non-positive size should be ignored, got %d", cfg.FormSizeBytes())
	}
	cfg.SetFormSizeBytes(4096)
	if cfg.FormSizeBytes() != 4096 || cfg.MaxFormSize != "4096" {
		t.Fatalf("unexpected size %d / %s", cfg.FormSizeBytes(), cfg.MaxFormSize)
	}
}
