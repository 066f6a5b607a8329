package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example config",
			configPath: filepath.Join("..", "..", "config.yaml.example"),
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationValues(t *testing.T) {
	path := writeConfig(t, `siteURL: https://calc.example.com
locale: en-GB
currencySymbol: "£"
logging:
  level: debug
  format: console
output:
  format: csv
`)
	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.SiteURL != "https://calc.example.com" || conf.Locale != "en-GB" || conf.CurrencySymbol != "£" {
		t.Errorf("unexpected configuration %+v", conf)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("unexpected output format %q", conf.Output.Format)
	}
	if conf.ShareMessage == "" || conf.SiteName == "" {
		t.Errorf("expected defaults for unset keys, got %+v", conf)
	}
	if !strings.HasPrefix(conf.Formatter().Currency(1), "£ ") {
		t.Errorf("formatter ignored the currency symbol: %q", conf.Formatter().Currency(1))
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("CALC_LOCALE", "en-US")
	conf, err := LoadConfiguration(writeConfig(t, "locale: en-ZA\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Locale != "en-US" {
		t.Errorf("expected env override, got %s", conf.Locale)
	}
}

func TestLoadOrDefault(t *testing.T) {
	conf, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if conf.Locale != "en-ZA" || conf.CurrencySymbol != "R" {
		t.Errorf("unexpected defaults %+v", conf)
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		conf     Configuration
		warnings int
	}{
		{"Valid", Configuration{Locale: "en-ZA", CurrencySymbol: "R", SiteURL: "https://calc.example.com"}, 0},
		{"Missing site URL", Configuration{Locale: "en-ZA", CurrencySymbol: "R"}, 1},
		{"Relative site URL", Configuration{Locale: "en-ZA", CurrencySymbol: "R", SiteURL: "/calc"}, 1},
		{"Bad locale and no symbol", Configuration{Locale: "!!", SiteURL: "https://calc.example.com"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.ValidateConfiguration(); len(got) != tt.warnings {
				t.Errorf("ValidateConfiguration() = %v, expected %d warnings", got, tt.warnings)
			}
		})
	}
}
