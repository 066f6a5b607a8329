// Package config defines the application configuration and loads it from a
// YAML file with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Configuration holds all configuration for calc-widgets.
type Configuration struct {
	SiteName       string        `yaml:"siteName,omitempty"`
	SiteURL        string        `yaml:"siteURL,omitempty"`
	Locale         string        `yaml:"locale,omitempty"`
	CurrencySymbol string        `yaml:"currencySymbol,omitempty"`
	ShareMessage   string        `yaml:"shareMessage,omitempty"`
	Logging        LoggingConfig `yaml:"logging,omitempty"`
	Output         OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Configuration {
	return &Configuration{
		SiteName:       constants.DefaultSiteName,
		Locale:         constants.DefaultLocale,
		CurrencySymbol: constants.DefaultCurrencySymbol,
		ShareMessage:   constants.DefaultShareMessage,
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with CALC_ override
// top-level keys, e.g. CALC_LOCALE.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("CALC")
	v.AutomaticEnv()

	defaults := Defaults()
	v.SetDefault("siteName", defaults.SiteName)
	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("currencySymbol", defaults.CurrencySymbol)
	v.SetDefault("shareMessage", defaults.ShareMessage)
	v.SetDefault("siteURL", "")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// LoadOrDefault behaves like LoadConfiguration but returns Defaults when the
// file does not exist.
func LoadOrDefault(configPath string) (*Configuration, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return LoadConfiguration(configPath)
}

// Formatter returns the number formatter for the configured locale.
func (c *Configuration) Formatter() *format.Formatter {
	return format.New(c.Locale, c.CurrencySymbol)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if _, err := language.Parse(c.Locale); err != nil {
		warnings = append(warnings, fmt.Sprintf("locale %q is not a valid language tag; falling back to English number formatting", c.Locale))
	}
	if strings.TrimSpace(c.CurrencySymbol) == "" {
		warnings = append(warnings, "currencySymbol is empty; currency values will be shown without a symbol")
	}
	if c.SiteURL == "" {
		warnings = append(warnings, "siteURL is not set; shared links will not include the calculator page")
	} else if u, err := url.Parse(c.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
		warnings = append(warnings, fmt.Sprintf("siteURL %q is not an absolute URL", c.SiteURL))
	}
	return warnings
}
