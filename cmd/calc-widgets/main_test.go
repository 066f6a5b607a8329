package main

import (
	"path/filepath"
	"testing"

	"github.com/iwvelando/calc-widgets/internal/calculators"
	"github.com/iwvelando/calc-widgets/internal/config"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		logging  config.LoggingConfig
		override string
		wantErr  bool
	}{
		{"defaults", config.LoggingConfig{}, "", false},
		{"console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"bad level", config.LoggingConfig{Level: "loud"}, "", true},
		{"bad format", config.LoggingConfig{Format: "xml"}, "", true},
		{"output file", config.LoggingConfig{OutputFile: filepath.Join(t.TempDir(), "logs", "calc.log")}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.logging, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			_ = logger.Sync()
		})
	}
}

func TestMergeLogging(t *testing.T) {
	app := config.LoggingConfig{Level: "info"}
	if got := mergeLogging(app, config.LoggingConfig{}); got != app {
		t.Errorf("expected app logging, got %+v", got)
	}
	srv := config.LoggingConfig{Format: "console"}
	if got := mergeLogging(app, srv); got != srv {
		t.Errorf("expected server logging, got %+v", got)
	}
}

func TestComputeArguments(t *testing.T) {
	registry, err := calculators.NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	conf := config.Defaults()

	tests := []struct {
		name       string
		args       []string
		inputError bool
	}{
		{"no calculator", nil, false},
		{"unknown calculator", []string{"warp-drive"}, false},
		{"malformed argument", []string{"square-root", "16"}, false},
		{"invalid input", []string{"square-root", "number=-1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compute(conf, registry, constants.OutputFormatPretty, tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if _, ok := validation.AsInputError(err); ok != tt.inputError {
				t.Fatalf("input error = %v, want %v (%v)", ok, tt.inputError, err)
			}
		})
	}

	if err := compute(conf, registry, constants.OutputFormatCSV, []string{"square-root", "number=16"}); err != nil {
		t.Fatalf("compute() error = %v", err)
	}
}
