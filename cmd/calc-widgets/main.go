package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/iwvelando/calc-widgets/internal/cache"
	"github.com/iwvelando/calc-widgets/internal/calculators"
	"github.com/iwvelando/calc-widgets/internal/config"
	"github.com/iwvelando/calc-widgets/internal/server"
	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/output"
	"github.com/iwvelando/calc-widgets/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		cfg.OutputPaths = []string{loggingConfig.OutputFile}
		cfg.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return cfg.Build()
}

// mergeLogging prefers the server file's logging section when it sets anything.
func mergeLogging(app, srv config.LoggingConfig) config.LoggingConfig {
	if srv.Level == "" && srv.Format == "" && srv.OutputFile == "" {
		return app
	}
	return srv
}

func fatalJSON(msg string, err error) {
	fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": %q, \"error\": %q}\n", msg, err.Error())
	os.Exit(1)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] [serve | list | compute <calculator> name=value...]\n\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	conf, err := config.LoadOrDefault(*configLocation)
	if err != nil {
		fatalJSON(fmt.Sprintf("failed to load configuration at %s", *configLocation), err)
	}

	command := "serve"
	args := flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "serve":
		srvCfg, err := server.LoadConfig(*serverConfigLocation)
		if err != nil {
			fatalJSON(fmt.Sprintf("failed to load server configuration at %s", *serverConfigLocation), err)
		}
		logger, err := initializeLogger(mergeLogging(conf.Logging, srvCfg.Logging), *logLevel)
		if err != nil {
			fatalJSON("failed to initialize logger", err)
		}
		defer func() {
			_ = logger.Sync()
		}()
		warnConfiguration(logger, conf)
		if err := serve(logger, conf, srvCfg); err != nil {
			logger.Fatal("server stopped with error",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}

	case "list", "compute":
		logger, err := initializeLogger(conf.Logging, *logLevel)
		if err != nil {
			fatalJSON("failed to initialize logger", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		registry, err := calculators.NewRegistry(nil)
		if err != nil {
			logger.Fatal("failed to build calculator registry",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}

		if command == "list" {
			for _, group := range registry.Categories() {
				fmt.Printf("%s\n", group.Category)
				for _, w := range group.Widgets {
					fmt.Printf("  %-24s %s\n", w.Info().Slug, w.Info().Title)
				}
			}
			return
		}

		outputFormat := conf.Output.Format
		if *outputFormatFlag != "" {
			outputFormat = *outputFormatFlag
		}
		if outputFormat == "" {
			outputFormat = constants.OutputFormatPretty
		}
		if err := validation.ValidateOutputFormat(outputFormat); err != nil {
			logger.Fatal(err.Error(),
				zap.String("op", "main"),
			)
		}

		if err := compute(conf, registry, outputFormat, args); err != nil {
			if inputErr, ok := validation.AsInputError(err); ok {
				fmt.Fprintf(os.Stderr, "%s\n", inputErr.Message)
				os.Exit(2)
			}
			logger.Fatal("failed to compute result",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}

	default:
		usage()
		os.Exit(2)
	}
}

func warnConfiguration(logger *zap.Logger, conf *config.Configuration) {
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
}

// compute evaluates one calculator from name=value arguments and prints the
// result to stdout.
func compute(conf *config.Configuration, registry *widget.Registry, outputFormat string, args []string) error {
	if len(args) == 0 {
		return errors.New("compute needs a calculator name; run the list command to see them")
	}
	w, ok := registry.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown calculator %q", args[0])
	}

	values := make(map[string]string, len(args)-1)
	for _, arg := range args[1:] {
		name, value, found := strings.Cut(arg, "=")
		if !found || name == "" {
			return fmt.Errorf("expected name=value, got %q", arg)
		}
		values[name] = value
	}

	result, err := w.Evaluate(conf.Formatter(), widget.FormOf(values))
	if err != nil {
		return err
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		return output.CsvFormat(os.Stdout, result)
	default:
		return output.PrettyFormat(os.Stdout, w.Info().Title, result)
	}
}

func serve(logger *zap.Logger, conf *config.Configuration, srvCfg *server.Config) error {
	registry, err := calculators.NewRegistry(nil)
	if err != nil {
		return err
	}

	resultCache, err := cache.New(srvCfg.CacheSettings())
	if err != nil {
		return fmt.Errorf("failed to create result cache: %w", err)
	}
	defer func() {
		if err := resultCache.Close(); err != nil {
			logger.Warn("failed to close result cache", zap.String("op", "main.serve"), zap.Error(err))
		}
	}()

	var limiter *server.RateLimiter
	if srvCfg.RateLimit.Capacity > 0 {
		limiter = server.NewRateLimiter(srvCfg.RateLimit.Capacity, srvCfg.RateLimit.Window)
		defer limiter.Stop()
	}

	handler, err := server.NewHandler(server.Options{
		Logger:       logger,
		Registry:     registry,
		Formatter:    conf.Formatter(),
		SiteName:     conf.SiteName,
		SiteURL:      conf.SiteURL,
		ShareMessage: conf.ShareMessage,
		MaxFormSize:  srvCfg.FormSizeBytes(),
		Cache:        resultCache,
		Limiter:      limiter,
		Version:      version,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         srvCfg.Address,
		Handler:      handler,
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		IdleTimeout:  srvCfg.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("op", "main.serve"),
			zap.String("address", srvCfg.Address),
			zap.Int("calculators", registry.Len()),
			zap.String("cache", srvCfg.Cache.Backend),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("op", "main.serve"), zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server stopped", zap.String("op", "main.serve"))
	return nil
}
