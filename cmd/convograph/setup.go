package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dd0wney/convograph/pkg/config"
	"github.com/dd0wney/convograph/pkg/explorer"
	"github.com/dd0wney/convograph/pkg/health"
	"github.com/dd0wney/convograph/pkg/logging"
	"github.com/dd0wney/convograph/pkg/metrics"
	"github.com/dd0wney/convograph/pkg/render"
	"github.com/dd0wney/convograph/pkg/source"
)

type globalFlags struct {
	configPath  string
	sourceKind  string
	url         string
	file        string
	logLevel    string
	metricsAddr string
	publishAddr string
}

// loadConfig reads the config file and applies flag overrides on top
func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}

	if flags.url != "" {
		cfg.Source.Kind = config.SourceHTTP
		cfg.Source.URL = flags.url
	}
	if flags.file != "" {
		cfg.Source.Kind = config.SourceFile
		cfg.Source.Path = flags.file
	}
	if flags.sourceKind != "" {
		cfg.Source.Kind = flags.sourceKind
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.metricsAddr != "" {
		cfg.Metrics.Addr = flags.metricsAddr
	}
	if flags.publishAddr != "" {
		cfg.Publish.Addr = flags.publishAddr
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the logger described by cfg. When no file is configured
// output goes to fallback. The returned closer flushes and closes the file.
func newLogger(cfg config.LoggingConfig, fallback io.Writer) (*logging.ZapLogger, func(), error) {
	w := fallback
	closeFn := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	level := logging.ParseLevel(cfg.Level)
	var logger *logging.ZapLogger
	if cfg.Format == "console" {
		logger = logging.NewConsoleLogger(w, level)
	} else {
		logger = logging.NewJSONLogger(w, level)
	}
	logging.SetDefaultLogger(logger)

	return logger, func() {
		_ = logger.Sync()
		closeFn()
	}, nil
}

// sourceCheckTTL bounds how often /healthz refetches the graph
const sourceCheckTTL = 30 * time.Second

// newChecker reports the session phase for readiness and additionally
// probes the source for health
func newChecker(ex *explorer.Explorer, src source.Source, timeout time.Duration) *health.Checker {
	phase := func() string { return ex.Phase().String() }
	session := health.PhaseCheck("explorer", phase, explorer.StateReady.String(), explorer.StateLoading.String())

	c := health.NewChecker()
	c.RegisterReadiness("explorer", session)
	c.Register("explorer", session)
	c.Register("source", health.CachedCheck(health.ProbeCheck(source.Kind(src), timeout, func(ctx context.Context) error {
		_, err := src.Fetch(ctx)
		return err
	}), sourceCheckTTL))
	return c
}

// startMetrics serves the registry and health endpoints in the background
// when an address is set
func startMetrics(ctx context.Context, cfg config.MetricsConfig, reg *metrics.Registry, checker *health.Checker, logger logging.Logger) {
	if cfg.Addr == "" {
		return
	}
	routes := []metrics.Route{
		{Pattern: "/healthz", Handler: checker.Handler()},
		{Pattern: "/readyz", Handler: checker.ReadinessHandler()},
	}
	go func() {
		logger.Info("serving metrics", logging.String("addr", cfg.Addr))
		if err := reg.Serve(ctx, cfg.Addr, 10*time.Second, routes...); err != nil {
			logger.Error("metrics server failed", logging.Error(err))
		}
	}()
}

// newExplorer wires an explorer with metrics and an optional publisher
func newExplorer(cfg config.Config, width float64, reg *metrics.Registry, logger logging.Logger) (*explorer.Explorer, func(), error) {
	opts := explorer.Options{
		Layout:  cfg.SimulationConfig(width),
		Logger:  logger,
		Metrics: reg,
	}

	closeFn := func() {}
	if cfg.Publish.Addr != "" {
		pub, err := render.NewPublisher(cfg.Publish.Addr)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("publishing frames", logging.String("addr", pub.Addr()))
		opts.Publisher = pub
		closeFn = func() { _ = pub.Close() }
	}

	return explorer.New(opts), closeFn, nil
}
