package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/httpclient"
	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/metrics"
	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/storage"
	"github.com/AchilleasB/hostel-booking/api-client/internal/config"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/services"
	"github.com/AchilleasB/hostel-booking/api-client/internal/logging"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("hostelctl", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	baseURL := fs.String("base-url", cfg.BaseURL, "hostel API base URL")
	output := fs.String("output", "json", "output format: json or yaml")
	dumpMetrics := fs.Bool("metrics", false, "write prometheus metrics to stderr on exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: hostelctl [flags] <command> [args]\n\ncommands:\n%s\nflags:\n", commandHelp())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logger, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "hostelctl: %v\n", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	backend, err := storage.Open(ctx, cfg, m)
	if err != nil {
		logger.Error("failed to open session storage", "store", cfg.SessionStore, "err", err)
		return exitFailure
	}
	defer backend.Close()
	logger.Debug("session storage ready", "store", backend.Name)

	sessions := services.NewSessionStore(backend, logger)
	executor := httpclient.NewExecutor(httpclient.Config{
		BaseURL: *baseURL,
		Metrics: m,
		Logger:  logger,
	}, sessions)
	client := services.NewHostelClient(executor, sessions,
		services.WithLanding(cfg.Landing),
		services.WithLogger(logger),
	)

	app := &cli{
		client:   client,
		store:    backend,
		executor: executor,
		format:   *output,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	code := app.run(ctx, fs.Args())

	if *dumpMetrics {
		if err := writeMetrics(os.Stderr, registry); err != nil {
			logger.Warn("failed to write metrics", "err", err)
		}
	}
	return code
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

