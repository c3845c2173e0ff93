package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ipoalert/internal/collector"
	"ipoalert/internal/config"
	"ipoalert/internal/notifier"
	"ipoalert/internal/scheduler"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config validation", "error", err)
		os.Exit(1)
	}

	// Init logging
	logger, cleanup := config.SetupLogger(cfg.Log.File, config.ParseLevel(cfg.Log.Level))
	defer cleanup()
	slog.SetDefault(logger)
	slog.Info("ipoalert starting")

	// Init fetcher and mailer
	fetcher := collector.NewFinnhubFetcher(cfg)
	slog.Info("data source", "name", fetcher.Name())
	mailer := notifier.NewSMTPMailer(cfg)

	// Init scheduler
	job := scheduler.NewJob(cfg, fetcher, mailer)
	sched, err := scheduler.New(cfg, job.Run)
	if err != nil {
		slog.Error("init scheduler", "error", err)
		os.Exit(1)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown signal received, stopping")
		cancel()
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		slog.Info("RUN_ON_START enabled, executing job now")
		go sched.RunNow(ctx)
	}

	sched.Run(ctx)
	slog.Info("ipoalert stopped")
}
