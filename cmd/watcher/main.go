package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/samvad-hq/pkgnews/internal/app"
	"github.com/samvad-hq/pkgnews/internal/config"
	"github.com/samvad-hq/pkgnews/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "watcher start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("watcher", pflag.ExitOnError)
	once := flags.Bool("once", false, "Run a single poll and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("watcher starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := app.NewWatcher(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize watcher", "error", err.Error())
		return err
	}

	if *once {
		if err := w.RunOnce(ctx); err != nil {
			return fmt.Errorf("watcher poll: %w", err)
		}
		return nil
	}

	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("watcher run: %w", err)
	}
	return nil
}
