package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/samvad-hq/pkgnews/internal/config"
	"github.com/samvad-hq/pkgnews/internal/logger"
)

const usage = `Usage: pkgnews <command> [flags] [args...]

Commands:
  news       print announcements from the news feed
  comments   print the comments on an AUR package
  split      sort package names into repository and AUR lists

Run "pkgnews <command> --help" for command flags.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "pkgnews: %v\n", err)
		os.Exit(1)
	}
}

type command func(ctx context.Context, env *env, args []string) error

// env is what every subcommand shares.
type env struct {
	cfg    *config.Config
	log    logger.Logger
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}

	commands := map[string]command{
		"news":     runNews,
		"comments": runComments,
		"split":    runSplit,
	}
	name := args[0]
	if name == "-h" || name == "--help" || name == "help" {
		fmt.Fprint(stdout, usage)
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", name)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.InitWriter(cfg, stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	return cmd(ctx, &env{cfg: cfg, log: log, stdout: stdout, stderr: stderr}, args[1:])
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SetInterspersed(true)
	return flags
}
