// Command costcache runs the cost-aware LRU cache simulator.
//
// Usage:
//
//	costcache [menu]                              interactive menu
//	costcache serve                               JSON HTTP API
//	costcache replay [-json] [-capacity N] FILE   replay a YAML trace
//
// Configuration is read from the environment and an optional .env file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/costcache/pkg/api"
	"github.com/dmitrymomot/costcache/pkg/cache"
	"github.com/dmitrymomot/costcache/pkg/config"
	"github.com/dmitrymomot/costcache/pkg/httpserver"
	"github.com/dmitrymomot/costcache/pkg/logger"
	"github.com/dmitrymomot/costcache/pkg/requestid"
	"github.com/dmitrymomot/costcache/pkg/simulator"
)

const usage = `Usage:
  costcache [menu]                              interactive menu
  costcache serve                               JSON HTTP API
  costcache replay [-json] [-capacity N] FILE   replay a YAML trace
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "costcache: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	mode := "menu"
	if len(args) > 0 {
		mode, args = args[0], args[1:]
	}

	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	switch mode {
	case "menu":
		log := newLogger(cfg, stderr, slog.LevelWarn)
		return runInteractive(ctx, cfg, stdin, stdout, log)

	case "serve":
		log := newLogger(cfg, stderr, slog.LevelInfo)
		return runServe(ctx, cfg, log)

	case "replay":
		fs := flag.NewFlagSet("replay", flag.ContinueOnError)
		fs.SetOutput(stderr)
		asJSON := fs.Bool("json", false, "print the report as JSON")
		capacity := fs.Int("capacity", 0, "override the trace capacity")
		if err := fs.Parse(args); err != nil {
			return errors.Join(errUsage, err)
		}
		if fs.NArg() != 1 {
			fmt.Fprint(stderr, usage)
			return errUsage
		}

		log := newLogger(cfg, stderr, slog.LevelWarn)
		files, closeFiles, err := openStorage(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeFiles()
		return runReplay(ctx, fs.Arg(0), files, *capacity, *asJSON, stdout, log)

	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil

	default:
		fmt.Fprint(stderr, usage)
		return errUsage
	}
}

// newLogger builds the process logger. quiet is the level used when
// LOG_LEVEL is not set, so the interactive modes keep stdout readable.
func newLogger(cfg Config, w io.Writer, quiet slog.Level) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, "costcache"),
		logger.WithOutput(w),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	} else if quiet > slog.LevelInfo {
		opts = append(opts, logger.WithLevel(quiet))
	}
	return logger.New(opts...)
}

func runInteractive(ctx context.Context, cfg Config, stdin io.Reader, stdout io.Writer, log *slog.Logger) error {
	files, closeFiles, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeFiles()

	p := newPrompter(stdin, stdout)
	capacity, err := p.askCapacity(stdout, cfg.Capacity)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}

	store, err := cache.NewSafeStore(capacity)
	if err != nil {
		return err
	}
	return runMenu(ctx, simulator.New(store, files, log), p, stdout)
}

func runServe(ctx context.Context, cfg Config, log *slog.Logger) error {
	files, closeFiles, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeFiles()

	store, err := cache.NewSafeStore(cfg.Capacity, cache.WithEvictCallback(func(e cache.Entry) {
		log.DebugContext(ctx, "entry evicted", logger.Evicted(e.FileID, e.Cost, e.LastAccess))
	}))
	if err != nil {
		return err
	}
	sim := simulator.New(store, files, log)

	log.InfoContext(ctx, "starting costcache api",
		slog.Int("capacity", cfg.Capacity),
		slog.String("backend", cfg.Backend),
	)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, api.NewRouter(sim, log))
}
