// Command tracker looks up politician trades, insider transactions and 13F
// institutional holdings.
//
// Usage:
//
//	tracker lookup -kind holdings -id 0001067983 [-period 2024-03-31] [-json]
//	tracker links -kind insiders -id tsla
//	tracker serve [-config configs/tracker.yaml]
//	tracker version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/rickgao/disclosure-data/internal/api"
	"github.com/rickgao/disclosure-data/internal/config"
	"github.com/rickgao/disclosure-data/internal/model"
	"github.com/rickgao/disclosure-data/internal/version"
)

// errReported marks a failure already written to the user.
var errReported = errors.New("reported")

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "lookup":
		err = runLookup(os.Args[2:], os.Stdout)
	case "links":
		err = runLinks(os.Args[2:], os.Stdout)
	case "serve":
		err = runServe(os.Args[2:])
	case "version":
		fmt.Println(version.String())
	case "help", "-h", "-help", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "tracker: unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "tracker:", err)
		}
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: tracker <command> [flags]

commands:
  lookup    fetch and print one dataset for an identifier
  links     print deep links to third-party disclosure sites
  serve     run the HTTP API
  version   print build information

datasets (-kind): politicians (name), insiders (ticker), holdings (cik)
`)
}

// loadConfig reads path, or builds a default config from the environment
// when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
		return cfg, nil
	}
	return config.LoadAndValidate(path)
}

func newLogger(w io.Writer, cfg config.LoggingConfig, debug bool) *slog.Logger {
	var level slog.LevelVar
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.Set(slog.LevelInfo)
	}
	if debug {
		level.Set(slog.LevelDebug)
	}

	opts := &slog.HandlerOptions{Level: &level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newFetcher builds the API client, wrapped in retries when configured.
func newFetcher(cfg *config.Config, logger *slog.Logger) api.Fetcher {
	client := api.NewClient(
		api.Endpoints{Quiver: cfg.Quiver.BaseURL, SECAPI: cfg.SECAPI.BaseURL},
		api.WithLogger(logger),
		api.WithTimeout(cfg.HTTP.Timeout),
		api.WithRateLimit(model.Quiver, rate.Limit(cfg.Quiver.RateLimit), cfg.Quiver.Burst),
		api.WithRateLimit(model.SECAPI, rate.Limit(cfg.SECAPI.RateLimit), cfg.SECAPI.Burst),
	)
	if cfg.HTTP.MaxRetries > 0 {
		return api.NewRetryFetcher(client, cfg.HTTP.MaxRetries, cfg.HTTP.RetryBackoff, logger)
	}
	return client
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
