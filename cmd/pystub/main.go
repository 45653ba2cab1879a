// # cmd/pystub/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pystub/internal/app"
	"pystub/internal/config"
	"pystub/internal/shared/observability"
)

var (
	configPath = flag.String("config", "./pystub.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run single scan and exit")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "0.3.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("pystub v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("no config file, using defaults", "path", *configPath)
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.ScanPaths = []string{flag.Arg(0)}
	}

	ctx := context.Background()

	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer shutdown(ctx)
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.InitialScan(ctx); err != nil {
		slog.Error("initial scan failed", "error", err)
		os.Exit(1)
	}

	if err := a.GenerateOutputs(); err != nil {
		slog.Error("failed to generate outputs", "error", err)
		os.Exit(1)
	}

	printSummary(a)

	if diags := a.Diagnostics(); len(diags) > 0 && *once {
		os.Exit(1)
	}

	if *once {
		return
	}

	if cfg.Observability.ListenAddr != "" {
		srv := observability.NewServer(cfg.Observability.ListenAddr, a.Health)
		if err := srv.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
		defer srv.Stop(ctx)
	}

	if err := a.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	slog.Info("watching for changes", "paths", cfg.ScanPaths)
	select {}
}

func printSummary(a *app.App) {
	entries := a.Registry.Snapshot()
	fmt.Printf("catalog: %d descriptors -> %s\n", len(entries), a.Config.Output.Catalog)

	diags := a.Diagnostics()
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d declaration(s) failed to compile:\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", d.Path, d.Err)
	}
}
