package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/fundestpuente/agromind-mcp/internal/cache"
	"github.com/fundestpuente/agromind-mcp/internal/catalog"
	"github.com/fundestpuente/agromind-mcp/internal/config"
	"github.com/fundestpuente/agromind-mcp/internal/fetch"
	"github.com/fundestpuente/agromind-mcp/internal/openfarm"
	"github.com/fundestpuente/agromind-mcp/internal/paths"
	"github.com/fundestpuente/agromind-mcp/internal/server"
	"github.com/fundestpuente/agromind-mcp/internal/tools"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "agromind-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("agromind-mcp", pflag.ContinueOnError)
	showVersion := flags.BoolP("version", "v", false, "Print version information")
	showHelp := flags.BoolP("help", "h", false, "Print this help message")
	config.RegisterFlags(flags)
	flags.Usage = func() { printUsage(flags) }

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("agromind-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return nil
	}
	if *showHelp {
		printUsage(flags)
		return nil
	}

	cfg, err := config.Load(config.ConfigPath(flags, os.Getenv), os.Getenv)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(flags); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Logging goes to stderr (stdout is for MCP protocol)
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("starting agromind-mcp", "version", Version, "built", BuildTime, "commit", GitCommit)

	cat, err := catalog.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading reference data: %w", err)
	}

	var lookup tools.CropLookup
	if cfg.Lookup.Disabled {
		logger.Info("external crop lookup disabled")
	} else {
		cacheFile := cfg.ResolveCacheFile(func(err error) {
			logger.Warn("cache directory unavailable, using home directory", "error", err)
		})
		fetcher := fetch.NewClient(
			fetch.WithBaseURL(cfg.Lookup.BaseURL),
			fetch.WithTimeout(cfg.Lookup.Timeout),
			fetch.WithUserAgent(paths.AppName+"/"+Version),
		)
		lookup = openfarm.New(fetcher, cache.NewStore(cacheFile), logger)
		logger.Debug("external crop lookup enabled", "base_url", fetcher.BaseURL(), "cache_file", cacheFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(Version, tools.New(cat, lookup), cat, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func printUsage(flags *pflag.FlagSet) {
	fmt.Println("agromind-mcp - MCP server for hydroponic growing assistance")
	fmt.Println()
	fmt.Println("Usage: agromind-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Print(flags.FlagUsages())
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  AGROMIND_CONFIG            YAML config file")
	fmt.Println("  AGROMIND_CACHE_DIR         Cache directory (default: <exe>/../.cache or ~/.agromind-mcp)")
	fmt.Println("  AGROMIND_CACHE_FILE        External lookup cache file")
	fmt.Println("  AGROMIND_DATA_DIR          Reference data override directory")
	fmt.Println("  AGROMIND_LOG_LEVEL         Log level: debug, info, warn, error (default: info)")
	fmt.Println("  AGROMIND_LOOKUP_URL        OpenFarm-compatible API root")
	fmt.Println("  AGROMIND_LOOKUP_TIMEOUT    Lookup timeout in seconds (default: 8)")
	fmt.Println("  AGROMIND_LOOKUP_DISABLED   Disable the external crop lookup")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
