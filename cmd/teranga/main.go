package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/fallou/teranga/internal/client/api"
	"github.com/fallou/teranga/internal/client/cli"
	"github.com/fallou/teranga/internal/client/iocli"
	"github.com/fallou/teranga/internal/client/storage/boltdb"
	"github.com/fallou/teranga/internal/config"
	pkgapi "github.com/fallou/teranga/pkg/api"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to configuration file")
	serverURL := flag.String("server", "", "Server URL (overrides configuration)")
	dbPath := flag.String("db", "", "Path to local database (overrides configuration)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}
	command := args[0]

	cfg := config.MustLoad(*configPath)
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	ctx := context.Background()

	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// A bare client performs the token refresh exchange for the auth
	// transport, so refresh requests never recurse through it.
	bare := api.NewClient(cfg.ServerURL, api.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}))
	refresh := func(ctx context.Context, refreshToken string) (*pkgapi.RefreshResponse, error) {
		return bare.Refresh(ctx, pkgapi.RefreshRequest{RefreshToken: refreshToken})
	}

	var app *cli.Cli
	transport := api.NewTransport(store, refresh, api.WithSessionExpiredHook(func() {
		if app != nil {
			app.HandleSessionExpired()
		}
	}))

	apiClient := api.NewClient(cfg.ServerURL, api.WithHTTPClient(&http.Client{
		Timeout:   cfg.HTTP.Timeout,
		Transport: transport,
	}))
	app = cli.New(apiClient, store, cfg, stdio)

	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Teranga Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
