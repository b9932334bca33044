// Package main provides the CLI entrypoint for the site scan service.
// It wires subcommands (serve, scan), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"sitescan/internal/config"
	"sitescan/internal/sitescan"
	"sitescan/pkg/logger"
	"sitescan/pkg/options"
	"sitescan/pkg/wp"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// site holds the collaborators talking to the scanned site.
type site struct {
	client  *wp.Client
	options *options.Store
}

// getSite creates the site client and loads the stored options.
func getSite(ctx context.Context, cfg *config.Config) *site {
	client := wp.New(&http.Client{Timeout: cfg.Site.RequestTimeout}, wp.Options{
		RESTRoot:        cfg.Site.RESTRoot,
		OptionsRestPath: cfg.Site.OptionsRestPath,
		Username:        cfg.Site.Username,
		AppPassword:     cfg.Site.AppPassword,
		UserAgent:       cfg.Site.UserAgent,
	})

	store := options.New(client)
	if err := store.Refresh(ctx); err != nil {
		logger.Fatal(ctx, "could not load site options", zap.Error(err))
	}

	return &site{client: client, options: store}
}

// newSession creates a scan session for s. Async errors are passed to onError
// after being logged.
func newSession(ctx context.Context, cfg *config.Config, s *site, mp metric.MeterProvider,
	onError func(ctx context.Context, err error)) sitescan.Scanner {
	session, err := sitescan.New(s.client, s.client, s.options, sitescan.Options{
		AMPFirst:                    cfg.Scan.AMPFirst,
		FetchCachedValidationErrors: cfg.Scan.FetchCachedValidationErrors,
		HomeURL:                     cfg.Site.HomeURL,
		ScannableURLsRestPath:       cfg.Site.ScannableURLsRestPath,
		ValidateNonce:               cfg.Site.ValidateNonce,
		LimitPerType:                cfg.Scan.LimitPerType,
		IncludeConditionals:         cfg.Scan.IncludeConditionals,
		EventBuffer:                 cfg.Scan.EventBuffer,
		MeterProvider:               mp,
		OnAsyncError: func(ctx context.Context, err error) {
			logger.Error(ctx, "could not fetch scannable urls", zap.Error(err))
			if onError != nil {
				onError(ctx, err)
			}
		},
	})
	if err != nil {
		logger.Fatal(ctx, "could not create site scan session", zap.Error(err))
	}

	return session
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "sitescan",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		scanCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
