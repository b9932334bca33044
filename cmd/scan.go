package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sitescan/internal/config"
	"sitescan/internal/sitescan"
	"sitescan/pkg/domain"
	"sitescan/pkg/logger"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

// scanReport is what the scan command prints.
type scanReport struct {
	Status        sitescan.Status       `json:"status"`
	ScannableURLs []domain.ScannableURL `json:"scannableUrls"`
	PluginIssues  []string              `json:"pluginIssues"`
	ThemeIssues   []string              `json:"themeIssues"`
	FetchError    string                `json:"fetchError,omitempty"`
}

var errScanUnsuccessful = errors.New("scan did not complete")

func scanCommand(cfg *config.Config) *cobra.Command {
	var cache bool

	cmd := &cobra.Command{
		Use:          "scan",
		Short:        "Scans the site once and prints the results",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			view, err := runScan(ctx, cfg, cache)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(scanReport{
				Status:        view.Status,
				ScannableURLs: view.ScannableURLs,
				PluginIssues:  view.PluginIssues,
				ThemeIssues:   view.ThemeIssues,
				FetchError:    view.FetchError,
			}); err != nil {
				return fmt.Errorf("could not write report: %w", err)
			}

			if !view.IsCompleted {
				return errScanUnsuccessful
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&cache, "cache", false, "Allow the site to answer with cached validation results")

	return cmd
}

// runScan loads the URL list, runs a single scan and returns the settled view.
// An interrupt cancels the scan.
func runScan(ctx context.Context, cfg *config.Config, cache bool) (sitescan.View, error) {
	s := getSite(ctx, cfg)
	session := newSession(ctx, cfg, s, noop.NewMeterProvider(), nil)

	sessionCtx, stopSession := context.WithCancel(context.Background())
	defer stopSession()
	go func() {
		if err := session.Run(sessionCtx); err != nil {
			logger.Error(ctx, "site scan session stopped", zap.Error(err))
		}
	}()

	view, err := session.Wait(ctx, func(v sitescan.View) bool {
		return v.IsReady || v.IsCompleted || v.FetchError != ""
	})
	if err != nil {
		return view, err
	}
	if view.FetchError != "" {
		return view, nil
	}

	if !session.Start(ctx, sitescan.StartArgs{Cache: cache}) {
		return view, fmt.Errorf("could not start scan in status %q", view.Status)
	}

	settled := func(v sitescan.View) bool { return v.IsCompleted || v.IsFailed || v.IsCancelled }
	view, err = session.Wait(ctx, settled)
	if err != nil && ctx.Err() != nil {
		logger.Info(sessionCtx, "interrupted, cancelling scan...")
		session.Cancel(sessionCtx)

		return session.Wait(sessionCtx, settled)
	}

	return view, err
}
