// Package sitescan runs a site scan: it fetches the scannable URLs of a site and
// validates them one at a time, folding every outcome into a single state
// through a pure reducer. Scans are cancelled when the options they were
// started with go stale.
package sitescan

import (
	"context"
	"sitescan/pkg/domain"
)

// StartArgs are the arguments of a scan start.
type StartArgs struct {
	// Cache lets the site answer with cached validation results.
	Cache bool `json:"cache"`
}

// OptionsSource is the live options read model consulted by a session.
type OptionsSource interface {
	// ModifiedOptions returns the local option modifications not yet saved.
	ModifiedOptions() domain.Options
	// ThemeSupport returns the stored theme support mode.
	ThemeSupport() domain.ThemeSupport
	// Subscribe notifies on every options change until unsubscribed.
	Subscribe() (<-chan struct{}, func())
}

// Scanner is a single scan session.
//
//go:generate mockgen -package mocksitescan -source=interface.go -destination=mock/mocksitescan.go *
type Scanner interface {
	// Run fetches the scannable URLs and performs scans until ctx is done.
	// Results arriving after that are discarded.
	Run(ctx context.Context) error
	// Start starts a scan. It reports false, leaving the state unchanged, when
	// the URL list is not loaded yet or a scan is already running.
	Start(ctx context.Context, args StartArgs) bool
	// Cancel cancels the running scan. It reports false when no scan is running.
	Cancel(ctx context.Context) bool
	// View returns the current read model.
	View() View
	// Subscribe streams a View after every state change until unsubscribed or
	// the session is torn down, at which point the channel is closed. Slow
	// readers miss intermediate views.
	Subscribe() (<-chan View, func())
	// Wait blocks until the View satisfies cond and returns it.
	Wait(ctx context.Context, cond func(View) bool) (View, error)
}
