package sitescan

import (
	"fmt"
	"sitescan/pkg/domain"
	"slices"
)

// Status is the lifecycle stage of a scan session.
type Status string

const (
	// StatusInitial is the status before the URL list was requested.
	StatusInitial Status = ""
	// StatusRequestScannableURLs queues the URL list fetch.
	StatusRequestScannableURLs Status = "REQUEST_SCANNABLE_URLS"
	// StatusFetchingScannableURLs means the URL list request is in flight.
	StatusFetchingScannableURLs Status = "FETCHING_SCANNABLE_URLS"
	// StatusReady means the URL list is loaded and no scan is running.
	StatusReady Status = "READY"
	// StatusIdle means a scan is about to validate the current URL.
	StatusIdle Status = "IDLE"
	// StatusInProgress means the current URL is being validated.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusCompleted means the URL list was empty or at least one URL validated.
	StatusCompleted Status = "COMPLETED"
	// StatusFailed means every URL of the last scan failed to validate.
	StatusFailed Status = "FAILED"
	// StatusCancelled means the scan was aborted by the user or by stale options.
	StatusCancelled Status = "CANCELLED"
)

// Busy reports whether a scan is running.
func (s Status) Busy() bool { return s == StatusIdle || s == StatusInProgress }

// Initializing reports whether the URL list is being requested or fetched.
func (s Status) Initializing() bool {
	return s == StatusRequestScannableURLs || s == StatusFetchingScannableURLs
}

// CanStart reports whether a scan may be started from s.
func (s Status) CanStart() bool {
	switch s {
	case StatusReady, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// State is the complete state of a scan session. Values are treated as
// immutable: Reduce never modifies its input.
type State struct {
	Status                   Status                `json:"status"`
	Cache                    bool                  `json:"cache"`
	CurrentlyScannedURLIndex int                   `json:"currentlyScannedUrlIndex"`
	FrozenModifiedOptions    domain.Options        `json:"frozenModifiedOptions"`
	ScannableURLs            []domain.ScannableURL `json:"scannableUrls"`
}

// InitialState returns the state of a fresh session.
func InitialState() State {
	return State{
		FrozenModifiedOptions: domain.Options{},
		ScannableURLs:         []domain.ScannableURL{},
	}
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// RequestScannableURLs queues the URL list fetch.
type RequestScannableURLs struct{}

// FetchScannableURLs marks the URL list request as in flight.
type FetchScannableURLs struct{}

// ReceiveScannableURLs delivers the fetched URL list.
type ReceiveScannableURLs struct {
	URLs []domain.ScannableURL
}

// StartScan starts a scan over the loaded URL list.
type StartScan struct {
	Cache bool
	// ModifiedOptions are the live modified options at start; they become the
	// frozen baseline for staleness checks.
	ModifiedOptions domain.Options
}

// ValidateURL marks the current URL as being validated.
type ValidateURL struct{}

// ReceiveValidationResult records the outcome of validating the URL at Index.
// Error and the success fields are mutually exclusive; a URL counts as
// revalidated exactly when Error is nil.
type ReceiveValidationResult struct {
	Index            int
	Error            *domain.ScanError
	ValidatedURLPost *domain.ValidatedURLPost
	ValidationErrors []domain.ValidationError
}

// NextURL advances the scan after an outcome was recorded.
type NextURL struct{}

// CancelScan aborts a running scan.
type CancelScan struct{}

func (RequestScannableURLs) isEvent()    {}
func (FetchScannableURLs) isEvent()      {}
func (ReceiveScannableURLs) isEvent()    {}
func (StartScan) isEvent()               {}
func (ValidateURL) isEvent()             {}
func (ReceiveValidationResult) isEvent() {}
func (NextURL) isEvent()                 {}
func (CancelScan) isEvent()              {}

// Reduce returns the state that results from applying e to s. It performs no
// I/O and does not modify s.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case RequestScannableURLs:
		s.Status = StatusRequestScannableURLs

		return s
	case FetchScannableURLs:
		s.Status = StatusFetchingScannableURLs

		return s
	case ReceiveScannableURLs:
		if len(e.URLs) == 0 {
			s.Status = StatusCompleted

			return s
		}
		s.Status = StatusReady
		s.ScannableURLs = slices.Clone(e.URLs)

		return s
	case StartScan:
		if !s.Status.CanStart() {
			return s
		}
		s.Cache = e.Cache
		s.CurrentlyScannedURLIndex = 0
		s.FrozenModifiedOptions = e.ModifiedOptions.Clone()
		// Nothing to validate; finish right away so the index stays valid.
		if len(s.ScannableURLs) == 0 {
			s.Status = StatusCompleted

			return s
		}
		s.Status = StatusIdle

		return s
	case ValidateURL:
		s.Status = StatusInProgress

		return s
	case ReceiveValidationResult:
		if e.Index < 0 || e.Index >= len(s.ScannableURLs) {
			return s
		}
		u := s.ScannableURLs[e.Index]
		u.Stale = false
		if e.Error != nil {
			scanErr := *e.Error
			u.Error = &scanErr
			u.Revalidated = false
			u.ValidatedURLPost = nil
			u.ValidationErrors = nil
		} else {
			u.Error = nil
			u.Revalidated = true
			u.ValidatedURLPost = e.ValidatedURLPost
			u.ValidationErrors = e.ValidationErrors
		}
		urls := slices.Clone(s.ScannableURLs)
		urls[e.Index] = u
		s.ScannableURLs = urls

		return s
	case NextURL:
		if s.Status == StatusCancelled {
			return s
		}
		if s.CurrentlyScannedURLIndex < len(s.ScannableURLs)-1 {
			s.Status = StatusIdle
			s.CurrentlyScannedURLIndex++

			return s
		}
		if allFailed(s.ScannableURLs) {
			s.Status = StatusFailed
		} else {
			s.Status = StatusCompleted
		}

		return s
	case CancelScan:
		if !s.Status.Busy() {
			return s
		}
		s.Status = StatusCancelled
		s.CurrentlyScannedURLIndex = 0

		return s
	default:
		panic(fmt.Sprintf("sitescan: unhandled event %T", e))
	}
}

func allFailed(urls []domain.ScannableURL) bool {
	for _, u := range urls {
		if !u.Failed() {
			return false
		}
	}

	return true
}
