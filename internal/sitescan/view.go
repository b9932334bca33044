package sitescan

import (
	"sitescan/pkg/domain"
	"slices"
)

// View is the read model of a session: its state plus the values derived from
// it. Views are snapshots and never change after being built.
type View struct {
	Status                   Status                `json:"status"`
	Cache                    bool                  `json:"cache"`
	CurrentlyScannedURLIndex int                   `json:"currentlyScannedUrlIndex"`
	ScannableURLs            []domain.ScannableURL `json:"scannableUrls"`

	IsBusy         bool `json:"isBusy"`
	IsInitializing bool `json:"isInitializing"`
	IsReady        bool `json:"isReady"`
	IsCompleted    bool `json:"isCompleted"`
	IsFailed       bool `json:"isFailed"`
	IsCancelled    bool `json:"isCancelled"`

	// Stale is HasModifiedOptions or HasStaleResults.
	Stale              bool `json:"stale"`
	HasModifiedOptions bool `json:"hasModifiedOptions"`
	HasStaleResults    bool `json:"hasStaleResults"`

	PreviewPermalink string   `json:"previewPermalink"`
	PluginIssues     []string `json:"pluginIssues"`
	ThemeIssues      []string `json:"themeIssues"`

	// FetchError is set when the URL list could not be fetched.
	FetchError string `json:"fetchError,omitempty"`
}

// ViewInput is everything a View is derived from besides the state.
type ViewInput struct {
	ModifiedOptions domain.Options
	ThemeSupport    domain.ThemeSupport
	AMPFirst        bool
	HomeURL         string
	// Issues overrides issue classification when non-nil.
	Issues *Issues
}

// NewView derives the read model of s.
func NewView(s State, in ViewInput) View {
	v := View{
		Status:                   s.Status,
		Cache:                    s.Cache,
		CurrentlyScannedURLIndex: s.CurrentlyScannedURLIndex,
		ScannableURLs:            slices.Clone(s.ScannableURLs),
		IsBusy:                   s.Status.Busy(),
		IsInitializing:           s.Status.Initializing(),
		IsReady:                  s.Status == StatusReady,
		IsCompleted:              s.Status == StatusCompleted,
		IsFailed:                 s.Status == StatusFailed,
		IsCancelled:              s.Status == StatusCancelled,
		PluginIssues:             []string{},
		ThemeIssues:              []string{},
	}
	if v.ScannableURLs == nil {
		v.ScannableURLs = []domain.ScannableURL{}
	}

	if settled(s.Status) {
		issues := in.Issues
		if issues == nil {
			computed := scanIssues(s.ScannableURLs)
			issues = &computed
		}
		v.PluginIssues = issues.PluginIssues
		v.ThemeIssues = issues.ThemeIssues
		v.HasStaleResults = hasStaleResults(s.ScannableURLs)
	}
	v.HasModifiedOptions = HasModifiedOptions(in.ModifiedOptions, s.FrozenModifiedOptions)
	v.Stale = v.HasModifiedOptions || v.HasStaleResults
	v.PreviewPermalink = PreviewPermalink(s.ScannableURLs, in.ThemeSupport, UsePlainURL(in.AMPFirst, in.ThemeSupport), in.HomeURL)

	return v
}

// settled reports whether results are meaningful: the list is loaded and no
// scan is running.
func settled(s Status) bool { return s == StatusReady || s == StatusCompleted }

func hasStaleResults(urls []domain.ScannableURL) bool {
	return slices.ContainsFunc(urls, func(u domain.ScannableURL) bool { return u.Stale })
}

// UsePlainURL reports whether URLs are validated and previewed in their plain
// form rather than their AMP form.
func UsePlainURL(ampFirst bool, themeSupport domain.ThemeSupport) bool {
	return ampFirst || themeSupport == domain.ThemeSupportStandard
}

// PreviewPermalink returns the address of the first URL suitable for a
// preview: a post or page in reader mode, the home page otherwise. It falls
// back to homeURL.
func PreviewPermalink(urls []domain.ScannableURL, themeSupport domain.ThemeSupport, plain bool, homeURL string) string {
	accepted := []domain.URLType{domain.URLTypeHome}
	if themeSupport == domain.ThemeSupportReader {
		accepted = []domain.URLType{domain.URLTypePost, domain.URLTypePage}
	}

	i := slices.IndexFunc(urls, func(u domain.ScannableURL) bool { return slices.Contains(accepted, u.Type) })
	if i < 0 {
		return homeURL
	}
	if addr := urls[i].Address(plain); addr != "" {
		return addr
	}

	return homeURL
}
