// Package wp defines the site collaborators consumed by the scan session: the
// scannable URL source, the validation endpoint and the options resource. The
// concrete Client talks to a WordPress REST API.
package wp

import (
	"context"
	"sitescan/pkg/domain"
)

// ScannableURLsQuery selects which scannable URLs, and which of their fields,
// the source should return.
type ScannableURLsQuery struct {
	// Path is the REST path of the scannable URLs resource, relative to the REST root.
	Path string
	// Fields limits the returned fields (the _fields query argument).
	Fields []string
	// LimitPerType caps the number of URLs per template kind. Zero leaves the
	// site default in place.
	LimitPerType int
	// IncludeConditionals restricts discovery to these template conditionals.
	IncludeConditionals []string
}

// ValidateRequest describes a single URL validation.
type ValidateRequest struct {
	// URL is the address to validate, in plain or AMP form.
	URL string
	// AMPFirst forces the site to validate the canonical URL in standard mode.
	AMPFirst bool
	// Cache lets the site serve cached validation results.
	Cache bool
	// Nonce is the validate credential.
	Nonce string
	// OmitStylesheets asks the site to leave stylesheet payloads out of the response.
	OmitStylesheets bool
	// CacheBust is a random value defeating intermediate HTTP caches.
	CacheBust string
}

// ValidateResult is the successful outcome of a validation request.
type ValidateResult struct {
	Revalidated      bool
	ValidatedURLPost *domain.ValidatedURLPost
	ValidationErrors []domain.ValidationError
}

// URLSource lists the URLs of a site that are eligible for validation.
//
//go:generate mockgen -package mockwp -source=interface.go -destination=mock/mockwp.go *
type URLSource interface {
	// ScannableURLs returns the scannable URLs in the order the site lists them.
	ScannableURLs(ctx context.Context, query ScannableURLsQuery) ([]domain.ScannableURL, error)
}

// Validator validates a single URL.
type Validator interface {
	// Validate requests validation of req.URL. A non-2xx answer is returned as
	// a *ResponseError; transport and decoding failures as plain errors.
	Validate(ctx context.Context, req ValidateRequest) (*ValidateResult, error)
}

// OptionsAPI reads and updates the site's stored options.
type OptionsAPI interface {
	// Options returns the stored options.
	Options(ctx context.Context) (domain.Options, error)
	// UpdateOptions stores the given options and returns the resulting set.
	UpdateOptions(ctx context.Context, updates domain.Options) (domain.Options, error)
}
