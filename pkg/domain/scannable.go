package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// URLType is the template kind a scannable URL was discovered for, such as
// "home", "post", "page" or a taxonomy archive.
type URLType string

const (
	// URLTypeHome is the site front page.
	URLTypeHome URLType = "home"
	// URLTypePost is a single post.
	URLTypePost URLType = "post"
	// URLTypePage is a single page.
	URLTypePage URLType = "page"
)

// ScanError marks a URL whose validation failed. Code carries the
// server-supplied error code; an empty Code is the generic failure marker.
// On the wire a generic failure is encoded as true and a coded one as the code
// string.
type ScanError struct {
	Code string
}

// GenericScanError returns the failure marker used when no error code is known.
func GenericScanError() *ScanError { return &ScanError{} }

// Error implements error.
func (e *ScanError) Error() string {
	if e.Code == "" {
		return "validation request failed"
	}

	return "validation request failed: " + e.Code
}

func (e *ScanError) MarshalJSON() ([]byte, error) {
	if e.Code == "" {
		return []byte("true"), nil
	}

	return json.Marshal(e.Code)
}

func (e *ScanError) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("true")):
		*e = ScanError{}
	case len(b) > 0 && b[0] == '"':
		var code string
		if err := json.Unmarshal(b, &code); err != nil {
			return fmt.Errorf("could not decode scan error code: %w", err)
		}
		*e = ScanError{Code: code}
	default:
		return fmt.Errorf("unexpected scan error value %s", b)
	}

	return nil
}

// ValidatedURLPost references the record the site keeps for a validated URL.
type ValidatedURLPost struct {
	ID       int64  `json:"id,omitempty"`
	EditLink string `json:"edit_link,omitempty"`
}

// ScannableURL is a single entry of the ordered list being scanned. Its
// identity is its position in that list.
type ScannableURL struct {
	// URL is the plain (canonical) address.
	URL string `json:"url"`
	// AMPURL is the AMP-specific address, which differs from URL in reader mode.
	AMPURL string `json:"amp_url"`
	// Type is the template kind the URL was discovered for.
	Type URLType `json:"type"`
	// Label is a human readable description of the template kind.
	Label string `json:"label"`

	// Stale is set by the site when cached validation results no longer match
	// the current configuration. Cleared once the URL is validated again.
	Stale bool `json:"stale,omitempty"`
	// Error is set when the last validation attempt failed. It is mutually
	// exclusive with the success fields below.
	Error *ScanError `json:"error,omitempty"`
	// Revalidated reports whether the site validated the URL afresh rather than
	// serving cached results.
	Revalidated bool `json:"revalidated,omitempty"`
	// ValidatedURLPost references the stored validation record.
	ValidatedURLPost *ValidatedURLPost `json:"validated_url_post,omitempty"`
	// ValidationErrors are the errors found on the URL.
	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`
}

// Address returns the URL form to use: the plain address when plain is true,
// the AMP address otherwise.
func (u ScannableURL) Address(plain bool) string {
	if plain {
		return u.URL
	}

	return u.AMPURL
}

// Failed reports whether the last validation attempt for the URL failed.
func (u ScannableURL) Failed() bool { return u.Error != nil }
