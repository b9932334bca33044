package domain

// SourceType identifies what produced markup that failed validation.
type SourceType string

const (
	// SourceTypePlugin is markup produced by a plugin.
	SourceTypePlugin SourceType = "plugin"
	// SourceTypeTheme is markup produced by the active theme (or its parent).
	SourceTypeTheme SourceType = "theme"
	// SourceTypeCore is markup produced by the CMS core.
	SourceTypeCore SourceType = "core"
	// SourceTypeMUPlugin is markup produced by a must-use plugin.
	SourceTypeMUPlugin SourceType = "mu-plugin"
)

// ValidationErrorSource attributes a validation error to its origin.
type ValidationErrorSource struct {
	Type SourceType `json:"type"`
	// Name is the plugin file or slug, or the theme stylesheet.
	Name string `json:"name"`
	// Function is the hook callback that emitted the markup, when known.
	Function string `json:"function,omitempty"`
}

// ValidationError is a structured finding returned by the validation endpoint.
type ValidationError struct {
	Code     string                  `json:"code"`
	Type     string                  `json:"type,omitempty"`
	NodeName string                  `json:"node_name,omitempty"`
	NodeType int                     `json:"node_type,omitempty"`
	Sources  []ValidationErrorSource `json:"sources,omitempty"`
}
