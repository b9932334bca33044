package domain

import "maps"

// ThemeSupport is the site's template mode.
type ThemeSupport string

const (
	// ThemeSupportStandard serves AMP on the canonical URLs.
	ThemeSupportStandard ThemeSupport = "standard"
	// ThemeSupportTransitional serves AMP on paired URLs using the active theme.
	ThemeSupportTransitional ThemeSupport = "transitional"
	// ThemeSupportReader serves AMP on paired URLs using a separate reader theme.
	ThemeSupportReader ThemeSupport = "reader"
)

// Option keys used by the scan.
const (
	OptionThemeSupport          = "theme_support"
	OptionReaderTheme           = "reader_theme"
	OptionAllTemplatesSupported = "all_templates_supported"
	OptionSupportedPostTypes    = "supported_post_types"
	OptionSupportedTemplates    = "supported_templates"
	OptionSuppressedPlugins     = "suppressed_plugins"
)

// Options is a decoded options object keyed by option name.
type Options map[string]any

// Clone returns a copy of o. Nested values are shared.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}

	return maps.Clone(o)
}

// ThemeSupport returns the theme_support option.
func (o Options) ThemeSupport() ThemeSupport {
	s, _ := o[OptionThemeSupport].(string)

	return ThemeSupport(s)
}

// OptionsSnapshot is the read model of the site's configuration: values as
// stored by the site and local modifications not yet saved.
type OptionsSnapshot struct {
	ModifiedOptions Options `json:"modifiedOptions"`
	OriginalOptions Options `json:"originalOptions"`
}
