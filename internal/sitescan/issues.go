package sitescan

import (
	"regexp"
	"sitescan/pkg/domain"
)

// Issues groups the sources of validation errors found on a site.
type Issues struct {
	// PluginIssues are plugin slugs, in first-seen order.
	PluginIssues []string `json:"pluginIssues"`
	// ThemeIssues are theme stylesheets, in first-seen order.
	ThemeIssues []string `json:"themeIssues"`
}

var pluginSlugPattern = regexp.MustCompile(`^(.*?)(?:\.php)?$`)

// ampPluginSlug is never reported; its markup is the validator's own.
const ampPluginSlug = "amp"

// ClassifyIssues partitions validation errors by source into plugin and theme
// issues. Each plugin or theme is listed once.
func ClassifyIssues(errs []domain.ValidationError) Issues {
	issues := Issues{PluginIssues: []string{}, ThemeIssues: []string{}}
	seenPlugins := make(map[string]struct{})
	seenThemes := make(map[string]struct{})

	for _, ve := range errs {
		for _, src := range ve.Sources {
			switch src.Type {
			case domain.SourceTypePlugin:
				slug := pluginSlug(src.Name)
				if slug == "" || slug == ampPluginSlug {
					continue
				}
				if _, ok := seenPlugins[slug]; ok {
					continue
				}
				seenPlugins[slug] = struct{}{}
				issues.PluginIssues = append(issues.PluginIssues, slug)
			case domain.SourceTypeTheme:
				if src.Name == "" {
					continue
				}
				if _, ok := seenThemes[src.Name]; ok {
					continue
				}
				seenThemes[src.Name] = struct{}{}
				issues.ThemeIssues = append(issues.ThemeIssues, src.Name)
			default:
			}
		}
	}

	return issues
}

// pluginSlug strips a trailing .php from a plugin source name, so that
// single-file plugins and directory plugins both map to their slug.
func pluginSlug(name string) string {
	m := pluginSlugPattern.FindStringSubmatch(name)
	if m == nil {
		return name
	}

	return m[1]
}

// scanIssues collects the validation errors of every URL and classifies them.
func scanIssues(urls []domain.ScannableURL) Issues {
	var errs []domain.ValidationError
	for _, u := range urls {
		errs = append(errs, u.ValidationErrors...)
	}

	return ClassifyIssues(errs)
}
