package sitescan

import (
	"reflect"
	"sitescan/pkg/domain"
	"slices"
)

// InvalidatingOptionKeys are the options whose modification makes scan
// results stale.
var InvalidatingOptionKeys = []string{ //nolint: gochecknoglobals
	domain.OptionAllTemplatesSupported,
	domain.OptionSupportedPostTypes,
	domain.OptionSupportedTemplates,
	domain.OptionSuppressedPlugins,
	domain.OptionThemeSupport,
}

// HasModifiedOptions reports whether any invalidating key of the live modified
// options differs from its value frozen at scan start.
func HasModifiedOptions(live, frozen domain.Options) bool {
	for key, value := range live {
		if !slices.Contains(InvalidatingOptionKeys, key) {
			continue
		}
		if !shallowEqual(value, frozen[key]) {
			return true
		}
	}

	return false
}

// shallowEqual compares arrays and objects one level deep.
func shallowEqual(a, b any) bool {
	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)

		return ok && slices.EqualFunc(av, bv, valueEqual)
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !valueEqual(v, w) {
				return false
			}
		}

		return true
	default:
		return valueEqual(a, b)
	}
}

func valueEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
