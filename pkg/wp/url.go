package wp

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ResolveRESTPath joins a REST path (which may carry its own query string)
// onto the REST root and returns an absolute URL.
//
//   - The root's scheme and host are lower-cased
//   - Path segments are joined and cleaned (dot-segments, duplicate slashes)
//   - A trailing slash on the REST path is kept, because route matching on
//     the site is sensitive to it
//   - Query arguments of the root and of the path are merged, the path winning
func ResolveRESTPath(root, restPath string) (string, error) {
	base, err := url.Parse(root)
	if err != nil {
		return "", fmt.Errorf("could not parse REST root: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("REST root %q is not absolute", root)
	}

	rel, err := url.Parse(restPath)
	if err != nil {
		return "", fmt.Errorf("could not parse REST path: %w", err)
	}

	base.Scheme = strings.ToLower(base.Scheme)
	base.Host = strings.ToLower(base.Host)

	joined := path.Clean("/" + base.Path + "/" + rel.Path)
	if strings.HasSuffix(rel.Path, "/") && joined != "/" {
		joined += "/"
	}
	base.Path = joined
	base.RawPath = ""

	q := base.Query()
	for k, vs := range rel.Query() {
		q[k] = vs
	}
	base.RawQuery = q.Encode()
	base.Fragment = ""

	return base.String(), nil
}

// AddQueryArgs merges args into the query string of raw. Existing arguments
// with the same key are replaced; everything else in raw is preserved.
func AddQueryArgs(raw string, args url.Values) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("could not parse URL: %w", err)
	}

	q := u.Query()
	for k, vs := range args {
		q[k] = vs
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
