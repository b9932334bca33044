package wp_test

import (
	"net/url"
	"sitescan/pkg/wp"
	"testing"
)

func TestResolveRESTPath(t *testing.T) {
	cases := []struct {
		name string
		root string
		path string
		out  string
		ok   bool
	}{
		{
			name: "join root and path",
			root: "https://example.com/wp-json",
			path: "/amp/v1/scannable-urls",
			out:  "https://example.com/wp-json/amp/v1/scannable-urls",
			ok:   true,
		},
		{
			name: "lowercase scheme and host",
			root: "HTTPS://Example.COM/wp-json/",
			path: "amp/v1/options",
			out:  "https://example.com/wp-json/amp/v1/options",
			ok:   true,
		},
		{
			name: "clean duplicate slashes and dot segments",
			root: "https://example.com/wp-json//",
			path: "/amp/./v1/../v1/options",
			out:  "https://example.com/wp-json/amp/v1/options",
			ok:   true,
		},
		{
			name: "keep trailing slash of the path",
			root: "https://example.com/wp-json",
			path: "/amp/v1/scannable-urls/",
			out:  "https://example.com/wp-json/amp/v1/scannable-urls/",
			ok:   true,
		},
		{
			name: "merge query arguments",
			root: "https://example.com/?lang=en",
			path: "/amp/v1/options?context=edit",
			out:  "https://example.com/amp/v1/options?context=edit&lang=en",
			ok:   true,
		},
		{
			name: "drop fragment",
			root: "https://example.com/wp-json#top",
			path: "/amp/v1/options",
			out:  "https://example.com/wp-json/amp/v1/options",
			ok:   true,
		},
		{
			name: "relative root is rejected",
			root: "/wp-json",
			path: "/amp/v1/options",
			ok:   false,
		},
		{
			name: "invalid root is rejected",
			root: "http://exa mple.com",
			path: "/amp/v1/options",
			ok:   false,
		},
	}

	for _, tc := range cases {
		got, err := wp.ResolveRESTPath(tc.root, tc.path)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.name, err)
			}
			if got != tc.out {
				t.Errorf("%s: got %q, want %q", tc.name, got, tc.out)
			}
		} else if err == nil {
			t.Errorf("%s: expected error, got none (result %q)", tc.name, got)
		}
	}
}

func TestAddQueryArgs(t *testing.T) {
	got, err := wp.AddQueryArgs("https://example.com/page/?amp=1&foo=bar#frag", url.Values{
		"foo":                 {"baz"},
		"amp_validate[nonce]": {"n0nce"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://example.com/page/?amp=1&amp_validate%5Bnonce%5D=n0nce&foo=baz#frag"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := wp.AddQueryArgs("http://exa mple.com", url.Values{}); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
