package wp_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sitescan/pkg/domain"
	"sitescan/pkg/serrors"
	"sitescan/pkg/wp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *wp.Client {
	return wp.New(&http.Client{Transport: fn}, wp.Options{
		RESTRoot:        "https://example.com/wp-json/",
		OptionsRestPath: "/amp/v1/options",
		Username:        "admin",
		AppPassword:     "app-pass",
		UserAgent:       "sitescan-test",
	})
}

func jsonResponse(status int, body string) *http.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_ScannableURLs_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "example.com", r.URL.Host)
		require.Equal(t, "/wp-json/amp/v1/scannable-urls", r.URL.Path)
		require.Equal(t, "url,amp_url,type,label,validation_errors,stale", r.URL.Query().Get("_fields"))
		require.Equal(t, "2", r.URL.Query().Get("limit_per_type"))
		require.Equal(t, []string{"is_home", "is_page"}, r.URL.Query()["include_conditionals[]"])
		require.Equal(t, "sitescan-test", r.Header.Get("User-Agent"))
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "admin", user)
		require.Equal(t, "app-pass", pass)

		return jsonResponse(http.StatusOK, `[
			{"url":"https://example.com/","amp_url":"https://example.com/?amp=1","type":"home","label":"Homepage"},
			{"url":"https://example.com/hello/","amp_url":"https://example.com/hello/?amp=1","type":"post","label":"Post","stale":true,
			 "validation_errors":[{"code":"DISALLOWED_TAG","sources":[{"type":"plugin","name":"foo.php"}]}]}
		]`), nil
	})

	urls, err := c.ScannableURLs(context.Background(), wp.ScannableURLsQuery{
		Path:                "/amp/v1/scannable-urls",
		Fields:              []string{"url", "amp_url", "type", "label", "validation_errors", "stale"},
		LimitPerType:        2,
		IncludeConditionals: []string{"is_home", "is_page"},
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	require.Equal(t, domain.URLTypeHome, urls[0].Type)
	require.Equal(t, "https://example.com/hello/?amp=1", urls[1].AMPURL)
	require.True(t, urls[1].Stale)
	require.Len(t, urls[1].ValidationErrors, 1)
	require.Equal(t, "foo.php", urls[1].ValidationErrors[0].Sources[0].Name)
}

func TestClient_ScannableURLs_paginated(t *testing.T) {
	var pages []string
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)

		var resp *http.Response
		switch page {
		case "":
			resp = jsonResponse(http.StatusOK, `[{"url":"https://example.com/","amp_url":"https://example.com/?amp=1","type":"home","label":"Homepage"}]`)
		case "2":
			resp = jsonResponse(http.StatusOK, `[{"url":"https://example.com/a/","amp_url":"https://example.com/a/?amp=1","type":"page","label":"Page"}]`)
		default:
			resp = jsonResponse(http.StatusOK, `[]`)
		}
		resp.Header.Set("X-WP-TotalPages", "3")

		return resp, nil
	})

	urls, err := c.ScannableURLs(context.Background(), wp.ScannableURLsQuery{Path: "amp/v1/scannable-urls"})
	require.NoError(t, err)
	require.Equal(t, []string{"", "2", "3"}, pages)
	require.Len(t, urls, 2)
	require.Equal(t, "https://example.com/a/", urls[1].URL)
}

func TestClient_ScannableURLs_non2xx(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"code":"rest_no_route","message":"No route was found"}`), nil
	})

	_, err := c.ScannableURLs(context.Background(), wp.ScannableURLsQuery{Path: "amp/v1/scannable-urls"})
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	var rerr *wp.ResponseError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "rest_no_route", rerr.Code)
}

func TestClient_ScannableURLs_transportError(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := c.ScannableURLs(context.Background(), wp.ScannableURLsQuery{Path: "amp/v1/scannable-urls"})
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestValidateArgs(t *testing.T) {
	args := wp.ValidateArgs(wp.ValidateRequest{
		URL:             "https://example.com/",
		Nonce:           "n0nce",
		OmitStylesheets: true,
		CacheBust:       "0.25",
	})
	require.Equal(t, "n0nce", args.Get("amp_validate[nonce]"))
	require.Equal(t, "true", args.Get("amp_validate[omit_stylesheets]"))
	require.Equal(t, "0.25", args.Get("amp_validate[cache_bust]"))
	require.False(t, args.Has("amp-first"))
	require.False(t, args.Has("amp_validate[cache]"))

	args = wp.ValidateArgs(wp.ValidateRequest{AMPFirst: true, Cache: true, Nonce: "n0nce"})
	require.Equal(t, "true", args.Get("amp-first"))
	require.Equal(t, "true", args.Get("amp_validate[cache]"))
}

func TestClient_Validate_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/hello/", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("amp"))
		require.Equal(t, "n0nce", r.URL.Query().Get("amp_validate[nonce]"))
		require.Equal(t, "true", r.URL.Query().Get("amp_validate[cache]"))

		return jsonResponse(http.StatusOK, `{
			"revalidated": true,
			"validated_url_post": {"id": 42, "edit_link": "https://example.com/wp-admin/post.php?post=42"},
			"results": [
				{"sanitized": false, "error": {"code": "DISALLOWED_TAG", "node_name": "script", "node_type": 1,
				 "sources": [{"type": "plugin", "name": "foo/foo.php", "function": "foo_render"}, {"type": "theme", "name": "twentytwenty"}]}},
				{"error": {"code": "CSS_SYNTAX_INVALID", "sources": null}}
			],
			"url": "https://example.com/hello/"
		}`), nil
	})

	res, err := c.Validate(context.Background(), wp.ValidateRequest{
		URL:   "https://example.com/hello/?amp=1",
		Cache: true,
		Nonce: "n0nce",
	})
	require.NoError(t, err)
	require.True(t, res.Revalidated)
	require.NotNil(t, res.ValidatedURLPost)
	require.Equal(t, int64(42), res.ValidatedURLPost.ID)
	require.Len(t, res.ValidationErrors, 2)
	require.Equal(t, "DISALLOWED_TAG", res.ValidationErrors[0].Code)
	require.Equal(t, 1, res.ValidationErrors[0].NodeType)
	require.Equal(t, domain.SourceTypePlugin, res.ValidationErrors[0].Sources[0].Type)
	require.Equal(t, "foo_render", res.ValidationErrors[0].Sources[0].Function)
	require.Empty(t, res.ValidationErrors[1].Sources)
}

func TestClient_Validate_errorCode(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusForbidden, `{"code":"AMP_VALIDATE_INVALID_NONCE","message":"bad nonce"}`), nil
	})

	_, err := c.Validate(context.Background(), wp.ValidateRequest{URL: "https://example.com/", Nonce: "x"})
	var rerr *wp.ResponseError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, http.StatusForbidden, rerr.StatusCode)
	require.Equal(t, "AMP_VALIDATE_INVALID_NONCE", rerr.Code)
}

func TestClient_Validate_errorWithoutCode(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `<html>fatal error</html>`), nil
	})

	_, err := c.Validate(context.Background(), wp.ValidateRequest{URL: "https://example.com/", Nonce: "x"})
	var rerr *wp.ResponseError
	require.ErrorAs(t, err, &rerr)
	require.Empty(t, rerr.Code)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestClient_Validate_missingResults(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"revalidated": true}`), nil
	})

	_, err := c.Validate(context.Background(), wp.ValidateRequest{URL: "https://example.com/", Nonce: "x"})
	require.Error(t, err)

	var rerr *wp.ResponseError
	require.False(t, errors.As(err, &rerr))
}

func TestClient_Options_roundTrip(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/wp-json/amp/v1/options", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			return jsonResponse(http.StatusOK, `{"theme_support":"reader","supported_post_types":["post"]}`), nil
		case http.MethodPost:
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.JSONEq(t, `{"theme_support":"standard"}`, string(b))

			return jsonResponse(http.StatusOK, `{"theme_support":"standard","supported_post_types":["post"]}`), nil
		default:
			t.Fatalf("unexpected method %s", r.Method)

			return nil, nil
		}
	})

	opts, err := c.Options(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.ThemeSupportReader, opts.ThemeSupport())

	opts, err = c.UpdateOptions(context.Background(), domain.Options{"theme_support": "standard"})
	require.NoError(t, err)
	require.Equal(t, domain.ThemeSupportStandard, opts.ThemeSupport())
	require.Equal(t, []any{"post"}, opts["supported_post_types"])
}
