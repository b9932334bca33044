package domain_test

import (
	"encoding/json"
	"sitescan/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanError_JSON(t *testing.T) {
	b, err := json.Marshal(domain.ScannableURL{URL: "https://a", Error: domain.GenericScanError()})
	require.NoError(t, err)
	require.JSONEq(t, `{"url":"https://a","amp_url":"","type":"","label":"","error":true}`, string(b))

	b, err = json.Marshal(domain.ScannableURL{URL: "https://a", Error: &domain.ScanError{Code: "http_request_failed"}})
	require.NoError(t, err)
	require.JSONEq(t, `{"url":"https://a","amp_url":"","type":"","label":"","error":"http_request_failed"}`, string(b))

	var u domain.ScannableURL
	require.NoError(t, json.Unmarshal([]byte(`{"url":"https://b","error":"rest_forbidden"}`), &u))
	require.True(t, u.Failed())
	require.Equal(t, "rest_forbidden", u.Error.Code)

	require.NoError(t, json.Unmarshal([]byte(`{"url":"https://b","error":true}`), &u))
	require.True(t, u.Failed())
	require.Empty(t, u.Error.Code)

	require.Error(t, json.Unmarshal([]byte(`{"url":"https://b","error":42}`), &u))
}

func TestScannableURL_Address(t *testing.T) {
	u := domain.ScannableURL{URL: "https://example.com/", AMPURL: "https://example.com/?amp=1"}
	require.Equal(t, "https://example.com/", u.Address(true))
	require.Equal(t, "https://example.com/?amp=1", u.Address(false))
}

func TestOptions_ThemeSupport(t *testing.T) {
	o := domain.Options{domain.OptionThemeSupport: "reader"}
	require.Equal(t, domain.ThemeSupportReader, o.ThemeSupport())
	require.Equal(t, domain.ThemeSupport(""), domain.Options{}.ThemeSupport())

	c := o.Clone()
	c[domain.OptionThemeSupport] = "standard"
	require.Equal(t, domain.ThemeSupportReader, o.ThemeSupport(), "clone must not alias")
}
