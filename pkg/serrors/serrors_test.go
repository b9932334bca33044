package serrors_test

import (
	"errors"
	"fmt"
	"sitescan/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
		serrors.ErrTimeout,
		serrors.ErrUnavailable,
		serrors.ErrInvalidConfig,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}

	// Ensure some expected inequalities
	require.NotEqual(t, serrors.ErrNotFound, serrors.ErrConflict, "NotFound should not equal Conflict")
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	e1 := serrors.With(serrors.ErrNotFound, "url %d not found", 42)
	require.Equal(t, "url 42 not found", e1.Error(), "With() Error() mismatch")

	e2 := serrors.Wrap(serrors.ErrUnavailable, base, "fetching scannable urls")
	require.Equal(t, "fetching scannable urls: connection refused", e2.Error(), "Wrap() Error() mismatch")

	e3 := serrors.KindOnly(serrors.ErrNotFound)
	require.Equal(t, "NOT_FOUND", e3.Error(), "KindOnly Error() mismatch")
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	require.ErrorIs(t, e, serrors.ErrNotFound)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrInvalidConfig, "errors.Is should not match a different kind")
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	var k serrors.Kind
	require.ErrorAs(t, e, &k, "errors.As should extract Kind")
	require.Equal(t, serrors.ErrNotFound, k)

	var ce *customError
	require.ErrorAs(t, e, &ce, "errors.As should extract wrapped error type")
	require.Equal(t, base, ce, "extracted cause pointer mismatch")
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrInvalidConfig, base, "missing nonce")
	require.Equal(t, serrors.ErrInvalidConfig, e.Kind())
	require.Equal(t, "missing nonce", e.Message())
	require.Equal(t, base, e.Cause())
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("starting session: %w", serrors.With(serrors.ErrInvalidConfig, "validate nonce is required"))
	require.Equal(t, serrors.ErrInvalidConfig, serrors.KindOf(err))
	require.Nil(t, serrors.KindOf(errors.New("plain")))
}
