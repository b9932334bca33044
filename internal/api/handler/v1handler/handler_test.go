package v1handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sitescan/internal/api/handler/v1handler"
	"sitescan/pkg/logger"
	"sitescan/pkg/serrors"
	"sitescan/pkg/wp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_KindSentinelDirect_NotFound(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), serrors.ErrNotFound)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), res.Response.Code)
	require.Equal(t, "resource not found", res.Response.Message)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	err := serrors.With(serrors.ErrBadRequest, "invalid payload: missing cache")
	res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Response.Code)
	require.Equal(t, "invalid payload: missing cache", res.Response.Message)
}

func TestNewError_SemanticWrap_Conflict(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	cause := errors.New("busy")
	err := fmt.Errorf("start: %w", serrors.Wrap(serrors.ErrConflict, cause, "scan is running"))
	res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusConflict, res.StatusCode)
	require.Equal(t, serrors.ErrConflict.Error(), res.Response.Code)
	// Should include provided message, not the cause
	require.Equal(t, "scan is running", res.Response.Message)
}

func TestNewError_SiteResponseError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	err := fmt.Errorf("could not save options: %w", &wp.ResponseError{StatusCode: http.StatusBadGateway})
	res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	require.Equal(t, serrors.ErrUnavailable.Error(), res.Response.Code)
	require.Equal(t, "site unavailable", res.Response.Message)
}

func TestNewError_InternalKind_GeneratesInternal(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), serrors.KindOnly(serrors.ErrInternal))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_ExplicitKindWinsOverCause(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	// The cause alone would match BAD_REQUEST.
	err := serrors.Wrap(serrors.ErrTimeout, &wp.ResponseError{StatusCode: http.StatusBadRequest}, "options request timed out")
	res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusGatewayTimeout, res.StatusCode)
	require.Equal(t, serrors.ErrTimeout.Error(), res.Response.Code)
	require.Equal(t, "options request timed out", res.Response.Message)
}
