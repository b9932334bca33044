// Package v1handler implements the v1 HTTP API of the scan service: the scan
// read model, scan start and cancel, the scan event stream and the site options.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sitescan/internal/sitescan"
	"sitescan/pkg/domain"
	"sitescan/pkg/logger"
	"sitescan/pkg/serrors"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// OptionsStore is the site options read and write model.
type OptionsStore interface {
	Snapshot() domain.OptionsSnapshot
	Update(updates domain.Options)
	Save(ctx context.Context) error
}

type Deps struct {
	Scanner sitescan.Scanner
	Options OptionsStore
}

type Options struct {
	// RequestTimeout bounds every request except the event stream. Zero disables it.
	RequestTimeout time.Duration
	// AllowedOrigin is matched against the Origin header of event stream upgrades.
	AllowedOrigin string
}

type Handler struct {
	deps     Deps
	opts     Options
	upgrader websocket.Upgrader
}

func New(deps Deps, opts Options) *Handler {
	h := &Handler{deps: deps, opts: opts}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// Routes returns the v1 router. Paths are relative to the mount point.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.withTimeout)

		r.Get("/scan", h.GetScan)
		r.Post("/scan/start", h.StartScan)
		r.Post("/scan/cancel", h.CancelScan)

		r.Get("/options", h.GetOptions)
		r.Patch("/options", h.UpdateOptions)
		r.Post("/options/save", h.SaveOptions)
	})

	// hijacked connections do not survive http.TimeoutHandler
	r.Get("/scan/events", h.ScanEvents)

	return r
}

func (h *Handler) withTimeout(next http.Handler) http.Handler {
	if h.opts.RequestTimeout <= 0 {
		return next
	}

	return http.TimeoutHandler(next, h.opts.RequestTimeout, `{"code":"TIMEOUT","message":"request timed out"}`)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.opts.AllowedOrigin == "" || h.opts.AllowedOrigin == "*" {
		return true
	}

	return origin == h.opts.AllowedOrigin
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorStatusCode pairs an ErrorResponse with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

type errorStatus struct {
	status  int
	message string
}

var errorStatuses = map[serrors.Kind]errorStatus{ //nolint: gochecknoglobals
	serrors.ErrBadRequest:    {http.StatusBadRequest, "bad request"},
	serrors.ErrNotFound:      {http.StatusNotFound, "resource not found"},
	serrors.ErrConflict:      {http.StatusConflict, "conflict"},
	serrors.ErrTimeout:       {http.StatusGatewayTimeout, "site timed out"},
	serrors.ErrUnavailable:   {http.StatusServiceUnavailable, "site unavailable"},
	serrors.ErrInvalidConfig: {http.StatusInternalServerError, "invalid configuration"},
}

// errorKinds fixes the order in which kinds matched only through errors.Is are tried.
var errorKinds = []serrors.Kind{ //nolint: gochecknoglobals
	serrors.ErrBadRequest,
	serrors.ErrNotFound,
	serrors.ErrConflict,
	serrors.ErrTimeout,
	serrors.ErrUnavailable,
	serrors.ErrInvalidConfig,
}

// kindOf returns the kind carried by err, falling back to kinds err only
// matches, such as site response errors.
func kindOf(err error) serrors.Kind {
	if k := serrors.KindOf(err); k != nil {
		return k
	}
	for _, k := range errorKinds {
		if errors.Is(err, k) {
			return k
		}
	}

	return nil
}

// NewError maps err to an HTTP status and body. Errors without a known kind
// are logged and reported as internal errors without their details.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	k := kindOf(err)
	if es, ok := errorStatuses[k]; ok {
		msg := es.message
		var serr *serrors.Error
		if errors.As(err, &serr) && serr.Message() != "" {
			msg = serr.Message()
		}

		return &ErrorStatusCode{
			StatusCode: es.status,
			Response:   ErrorResponse{Code: k.Error(), Message: msg},
		}
	}

	logger.Error(ctx, "request failed", zap.Error(err))

	return &ErrorStatusCode{
		StatusCode: http.StatusInternalServerError,
		Response:   ErrorResponse{Code: serrors.ErrInternal.Error(), Message: "internal error"},
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(r.Context(), w, res.StatusCode, res.Response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}
