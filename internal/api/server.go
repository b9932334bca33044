// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the site scan service.
package api

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"sitescan/internal/api/handler/v1handler"
	"sitescan/internal/config"
	"sitescan/pkg/controller"
	"sitescan/pkg/logger"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server.
// It is typically created from a config.Config via NewOptions.
// Zero durations fall back to the net/http defaults.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	// It does not apply to hijacked event stream connections.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds the handling of every v1 request except the event stream.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// AllowedOrigin is the CORS allowed origin. It also gates event stream upgrades.
	AllowedOrigin string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		AllowedOrigin:     cfg.HTTP.AllowedOrigin,
	}
}

type Deps struct {
	v1handler.Deps
}

// NewHandler returns the root handler of the service. It serves:
// - Prometheus metrics (MetricsPath)
// - the embedded OpenAPI v1 spec and Swagger UI
// - the v1 API under /v1
// - pprof endpoints for profiling
// wrapped with CORS and access logging middlewares.
func NewHandler(deps Deps, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(controller.WithLogger)
	r.Use(controller.WithCORS(opts.AllowedOrigin))

	// prometheus metrics server
	metricsPath := opts.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	r.Handle(metricsPath, promhttp.Handler())

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api
	v1 := v1handler.New(deps.Deps, v1handler.Options{
		RequestTimeout: opts.RequestTimeout,
		AllowedOrigin:  opts.AllowedOrigin,
	})
	r.Mount("/v1", v1.Routes())
	// v1 api swagger playground
	r.Handle("/v1/docs/*", v5emb.New(
		"Site Scan Service",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	// pprof
	r.Mount("/debug/pprof", controller.PprofRouter())

	return r
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// Connection and handler errors of the server are written to the logger of ctx.
func NewServer(ctx context.Context, deps Deps, opts Options) *http.Server {
	errorLog := slog.NewLogLogger(logger.Slog(ctx).Handler(), slog.LevelError)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           NewHandler(deps, opts),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
		ErrorLog:          errorLog,
	}
}
