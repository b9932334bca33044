// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Adds CORS headers for a configured origin and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//
// Provided helpers:
//   - PprofRouter: Returns a router exposing net/http/pprof handlers.
package controller
