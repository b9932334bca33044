package controller

import (
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
)

// PprofRouter returns a router exposing net/http/pprof handlers at its root,
// including the named runtime profiles. Mount it under a debug path.
func PprofRouter() chi.Router {
	r := chi.NewRouter()

	r.Get("/", pprof.Index)
	r.Get("/cmdline", pprof.Cmdline)
	r.Get("/profile", pprof.Profile)
	r.Get("/symbol", pprof.Symbol)
	r.Post("/symbol", pprof.Symbol)
	r.Get("/trace", pprof.Trace)
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		r.Handle("/"+name, pprof.Handler(name))
	}

	return r
}
