package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount wires a Dispatcher into a chi.Router at a single wildcard route.
// This is the only place in this package that imports chi — the core
// dispatcher consumes a standard request plus a route-info record, never
// the router itself.
func Mount(r chi.Router, prefix string, d *Dispatcher) {
	handler := func(w http.ResponseWriter, req *http.Request) {
		routePath := chi.URLParam(req, "*")
		d.Dispatch(w, req, routePath)
	}
	r.HandleFunc(prefix+"/*", handler)
}
