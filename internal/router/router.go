// Package router layers middleware chains and route groups over the
// method-aware http.ServeMux.
package router

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// table is shared by a router and all of its groups.
type table struct {
	mux *http.ServeMux

	mu     sync.Mutex
	routes []string
}

// Router registers "METHOD /pattern" routes on a shared mux. Each route is
// wrapped in the router's chain followed by any route-level middleware.
type Router struct {
	t     *table
	chain []Middleware
}

// New returns a Router whose chain starts with mw.
func New(mw ...Middleware) *Router {
	return &Router{
		t:     &table{mux: http.NewServeMux()},
		chain: mw,
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.t.mux.ServeHTTP(w, req)
}

func (r *Router) Get(pattern string, h http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodGet, pattern, h, mw...)
}

func (r *Router) Post(pattern string, h http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPost, pattern, h, mw...)
}

func (r *Router) Put(pattern string, h http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPut, pattern, h, mw...)
}

func (r *Router) Delete(pattern string, h http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodDelete, pattern, h, mw...)
}

// Handle registers h for method and pattern. Nil route middleware is skipped,
// so optional limiters can be passed unconditionally.
func (r *Router) Handle(method, pattern string, h http.Handler, mw ...Middleware) {
	route := method + " " + pattern
	r.t.mux.Handle(route, r.wrap(h, mw))

	r.t.mu.Lock()
	r.t.routes = append(r.t.routes, route)
	r.t.mu.Unlock()
}

// Group returns a router on the same mux whose chain extends this one.
func (r *Router) Group(mw ...Middleware) *Router {
	return &Router{t: r.t, chain: append(slices.Clone(r.chain), mw...)}
}

// Use appends to the chain of routes registered afterwards.
func (r *Router) Use(mw ...Middleware) {
	r.chain = append(r.chain, mw...)
}

// Routes lists the registered routes in registration order.
func (r *Router) Routes() []string {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return slices.Clone(r.t.routes)
}

// Fallback answers every unmatched request with a JSON 404 through the
// router's chain, so CORS preflights and request logging still apply.
// Register it after the global middleware.
func (r *Router) Fallback() {
	r.t.mux.Handle("/", r.wrap(http.HandlerFunc(notFound), nil))
}

// wrap applies the chain outermost first, then route middleware.
func (r *Router) wrap(h http.Handler, mw []Middleware) http.Handler {
	all := append(slices.Clone(r.chain), mw...)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i] != nil {
			h = all[i](h)
		}
	}
	return h
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "Route not found",
	})
}
