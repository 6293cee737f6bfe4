// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"rivaas.dev/gemini"
)

// HandlerFunc handles one dispatched request. The context carries the
// transport's cancellation signal (connection close, deadline); handlers
// that perform their own I/O should honor it. A handler either returns a
// valid response or an error; it never does both.
type HandlerFunc func(ctx context.Context, req *gemini.Request) (*gemini.Response, error)

// DiagnosticFunc receives handler failures the router converts into
// generic status-50 responses. The underlying cause is surfaced here only;
// it is never reflected to the client.
type DiagnosticFunc func(req *gemini.Request, err error)

// entry pairs a compiled pattern with its handler. Entries are matched in
// registration order; the first match wins.
type entry struct {
	pattern     *pattern
	handler     HandlerFunc
	handlerName string
}

// Router holds an ordered route table and dispatches requests against it.
//
// Registration ([Router.Handle], [Router.Mount]) happens during startup.
// [Router.Freeze] finalizes the table; afterwards it is read-only and any
// number of goroutines may dispatch concurrently without synchronization.
// Dispatching through an unfrozen router freezes it implicitly.
//
// Example:
//
//	r := router.MustNew()
//	r.Handle("/hello/{name}", func(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
//	    return gemini.Gemtext("# Hi " + req.Param("name"))
//	})
//	r.Freeze()
type Router struct {
	mu      sync.Mutex // guards entries until frozen
	entries []entry

	frozen     atomic.Bool
	freezeOnce sync.Once

	notFound   HandlerFunc
	recorder   ObservabilityRecorder
	diagnostic DiagnosticFunc
}

// Option configures a Router at construction time.
type Option func(*Router)

// WithNotFound replaces the default status-51 handler invoked when no
// pattern matches.
func WithNotFound(h HandlerFunc) Option {
	return func(r *Router) { r.notFound = h }
}

// WithDiagnostics sets the diagnostic hook receiving handler failures.
// The router works correctly whether diagnostics are collected or not.
//
// Example with logging:
//
//	r := router.MustNew(router.WithDiagnostics(func(req *gemini.Request, err error) {
//	    slog.Error("handler failed", "url", req.RawURL, "err", err)
//	}))
func WithDiagnostics(fn DiagnosticFunc) Option {
	return func(r *Router) { r.diagnostic = fn }
}

// WithObservability sets the recorder notified around each dispatch.
// See [ObservabilityRecorder] for lifecycle details.
func WithObservability(rec ObservabilityRecorder) Option {
	return func(r *Router) { r.recorder = rec }
}

// New creates a Router with the given options.
func New(opts ...Option) (*Router, error) {
	r := &Router{notFound: defaultNotFound}
	for _, opt := range opts {
		opt(r)
	}
	if r.notFound == nil {
		return nil, fmt.Errorf("router: %w", ErrNilHandler)
	}
	return r, nil
}

// MustNew creates a Router or panics on error.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic("router initialization failed: " + err.Error())
	}
	return r
}

// defaultNotFound answers 51 for paths no pattern matches.
func defaultNotFound(context.Context, *gemini.Request) (*gemini.Response, error) {
	return gemini.NotFound(""), nil
}

// Handle registers a handler for a route pattern. Patterns are matched in
// registration order; when several patterns match the same path, the one
// registered first wins regardless of specificity.
//
// Handle panics on a malformed pattern, a duplicated parameter name, a nil
// handler, or registration after [Router.Freeze]; all of these are
// programming errors caught at startup.
func (r *Router) Handle(routePattern string, handler HandlerFunc) {
	if handler == nil {
		panic(fmt.Errorf("router: Handle(%q): %w", routePattern, ErrNilHandler))
	}
	p, err := compilePattern(routePattern)
	if err != nil {
		panic(fmt.Errorf("router: Handle: %w", err))
	}
	r.append(entry{pattern: p, handler: handler, handlerName: handlerName(handler)})
}

// append adds an entry to the table, enforcing the freeze barrier.
func (r *Router) append(e entry) {
	if r.frozen.Load() {
		panic(fmt.Errorf("router: Handle(%q): %w", e.pattern.raw, ErrFrozen))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Freeze finalizes the route table. It is idempotent and safe to call
// concurrently; after the first call the table is immutable and lock-free
// to read.
func (r *Router) Freeze() {
	r.freezeOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.frozen.Store(true)
	})
}

// Frozen reports whether the route table has been finalized.
func (r *Router) Frozen() bool {
	return r.frozen.Load()
}

// Dispatch resolves and handles one request against the frozen route
// table. It always produces a well-formed response:
//
//   - no pattern matches → the not-found handler (51 by default), with no
//     route handler invoked;
//   - the first matching entry's handler runs with the request's path
//     parameters populated from the match;
//   - a handler that fails, panics, or returns a nil or invariant-violating
//     response yields a generic 50, with the cause reported to the
//     diagnostic hook only.
func (r *Router) Dispatch(ctx context.Context, req *gemini.Request) *gemini.Response {
	r.Freeze()

	var state any
	if r.recorder != nil {
		ctx, state = r.recorder.OnRequestStart(ctx, req)
	}

	resp, routePattern := r.dispatch(ctx, req)

	if r.recorder != nil && state != nil {
		r.recorder.OnRequestEnd(ctx, state, resp.Status(), routePattern)
	}
	return resp
}

// dispatch scans the table in registration order and returns the response
// plus the matched pattern ([NotFoundPattern] when nothing matched).
func (r *Router) dispatch(ctx context.Context, req *gemini.Request) (*gemini.Response, string) {
	segs := req.Segments()
	for i := range r.entries {
		e := &r.entries[i]
		params, ok := e.pattern.match(segs)
		if !ok {
			continue
		}
		req.SetParams(params)
		req.SetRoutePattern(e.pattern.raw)
		return r.invoke(ctx, e.handler, req), e.pattern.raw
	}
	req.SetRoutePattern(NotFoundPattern)
	return r.invoke(ctx, r.notFound, req), NotFoundPattern
}

// invoke runs a handler, converting every failure mode into a generic 50.
func (r *Router) invoke(ctx context.Context, h HandlerFunc, req *gemini.Request) (resp *gemini.Response) {
	defer func() {
		if v := recover(); v != nil {
			r.diagnose(req, fmt.Errorf("handler panic: %v", v))
			resp = internalError()
		}
	}()

	resp, err := h(ctx, req)
	switch {
	case err != nil:
		r.diagnose(req, err)
		return internalError()
	case resp == nil:
		r.diagnose(req, ErrNilResponse)
		return internalError()
	}
	if err := resp.Validate(); err != nil {
		r.diagnose(req, fmt.Errorf("invalid handler response: %w", err))
		return internalError()
	}
	return resp
}

// diagnose reports a handler failure to the diagnostic hook, if set.
func (r *Router) diagnose(req *gemini.Request, err error) {
	if r.diagnostic != nil {
		r.diagnostic(req, err)
	}
}

// internalError is the generic client-facing 50; the cause stays with the
// diagnostic hook.
func internalError() *gemini.Response {
	return gemini.PermanentFailure("Internal Server Error")
}
