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

// Package router matches Gemini request paths against an ordered table of
// route patterns and dispatches to handlers.
//
// # Patterns
//
// A pattern is a '/'-separated sequence of segments. A segment wrapped in
// braces declares a named parameter that binds the raw text of the
// corresponding path segment; every other segment is a literal compared
// exactly and case-sensitively:
//
//	/hello/{name}        matches /hello/alice   with name=alice
//	/users/{id}/posts    matches /users/7/posts with id=7
//
// Matching requires equal segment counts: there are no wildcards and no
// trailing-slash elision, so /hello and /hello/ are distinct paths.
// Parameter names must be unique within one pattern; a violation panics at
// registration time.
//
// # Ordering
//
// The table is scanned in registration order and the first match wins.
// When two patterns both match a path, the earlier registration is
// selected regardless of specificity — ordering is the only tie-break.
//
// # Composition
//
// [Router.Mount] flattens a subrouter's table into the parent under a
// prefix, preserving the child's order and sharing handlers by reference:
//
//	users := router.MustNew()
//	users.Handle("/{id}", showUser)
//	r.Mount("/users", users) // /users/{id}
//
// # Lifecycle
//
// Registration happens at startup; [Router.Freeze] finalizes the table.
// A frozen table is immutable, so any number of goroutines dispatch
// concurrently without synchronization. Handler failures — returned
// errors, panics, nil or invariant-violating responses — become a generic
// status-50 response; causes are reported only to the [WithDiagnostics]
// hook, never to clients.
package router
