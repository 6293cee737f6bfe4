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

	"rivaas.dev/gemini"
)

// NotFoundPattern is the sentinel route pattern reported to observability
// recorders when no route matched. Recorders should label metrics and
// traces with the route pattern, never the raw path, to bound cardinality.
const NotFoundPattern = "_not_found"

// ObservabilityRecorder receives lifecycle hooks around each dispatch.
// Implementations typically record metrics, open trace spans, or emit
// access logs.
//
// Lifecycle:
//  1. The router calls OnRequestStart before scanning the route table.
//     The returned context replaces the dispatch context, so enrichment
//     (e.g. a trace span) reaches the handler even for excluded requests.
//  2. The returned state token is opaque to the router. Returning nil
//     excludes the request: OnRequestEnd is skipped.
//  3. After the response is resolved — from a handler, the not-found
//     handler, or error conversion — the router calls OnRequestEnd with
//     the final status and the matched pattern ([NotFoundPattern] when
//     nothing matched).
//
// All methods must be safe for concurrent use.
type ObservabilityRecorder interface {
	// OnRequestStart is called before routing begins. It returns the
	// (possibly enriched) context and an opaque state token, or nil to
	// exclude the request from OnRequestEnd.
	OnRequestStart(ctx context.Context, req *gemini.Request) (context.Context, any)

	// OnRequestEnd is called once dispatch has resolved a response.
	// status is the final response status; routePattern is the matched
	// route pattern, suitable as a low-cardinality label.
	OnRequestEnd(ctx context.Context, state any, status gemini.Status, routePattern string)
}
