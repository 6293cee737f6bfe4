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

package metrics

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/gemini"
	"rivaas.dev/gemini/router"
)

// Recorder plugs into the router via router.WithObservability.
var _ router.ObservabilityRecorder = (*Recorder)(nil)

// requestState carries timing from OnRequestStart to OnRequestEnd.
type requestState struct {
	start time.Time
}

// OnRequestStart marks a request in flight and returns the timing state
// consumed by [Recorder.OnRequestEnd].
func (r *Recorder) OnRequestStart(ctx context.Context, _ *gemini.Request) (context.Context, any) {
	if r.isShuttingDown.Load() {
		return ctx, nil
	}
	r.activeRequests.Add(ctx, 1, metric.WithAttributes(r.serviceAttrs...))
	return ctx, &requestState{start: time.Now()}
}

// OnRequestEnd records the request counter and duration histogram labeled
// with the matched route pattern and response status. The route pattern is
// the label, never the raw path, so cardinality stays bounded by the route
// table.
func (r *Recorder) OnRequestEnd(ctx context.Context, state any, status gemini.Status, routePattern string) {
	st, ok := state.(*requestState)
	if !ok {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(r.serviceAttrs)+3)
	attrs = append(attrs, r.serviceAttrs...)
	attrs = append(attrs,
		attribute.String("gemini.route", routePattern),
		attribute.String("gemini.status", strconv.Itoa(int(status))),
		attribute.String("gemini.status.category", status.Category().String()),
	)

	opt := metric.WithAttributes(attrs...)
	r.requestCount.Add(ctx, 1, opt)
	r.requestDuration.Record(ctx, time.Since(st.start).Seconds(), opt)
	r.activeRequests.Add(ctx, -1, metric.WithAttributes(r.serviceAttrs...))
}
