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

// Package metrics records per-request OpenTelemetry metrics for Gemini
// services and exposes them for Prometheus scraping.
//
// A [Recorder] implements the router's ObservabilityRecorder interface, so
// wiring is one option:
//
//	rec := metrics.MustNew(metrics.WithServiceName("capsule"))
//	r := router.MustNew(router.WithObservability(rec))
//
// Instruments:
//
//   - gemini.requests            counter, labeled by route, status, category
//   - gemini.request.duration    histogram in seconds, same labels
//   - gemini.requests.active     up/down counter of in-flight requests
//
// Metrics are served over HTTP on a side listener (default :9090/metrics)
// since the Gemini protocol itself has no place for a scrape endpoint. The
// exporter uses a private Prometheus registry; pass a caller-managed meter
// provider with [WithMeterProvider] to integrate with an existing pipeline.
package metrics
