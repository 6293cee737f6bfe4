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
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// WithServiceName sets the service.name attribute on all metrics.
func WithServiceName(name string) Option {
	return func(r *Recorder) { r.serviceName = name }
}

// WithServiceVersion sets the service.version attribute on all metrics.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) { r.serviceVersion = version }
}

// WithServerAddress sets the Prometheus scrape server's listen address
// (default ":9090").
func WithServerAddress(addr string) Option {
	return func(r *Recorder) { r.serverAddress = addr }
}

// WithPath sets the scrape endpoint path (default "/metrics").
func WithPath(path string) Option {
	return func(r *Recorder) { r.path = path }
}

// WithoutServer disables the built-in scrape server. Use
// [Recorder.Handler] to serve the endpoint elsewhere.
func WithoutServer() Option {
	return func(r *Recorder) { r.serveMetrics = false }
}

// WithMeterProvider uses a caller-managed meter provider instead of the
// built-in Prometheus exporter. The caller owns its lifecycle; Shutdown
// will not touch it.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.meterProvider = mp
		r.customProvider = true
		r.serveMetrics = false
	}
}

// WithGlobalMeterProvider registers the built-in provider as the global
// OpenTelemetry meter provider.
func WithGlobalMeterProvider() Option {
	return func(r *Recorder) { r.registerGlobal = true }
}

// WithDurationBuckets overrides the request duration histogram boundaries,
// in seconds.
func WithDurationBuckets(buckets []float64) Option {
	return func(r *Recorder) { r.durationBuckets = buckets }
}

// WithLogger sets the logger for scrape server lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) { r.logger = logger }
}
