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
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterName identifies this instrumentation scope.
const meterName = "rivaas.dev/gemini/metrics"

// DefaultDurationBuckets are histogram boundaries for request duration in
// seconds. Gemini handlers are typically fast; the range still covers slow
// CGI-style responses.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Recorder collects per-request metrics and optionally exposes them on a
// Prometheus scrape endpoint served next to the Gemini listener. All
// methods are safe for concurrent use.
//
// The global OpenTelemetry meter provider is left untouched unless
// [WithGlobalMeterProvider] is given, so several Recorder instances can
// coexist in one process.
type Recorder struct {
	meter              metric.Meter
	meterProvider      metric.MeterProvider
	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler
	server             *http.Server

	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	activeRequests  metric.Int64UpDownCounter

	serviceName    string
	serviceVersion string
	serverAddress  string
	path           string

	durationBuckets []float64
	logger          *slog.Logger

	customProvider bool
	registerGlobal bool
	serveMetrics   bool

	serverMu       sync.Mutex
	isStarted      atomic.Bool
	isShuttingDown atomic.Bool

	serviceAttrs []attribute.KeyValue
}

// Option configures a Recorder at construction time.
type Option func(*Recorder)

func newDefaultRecorder() *Recorder {
	return &Recorder{
		serviceName:     "gemini",
		serviceVersion:  "unknown",
		serverAddress:   ":9090",
		path:            "/metrics",
		durationBuckets: DefaultDurationBuckets,
		serveMetrics:    true,
	}
}

// New creates a Recorder with the given options.
func New(opts ...Option) (*Recorder, error) {
	r := newDefaultRecorder()
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	r.serviceAttrs = []attribute.KeyValue{
		attribute.String("service.name", r.serviceName),
		attribute.String("service.version", r.serviceVersion),
	}
	if err := r.initProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return r, nil
}

// MustNew creates a Recorder or panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic("metrics initialization failed: " + err.Error())
	}
	return r
}

func (r *Recorder) validate() error {
	if r.serviceName == "" {
		return ErrEmptyServiceName
	}
	if r.customProvider && r.meterProvider == nil {
		return ErrNilMeterProvider
	}
	if r.serveMetrics && !r.customProvider {
		if r.serverAddress == "" {
			return ErrEmptyServerAddress
		}
		if r.path == "" {
			return ErrEmptyPath
		}
	}
	return nil
}

// initProvider wires the meter provider and creates the instruments.
// Without a custom provider, a Prometheus exporter backed by a private
// registry keeps this Recorder isolated from the global one.
func (r *Recorder) initProvider() error {
	if r.customProvider {
		r.meter = r.meterProvider.Meter(meterName)
		return r.initInstruments()
	}

	r.prometheusRegistry = promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(r.prometheusRegistry))
	if err != nil {
		return fmt.Errorf("prometheus exporter: %w", err)
	}
	r.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	r.prometheusHandler = promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{})

	if r.registerGlobal {
		otel.SetMeterProvider(r.meterProvider)
	}

	r.meter = r.meterProvider.Meter(meterName)
	return r.initInstruments()
}

func (r *Recorder) initInstruments() error {
	var err error

	r.requestCount, err = r.meter.Int64Counter("gemini.requests",
		metric.WithDescription("Total Gemini requests dispatched"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("requests counter: %w", err)
	}

	r.requestDuration, err = r.meter.Float64Histogram("gemini.request.duration",
		metric.WithDescription("Gemini request duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("duration histogram: %w", err)
	}

	r.activeRequests, err = r.meter.Int64UpDownCounter("gemini.requests.active",
		metric.WithDescription("Gemini requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("active requests counter: %w", err)
	}

	return nil
}

// Handler returns the Prometheus scrape [http.Handler]. It is available
// only when the Recorder manages its own Prometheus exporter.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.prometheusHandler == nil {
		return nil, ErrNoPrometheusHandler
	}
	return r.prometheusHandler, nil
}

// ServerAddress returns the scrape server's listen address, or "" when the
// server is disabled.
func (r *Recorder) ServerAddress() string {
	if !r.serveMetrics || r.prometheusHandler == nil {
		return ""
	}
	return r.serverAddress
}

// Path returns the scrape endpoint path, or "" when the server is disabled.
func (r *Recorder) Path() string {
	if !r.serveMetrics || r.prometheusHandler == nil {
		return ""
	}
	return r.path
}

// Provider names the active exporter, for startup reporting.
func (r *Recorder) Provider() string {
	if r.customProvider {
		return "custom"
	}
	return "prometheus"
}

// ServiceName returns the configured service name.
func (r *Recorder) ServiceName() string { return r.serviceName }

// ServiceVersion returns the configured service version.
func (r *Recorder) ServiceVersion() string { return r.serviceVersion }

// Start launches the scrape server, when enabled. Idempotent.
func (r *Recorder) Start(_ context.Context) error {
	if !r.isStarted.CompareAndSwap(false, true) {
		return nil
	}
	if !r.serveMetrics || r.prometheusHandler == nil {
		return nil
	}
	if r.isShuttingDown.Load() {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(r.path, r.prometheusHandler)

	server := &http.Server{
		Addr:         r.serverAddress,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	r.serverMu.Lock()
	r.server = server
	r.serverMu.Unlock()

	go func() {
		r.logf("metrics server starting", "address", r.serverAddress, "path", r.path)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.serverMu.Lock()
			r.server = nil
			r.serverMu.Unlock()
			if r.logger != nil {
				r.logger.Error("metrics server error", "error", err)
			}
		}
	}()

	return nil
}

// Shutdown stops the scrape server and shuts down the SDK meter provider.
// A user-provided meter provider is left for its owner to manage.
// Idempotent.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.isShuttingDown.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error

	r.serverMu.Lock()
	server := r.server
	r.server = nil
	r.serverMu.Unlock()

	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if !r.customProvider {
		if mp, ok := r.meterProvider.(*sdkmetric.MeterProvider); ok {
			if err := mp.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

func (r *Recorder) logf(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}
