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

import "errors"

var (
	// ErrEmptyServiceName is returned when the service name is empty.
	ErrEmptyServiceName = errors.New("service name cannot be empty")

	// ErrNilMeterProvider is returned when WithMeterProvider is given nil.
	ErrNilMeterProvider = errors.New("meter provider cannot be nil")

	// ErrEmptyServerAddress is returned when the scrape server address is empty.
	ErrEmptyServerAddress = errors.New("server address cannot be empty")

	// ErrEmptyPath is returned when the scrape endpoint path is empty.
	ErrEmptyPath = errors.New("metrics path cannot be empty")

	// ErrNoPrometheusHandler is returned by Handler when the Recorder does
	// not manage its own Prometheus exporter.
	ErrNoPrometheusHandler = errors.New("prometheus handler not available")
)
