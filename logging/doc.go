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

// Package logging provides structured logging for Gemini services built on
// log/slog.
//
// A [Logger] carries service identity (name, version, environment) on every
// entry and supports three output formats: JSON for production aggregation,
// key=value text, and a colored console format for development.
//
// Basic usage:
//
//	log := logging.MustNew(
//	    logging.WithServiceName("capsule"),
//	    logging.WithServiceVersion("1.2.0"),
//	)
//	log.Info("listening", "address", ":1965")
//
// [Logger.LogRequest] writes one access-log line per completed request with
// the status code, category, matched route pattern, and duration.
// [ContextLogger] adds OpenTelemetry trace correlation for handlers running
// under an active span.
package logging
