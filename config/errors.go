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

package config

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions other than
	// .yaml, .yml, and .toml.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrEmptyAddress is returned when the server listen address is empty.
	ErrEmptyAddress = errors.New("server address cannot be empty")

	// ErrPartialCertPair is returned when only one of cert_file and
	// key_file is set.
	ErrPartialCertPair = errors.New("cert_file and key_file must be set together")

	// ErrInvalidLogLevel is returned for an unrecognized logging level.
	ErrInvalidLogLevel = errors.New("invalid logging level")

	// ErrInvalidLogFormat is returned for an unrecognized logging format.
	ErrInvalidLogFormat = errors.New("invalid logging format")

	// ErrEmptyMetricsAddress is returned when metrics are enabled without
	// a scrape server address.
	ErrEmptyMetricsAddress = errors.New("metrics address cannot be empty")

	// ErrEmptyMetricsPath is returned when metrics are enabled without a
	// scrape endpoint path.
	ErrEmptyMetricsPath = errors.New("metrics path cannot be empty")
)
