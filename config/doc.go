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

// Package config loads Gemini service configuration from three layers:
// built-in defaults, an optional YAML or TOML file, and GEMINI_*
// environment variables. Later layers override earlier ones.
//
//	cfg, err := config.Load("capsule.yaml")
//
// A minimal file:
//
//	server:
//	  address: ":1965"
//	  cert_file: "/etc/capsule/cert.pem"
//	  key_file: "/etc/capsule/key.pem"
//	logging:
//	  level: debug
//	  format: console
//	metrics:
//	  enabled: true
//
// The same keys are reachable through the environment, for example
// GEMINI_SERVER_ADDRESS or GEMINI_METRICS_ENABLED.
package config
