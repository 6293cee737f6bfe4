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

import (
	"strings"

	"github.com/spf13/cast"
)

// EnvPrefix is the prefix recognized on environment overrides.
const EnvPrefix = "GEMINI_"

// envKeys maps environment variable suffixes to config paths. The mapping
// is explicit because field names themselves contain underscores
// (CERT_FILE), which a split-on-underscore scheme would misparse.
var envKeys = map[string][2]string{
	"SERVER_ADDRESS":       {"server", "address"},
	"SERVER_HOSTNAME":      {"server", "hostname"},
	"SERVER_CERT_FILE":     {"server", "cert_file"},
	"SERVER_KEY_FILE":      {"server", "key_file"},
	"SERVER_READ_TIMEOUT":  {"server", "read_timeout"},
	"SERVER_WRITE_TIMEOUT": {"server", "write_timeout"},
	"LOGGING_LEVEL":        {"logging", "level"},
	"LOGGING_FORMAT":       {"logging", "format"},
	"METRICS_ENABLED":      {"metrics", "enabled"},
	"METRICS_ADDRESS":      {"metrics", "address"},
	"METRICS_PATH":         {"metrics", "path"},
}

// envOverrides extracts GEMINI_* variables from an os.Environ-style slice
// into a nested value map. Unknown GEMINI_* variables are ignored.
func envOverrides(environ []string) map[string]any {
	values := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		path, known := envKeys[strings.TrimPrefix(key, EnvPrefix)]
		if !known {
			continue
		}

		section, _ := values[path[0]].(map[string]any)
		if section == nil {
			section = map[string]any{}
			values[path[0]] = section
		}
		if path[1] == "enabled" {
			section[path[1]] = cast.ToBool(value)
		} else {
			section[path[1]] = value
		}
	}
	return values
}
