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
	"fmt"
	"strings"
)

// Mount merges a subrouter's route table into r under the given prefix.
//
// The subrouter's entries are appended in their registration order, each
// with the prefix prepended using exactly one separator, and each sharing
// the original handler by reference. Mounting is a build-time operation;
// the same subrouter may be mounted under several prefixes, producing
// independent sets of entries.
//
// Example:
//
//	users := router.MustNew()
//	users.Handle("/{id}", showUser)
//
//	r.Mount("/users", users) // effective pattern: /users/{id}
func (r *Router) Mount(prefix string, sub *Router) {
	if sub == nil {
		return
	}
	prefix = normalizePrefix(prefix)

	sub.mu.Lock()
	merged := make([]entry, len(sub.entries))
	copy(merged, sub.entries)
	sub.mu.Unlock()

	for _, e := range merged {
		full := joinPattern(prefix, e.pattern.raw)
		p, err := compilePattern(full)
		if err != nil {
			// The child compiled on its own, so only the prefix can be at fault.
			panic(fmt.Errorf("router: Mount(%q): %w", prefix, err))
		}
		r.append(entry{pattern: p, handler: e.handler, handlerName: e.handlerName})
	}
}

// normalizePrefix forces a leading '/' and strips any trailing one.
func normalizePrefix(prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" || prefix[0] != '/' {
		prefix = "/" + prefix
	}
	return prefix
}

// joinPattern concatenates a normalized prefix and a child pattern with
// exactly one separator between them. A child pattern of "/" mounts at the
// prefix itself; a root prefix leaves the child pattern untouched.
func joinPattern(prefix, child string) string {
	if prefix == "/" {
		return child
	}
	if child == "/" {
		return prefix
	}
	return prefix + child
}
