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
	"reflect"
	"runtime"
	"strings"
)

// RouteInfo describes one registered route for introspection: startup
// banners, tooling, and tests. The order matches the table's match order.
type RouteInfo struct {
	// Pattern is the effective route pattern, including any mount prefixes.
	Pattern string

	// HandlerName is the registered handler's function name, without the
	// package path.
	HandlerName string
}

// Routes returns the route table in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]RouteInfo, len(r.entries))
	for i, e := range r.entries {
		infos[i] = RouteInfo{Pattern: e.pattern.raw, HandlerName: e.handlerName}
	}
	return infos
}

// handlerName resolves a handler's function name for introspection.
func handlerName(h HandlerFunc) string {
	if h == nil {
		return ""
	}
	name := runtime.FuncForPC(reflect.ValueOf(h).Pointer()).Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
