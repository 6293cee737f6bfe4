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

import "errors"

var (
	// ErrInvalidPattern indicates a route pattern that does not start with
	// '/' or contains a malformed parameter segment.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrDuplicateParam indicates a parameter name repeated within one pattern.
	ErrDuplicateParam = errors.New("duplicate parameter name")

	// ErrNilHandler indicates a route registered without a handler.
	ErrNilHandler = errors.New("handler must not be nil")

	// ErrFrozen indicates a registration attempted after the route table
	// was frozen.
	ErrFrozen = errors.New("route table is frozen")

	// ErrNilResponse indicates a handler that returned neither a response
	// nor an error.
	ErrNilResponse = errors.New("handler returned nil response")
)
