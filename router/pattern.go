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

	"rivaas.dev/gemini"
)

// segment is one compiled pattern segment: either a literal compared
// exactly and case-sensitively, or a named parameter binding the raw
// segment text.
type segment struct {
	literal string
	param   string // non-empty marks a parameter segment
}

// pattern is a compiled route pattern. Compilation happens once at
// registration time; a compiled pattern is immutable.
type pattern struct {
	raw      string
	segments []segment
	params   int
}

// compilePattern compiles a pattern string into segments. Patterns are
// '/'-separated; a segment wrapped in braces, e.g. {name}, declares a named
// parameter. Parameter names must be unique within one pattern.
func compilePattern(raw string) (*pattern, error) {
	if raw == "" || raw[0] != '/' {
		return nil, fmt.Errorf("%w: %q must begin with '/'", ErrInvalidPattern, raw)
	}

	parts := gemini.SplitPath(raw)
	p := &pattern{raw: raw, segments: make([]segment, 0, len(parts))}
	var seen map[string]struct{}

	for _, part := range parts {
		name, ok := paramName(part)
		if !ok {
			p.segments = append(p.segments, segment{literal: part})
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, raw)
		}
		if seen == nil {
			seen = make(map[string]struct{})
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateParam, name, raw)
		}
		seen[name] = struct{}{}
		p.segments = append(p.segments, segment{param: name})
		p.params++
	}
	return p, nil
}

// paramName extracts the parameter name from a {name} segment.
func paramName(part string) (string, bool) {
	if len(part) >= 2 && strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
		return part[1 : len(part)-1], true
	}
	return "", false
}

// match matches the compiled pattern against a concrete path, given as the
// segment sequence produced by [gemini.SplitPath]. It succeeds only when
// the segment counts are equal, every literal matches exactly, and every
// parameter binds the corresponding raw segment. A failed match is not an
// error; it means "try the next entry".
func (p *pattern) match(segs []string) ([]gemini.Param, bool) {
	if len(segs) != len(p.segments) {
		return nil, false
	}
	var params []gemini.Param
	for i, s := range p.segments {
		if s.param == "" {
			if segs[i] != s.literal {
				return nil, false
			}
			continue
		}
		if params == nil {
			params = make([]gemini.Param, 0, p.params)
		}
		params = append(params, gemini.Param{Key: s.param, Value: segs[i]})
	}
	return params, true
}
