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

package gemini

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// MaxRequestBytes is the maximum size of a request line in bytes,
// including the CRLF terminator.
const MaxRequestBytes = 1024

var (
	// ErrRequestTooLong indicates the request line exceeds [MaxRequestBytes].
	ErrRequestTooLong = errors.New("request line exceeds 1024 bytes")

	// ErrMissingTerminator indicates the request line is not CRLF-terminated.
	ErrMissingTerminator = errors.New("request line missing CRLF terminator")

	// ErrInvalidURL indicates the request line is not a parseable URL.
	ErrInvalidURL = errors.New("invalid request URL")

	// ErrMissingScheme indicates the request URL has no scheme.
	ErrMissingScheme = errors.New("request URL missing scheme")

	// ErrMissingHost indicates the request URL has no host.
	ErrMissingHost = errors.New("request URL missing host")
)

// Identity is the opaque client-certificate identity handed up by the
// transport layer after the TLS handshake. The core never validates it;
// handlers decide whether to require or trust it.
type Identity struct {
	// Fingerprint is the hex-encoded SHA-256 digest of the raw certificate.
	Fingerprint string

	// Subject is the certificate's subject distinguished name.
	Subject string
}

// Param is a single named path parameter bound during route matching.
type Param struct {
	Key   string
	Value string
}

// Request is one parsed Gemini request. It is created once per connection
// by [ParseRequest] and never mutated afterwards, except that the router
// installs the matched path parameters exactly once before invoking the
// handler.
type Request struct {
	// RawURL is the request line as received, without the CRLF terminator.
	RawURL string

	// URL is the parsed absolute request URL.
	URL *url.URL

	// Identity is the client-certificate identity, or nil when the client
	// presented no certificate.
	Identity *Identity

	segments     []string
	params       []Param
	routePattern string
}

// ParseRequest parses one raw request line into a Request. The line must be
// at most [MaxRequestBytes] bytes including its CRLF terminator and must
// contain an absolute URL. identity may be nil.
//
// On failure the returned error wraps one of [ErrRequestTooLong],
// [ErrMissingTerminator], [ErrInvalidURL], [ErrMissingScheme], or
// [ErrMissingHost]; the caller must answer with a status-59 response and
// must not dispatch the request.
func ParseRequest(line []byte, identity *Identity) (*Request, error) {
	if len(line) > MaxRequestBytes {
		return nil, fmt.Errorf("%w: got %d bytes", ErrRequestTooLong, len(line))
	}
	raw, ok := strings.CutSuffix(string(line), "\r\n")
	if !ok {
		return nil, ErrMissingTerminator
	}
	if strings.ContainsAny(raw, "\r\n") {
		return nil, fmt.Errorf("%w: embedded line terminator", ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingScheme, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingHost, raw)
	}

	return &Request{
		RawURL:   raw,
		URL:      u,
		Identity: identity,
		segments: SplitPath(u.Path),
	}, nil
}

// SplitPath splits a URL path into its matching segments. An empty path is
// treated as "/". A trailing slash produces a trailing empty segment, so
// "/a/" and "/a" are distinct concrete paths.
func SplitPath(path string) []string {
	if path == "" {
		path = "/"
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// Path returns the URL path, normalized to "/" when empty.
func (r *Request) Path() string {
	if r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}

// Segments returns the path split into matching segments. The returned
// slice must not be modified.
func (r *Request) Segments() []string {
	return r.segments
}

// Query returns the parsed query string values.
func (r *Request) Query() url.Values {
	return r.URL.Query()
}

// SetParams installs the path parameters extracted by the route matcher.
// The router calls it exactly once, before the handler runs; handlers must
// treat the request as read-only.
func (r *Request) SetParams(params []Param) {
	r.params = params
}

// Params returns the bound path parameters in pattern order.
func (r *Request) Params() []Param {
	return r.params
}

// SetRoutePattern records which route pattern the request resolved to.
// The router calls it once per dispatch; transports read it back for
// access logging.
func (r *Request) SetRoutePattern(p string) {
	r.routePattern = p
}

// RoutePattern returns the matched route pattern, or "" before dispatch.
func (r *Request) RoutePattern() string {
	return r.routePattern
}

// Param returns the value of the named path parameter, or "" if the
// pattern that matched has no such parameter.
func (r *Request) Param(name string) string {
	for _, p := range r.params {
		if p.Key == name {
			return p.Value
		}
	}
	return ""
}
