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

// Package server runs a Gemini capsule over TLS.
//
// Gemini is a one-request-per-connection protocol: the client opens a TLS
// connection, sends a single CRLF-terminated URL line, and reads one
// response. The [Server] accepts connections, parses the request line,
// dispatches through a router.Router, and writes the encoded response.
//
// TLS notes: the listener requires TLS 1.2 or newer and requests, but
// never verifies, client certificates. A presented certificate reaches
// handlers as a gemini.Identity with its SHA-256 fingerprint, following
// the trust-on-first-use convention of the protocol.
//
// A malformed or oversized request line is answered with a bare status 59
// and the connection is closed without dispatching.
package server
