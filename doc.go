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

// Package gemini implements the data model and wire framing of the Gemini
// protocol: a one-shot, TLS-only text protocol where the client sends a
// single absolute URL line and the server answers with one status line
// followed by an optional body, after which the connection closes.
//
// The package covers the protocol layer only:
//
//   - [ParseRequest] turns one raw request line (plus the transport-supplied
//     client-certificate [Identity], if any) into an immutable [Request].
//   - [Response] carries a status code, a meta line, and an optional body.
//     Category constructors such as [Success], [NotFound], and [Redirect]
//     enforce the protocol's central invariant at construction time: a body
//     is present if and only if the status is in the success category, and
//     the meta line is never empty.
//   - [Response.WriteTo] encodes a response into its wire form; [ReadResponse]
//     decodes one, enabling client-side use and round-trip testing.
//
// Routing lives in rivaas.dev/gemini/router and the TLS transport in
// rivaas.dev/gemini/server.
//
// # Status codes
//
// Gemini status codes are two-digit integers in [10, 69], grouped by their
// tens digit into categories: input (1x), success (2x), redirect (3x),
// temporary failure (4x), permanent failure (5x), and certificate
// required (6x). The meta line's meaning depends on the category: a prompt
// for input, a media type for success, a target URL for redirects, and a
// human-readable message otherwise.
//
// # Example
//
//	req, err := gemini.ParseRequest([]byte("gemini://example.org/hello\r\n"), nil)
//	if err != nil {
//	    // respond with gemini.BadRequest("") — never dispatch
//	}
//	resp, _ := gemini.Gemtext("# Hello\n")
//	resp.WriteTo(conn)
package gemini
