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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// GemtextMediaType is the native Gemini document media type.
const GemtextMediaType = "text/gemini"

var (
	// ErrStatusRange indicates a status code outside [10, 69].
	ErrStatusRange = errors.New("status code must be in [10, 69]")

	// ErrEmptyMeta indicates an empty meta line; every category requires one.
	ErrEmptyMeta = errors.New("meta must not be empty")

	// ErrEmptyBody indicates a success response without a body.
	ErrEmptyBody = errors.New("success response requires a body")

	// ErrUnexpectedBody indicates a body on a non-success response.
	ErrUnexpectedBody = errors.New("only success responses may carry a body")

	// ErrMalformedResponse indicates a response status line that does not
	// follow the `<status><SP><meta><CRLF>` grammar.
	ErrMalformedResponse = errors.New("malformed response status line")
)

// Response is one Gemini response: a status code, a meta line, and an
// optional body. A Response built through this package's constructors
// always satisfies the protocol invariant: the meta line is non-empty and
// a body is present if and only if the status is in the success category.
type Response struct {
	status Status
	meta   string
	body   []byte
}

// New builds a Response from raw parts, rejecting any combination that
// violates the status/body invariant. Prefer the category constructors;
// New exists for callers that carry status codes as data.
func New(status Status, meta string, body []byte) (*Response, error) {
	r := &Response{status: status, meta: meta, body: body}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the response against the protocol invariant. Responses
// built by this package's constructors always pass; the router uses it to
// reject invariant-violating responses coming back from handlers.
func (r *Response) Validate() error {
	if !r.status.Valid() {
		return fmt.Errorf("%w: got %d", ErrStatusRange, int(r.status))
	}
	if r.meta == "" {
		return ErrEmptyMeta
	}
	if r.status.Success() {
		if len(r.body) == 0 {
			return ErrEmptyBody
		}
		return nil
	}
	if len(r.body) != 0 {
		return fmt.Errorf("%w: status %d", ErrUnexpectedBody, int(r.status))
	}
	return nil
}

// Status returns the response status code.
func (r *Response) Status() Status { return r.status }

// Meta returns the meta line.
func (r *Response) Meta() string { return r.meta }

// Body returns the body bytes; nil for non-success responses.
func (r *Response) Body() []byte { return r.body }

// WriteTo encodes the response into its wire form:
// `<status><SP><meta><CRLF>` followed by the body for success responses.
// Encoding is total for any response that satisfies [Response.Validate].
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.Grow(len(r.meta) + 5)
	sb.WriteString(r.status.String())
	sb.WriteByte(' ')
	sb.WriteString(r.meta)
	sb.WriteString("\r\n")

	n, err := io.WriteString(w, sb.String())
	written := int64(n)
	if err != nil {
		return written, err
	}
	if r.status.Success() {
		n, err = w.Write(r.body)
		written += int64(n)
	}
	return written, err
}

// Success builds a success (20) response. An empty mediaType defaults to
// [GemtextMediaType]. The body must be non-empty.
func Success(mediaType string, body []byte) (*Response, error) {
	if mediaType == "" {
		mediaType = GemtextMediaType
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	return &Response{status: StatusSuccess, meta: mediaType, body: body}, nil
}

// Gemtext builds a success response carrying a text/gemini document.
func Gemtext(text string) (*Response, error) {
	return Success(GemtextMediaType, []byte(text))
}

// Input builds a 10 response asking the client for a line of input.
func Input(prompt string) *Response {
	return bodyless(StatusInput, prompt, "Input required")
}

// SensitiveInput builds an 11 response asking for input that must not be
// echoed, such as a passphrase.
func SensitiveInput(prompt string) *Response {
	return bodyless(StatusSensitiveInput, prompt, "Sensitive input required")
}

// Redirect builds a temporary (30) redirect. The target URL must be
// non-empty or the response fails validation at the dispatch boundary.
func Redirect(target string) *Response {
	return &Response{status: StatusRedirect, meta: target}
}

// PermanentRedirect builds a permanent (31) redirect.
func PermanentRedirect(target string) *Response {
	return &Response{status: StatusPermanentRedirect, meta: target}
}

// TemporaryFailure builds a 40 response.
func TemporaryFailure(message string) *Response {
	return bodyless(StatusTemporaryFailure, message, "Temporary failure")
}

// ServerUnavailable builds a 41 response.
func ServerUnavailable(message string) *Response {
	return bodyless(StatusServerUnavailable, message, "Server unavailable")
}

// CGIError builds a 42 response.
func CGIError(message string) *Response {
	return bodyless(StatusCGIError, message, "CGI error")
}

// SlowDown builds a 44 response asking the client to back off.
func SlowDown(message string) *Response {
	return bodyless(StatusSlowDown, message, "Slow down")
}

// PermanentFailure builds a 50 response.
func PermanentFailure(message string) *Response {
	return bodyless(StatusPermanentFailure, message, "Permanent failure")
}

// NotFound builds a 51 response.
func NotFound(message string) *Response {
	return bodyless(StatusNotFound, message, "Not Found")
}

// Gone builds a 52 response.
func Gone(message string) *Response {
	return bodyless(StatusGone, message, "Gone")
}

// BadRequest builds a 59 response for malformed request lines.
func BadRequest(message string) *Response {
	return bodyless(StatusBadRequest, message, "Bad Request")
}

// CertificateRequired builds a 60 response. Handlers return it when a
// resource needs a client certificate and the request carries none.
func CertificateRequired(message string) *Response {
	return bodyless(StatusCertificateRequired, message, "Client certificate required")
}

// CertificateNotAuthorized builds a 61 response.
func CertificateNotAuthorized(message string) *Response {
	return bodyless(StatusCertificateNotAuthorized, message, "Certificate not authorized")
}

// CertificateNotValid builds a 62 response.
func CertificateNotValid(message string) *Response {
	return bodyless(StatusCertificateNotValid, message, "Certificate not valid")
}

// bodyless builds a body-less response, substituting a canonical default
// when the caller passes an empty meta line.
func bodyless(status Status, meta, fallback string) *Response {
	if meta == "" {
		meta = fallback
	}
	return &Response{status: status, meta: meta}
}

// ReadResponse decodes one response from r: the status line, then the body
// when the status is in the success category. It is the inverse of
// [Response.WriteTo] for well-formed responses and exists for clients and
// round-trip tests.
func ReadResponse(r io.Reader) (*Response, error) {
	br := bufio.NewReaderSize(r, MaxRequestBytes+8)
	line, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	line, ok := strings.CutSuffix(line, "\r\n")
	if !ok {
		return nil, fmt.Errorf("%w: missing CRLF", ErrMalformedResponse)
	}
	code, meta, ok := strings.Cut(line, " ")
	if !ok {
		return nil, fmt.Errorf("%w: missing meta separator", ErrMalformedResponse)
	}
	if len(code) != 2 {
		return nil, fmt.Errorf("%w: status %q", ErrMalformedResponse, code)
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return nil, fmt.Errorf("%w: status %q", ErrMalformedResponse, code)
	}

	status := Status(n)
	var body []byte
	if status.Success() {
		if body, err = io.ReadAll(br); err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}
	}
	return New(status, meta, body)
}
