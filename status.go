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

import "strconv"

// Status is a Gemini response status code: a two-digit integer in [10, 69].
// The tens digit selects the [Category], which determines the semantics of
// the response's meta line and whether a body may follow.
type Status int

// Status codes defined by the Gemini protocol specification.
const (
	// StatusInput requests a line of user input; meta is the prompt.
	StatusInput Status = 10
	// StatusSensitiveInput requests input that must not be echoed.
	StatusSensitiveInput Status = 11

	// StatusSuccess indicates the request succeeded; meta is the body's
	// media type and the body follows the status line.
	StatusSuccess Status = 20

	// StatusRedirect redirects the client temporarily; meta is the target URL.
	StatusRedirect Status = 30
	// StatusPermanentRedirect redirects the client permanently.
	StatusPermanentRedirect Status = 31

	// StatusTemporaryFailure indicates a transient server-side failure.
	StatusTemporaryFailure Status = 40
	// StatusServerUnavailable indicates the server is down for maintenance
	// or overloaded.
	StatusServerUnavailable Status = 41
	// StatusCGIError indicates a failure in a dynamic content generator.
	StatusCGIError Status = 42
	// StatusProxyError indicates a proxied request failed.
	StatusProxyError Status = 43
	// StatusSlowDown asks the client to rate-limit itself.
	StatusSlowDown Status = 44

	// StatusPermanentFailure indicates a permanent server-side failure.
	StatusPermanentFailure Status = 50
	// StatusNotFound indicates the requested resource does not exist.
	StatusNotFound Status = 51
	// StatusGone indicates the resource existed once but is gone for good.
	StatusGone Status = 52
	// StatusProxyRequestRefused indicates the server refuses to proxy the URL.
	StatusProxyRequestRefused Status = 53
	// StatusBadRequest indicates the request line was malformed.
	StatusBadRequest Status = 59

	// StatusCertificateRequired indicates the resource needs a client
	// certificate.
	StatusCertificateRequired Status = 60
	// StatusCertificateNotAuthorized indicates the presented certificate is
	// not authorized for the resource.
	StatusCertificateNotAuthorized Status = 61
	// StatusCertificateNotValid indicates the presented certificate failed
	// validation.
	StatusCertificateNotValid Status = 62
)

// Category groups status codes by their tens digit.
type Category int

// Status categories, in wire order.
const (
	CategoryInput            Category = 1
	CategorySuccess          Category = 2
	CategoryRedirect         Category = 3
	CategoryTemporaryFailure Category = 4
	CategoryPermanentFailure Category = 5
	CategoryCertificate      Category = 6
)

// Category returns the status category (the tens digit).
func (s Status) Category() Category {
	return Category(s / 10)
}

// Valid reports whether s is inside the protocol's [10, 69] range.
func (s Status) Valid() bool {
	return s >= 10 && s <= 69
}

// Success reports whether s is in the success category. Only success
// responses carry a body.
func (s Status) Success() bool {
	return s.Category() == CategorySuccess
}

// String returns the two-digit decimal form of the status, e.g. "51".
func (s Status) String() string {
	return strconv.Itoa(int(s))
}

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryInput:
		return "input"
	case CategorySuccess:
		return "success"
	case CategoryRedirect:
		return "redirect"
	case CategoryTemporaryFailure:
		return "temporary failure"
	case CategoryPermanentFailure:
		return "permanent failure"
	case CategoryCertificate:
		return "certificate required"
	default:
		return "invalid"
	}
}
