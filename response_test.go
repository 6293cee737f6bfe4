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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnforcesInvariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  Status
		meta    string
		body    []byte
		wantErr error
	}{
		{"success with body", StatusSuccess, "text/gemini", []byte("hi"), nil},
		{"success without body", StatusSuccess, "text/gemini", nil, ErrEmptyBody},
		{"not found with body", StatusNotFound, "Not Found", []byte("hi"), ErrUnexpectedBody},
		{"redirect with body", StatusRedirect, "gemini://x/", []byte("hi"), ErrUnexpectedBody},
		{"empty meta", StatusNotFound, "", nil, ErrEmptyMeta},
		{"status below range", Status(9), "meta", nil, ErrStatusRange},
		{"status above range", Status(70), "meta", nil, ErrStatusRange},
		{"input", StatusInput, "Name?", nil, nil},
		{"certificate required", StatusCertificateRequired, "Need cert", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp, err := New(tt.status, tt.meta, tt.body)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Status())
		})
	}
}

func TestSuccess(t *testing.T) {
	t.Parallel()

	resp, err := Success("", []byte("# hi\n"))
	require.NoError(t, err)
	assert.Equal(t, GemtextMediaType, resp.Meta(), "empty media type defaults to text/gemini")

	_, err = Success("text/plain", nil)
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestConstructorDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		resp       *Response
		wantStatus Status
		wantMeta   string
	}{
		{Input(""), StatusInput, "Input required"},
		{SensitiveInput(""), StatusSensitiveInput, "Sensitive input required"},
		{TemporaryFailure(""), StatusTemporaryFailure, "Temporary failure"},
		{ServerUnavailable(""), StatusServerUnavailable, "Server unavailable"},
		{CGIError(""), StatusCGIError, "CGI error"},
		{SlowDown(""), StatusSlowDown, "Slow down"},
		{PermanentFailure(""), StatusPermanentFailure, "Permanent failure"},
		{NotFound(""), StatusNotFound, "Not Found"},
		{Gone(""), StatusGone, "Gone"},
		{BadRequest(""), StatusBadRequest, "Bad Request"},
		{CertificateRequired(""), StatusCertificateRequired, "Client certificate required"},
		{CertificateNotAuthorized(""), StatusCertificateNotAuthorized, "Certificate not authorized"},
		{CertificateNotValid(""), StatusCertificateNotValid, "Certificate not valid"},
		{NotFound("nothing here"), StatusNotFound, "nothing here"},
	}

	for _, tt := range tests {
		require.NoError(t, tt.resp.Validate())
		assert.Equal(t, tt.wantStatus, tt.resp.Status())
		assert.Equal(t, tt.wantMeta, tt.resp.Meta())
		assert.Empty(t, tt.resp.Body())
	}
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	resp := Redirect("gemini://example.org/new")
	require.NoError(t, resp.Validate())
	assert.Equal(t, StatusRedirect, resp.Status())
	assert.Equal(t, "gemini://example.org/new", resp.Meta())

	perm := PermanentRedirect("gemini://example.org/new")
	assert.Equal(t, StatusPermanentRedirect, perm.Status())

	// An empty target cannot encode; validation catches it at the
	// dispatch boundary.
	assert.ErrorIs(t, Redirect("").Validate(), ErrEmptyMeta)
}

func TestResponseWriteTo(t *testing.T) {
	t.Parallel()

	t.Run("success carries body", func(t *testing.T) {
		t.Parallel()
		resp, err := Success("text/gemini", []byte("# Hi alice"))
		require.NoError(t, err)

		var buf bytes.Buffer
		n, err := resp.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, "20 text/gemini\r\n# Hi alice", buf.String())
		assert.Equal(t, int64(buf.Len()), n)
	})

	t.Run("not found has no body", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		_, err := NotFound("").WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, "51 Not Found\r\n", buf.String())
	})

	t.Run("bad request has no body", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		_, err := BadRequest("").WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, "59 Bad Request\r\n", buf.String())
	})
}

func TestReadResponse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []*Response{
		mustSuccess(t, "text/gemini", "# Hi alice"),
		mustSuccess(t, "text/plain;charset=utf-8", "plain text\nwith lines\n"),
		Input("What is your name?"),
		Redirect("gemini://example.org/elsewhere"),
		NotFound(""),
		BadRequest(""),
		CertificateRequired(""),
	}

	for _, want := range tests {
		var buf bytes.Buffer
		_, err := want.WriteTo(&buf)
		require.NoError(t, err)

		got, err := ReadResponse(&buf)
		require.NoError(t, err, "decoding %d %s", want.Status(), want.Meta())

		assert.Equal(t, want.Status(), got.Status())
		assert.Equal(t, want.Meta(), got.Meta())
		assert.Equal(t, want.Body(), got.Body())
	}
}

func TestReadResponse_Malformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"20 text/gemini\nbody",   // bare LF
		"20text/gemini\r\nbody",  // missing separator
		"2 meta\r\n",             // one-digit status
		"999 meta\r\n",           // three-digit status
		"xx meta\r\n",            // non-numeric status
		"20 \r\n",                // empty meta on success, no body either
	}
	for _, c := range cases {
		_, err := ReadResponse(strings.NewReader(c))
		assert.Error(t, err, "input %q", c)
	}
}

func mustSuccess(t *testing.T, mediaType, body string) *Response {
	t.Helper()
	resp, err := Success(mediaType, []byte(body))
	require.NoError(t, err)
	return resp
}
