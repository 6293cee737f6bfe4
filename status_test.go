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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   Category
	}{
		{StatusInput, CategoryInput},
		{StatusSensitiveInput, CategoryInput},
		{StatusSuccess, CategorySuccess},
		{StatusRedirect, CategoryRedirect},
		{StatusPermanentRedirect, CategoryRedirect},
		{StatusTemporaryFailure, CategoryTemporaryFailure},
		{StatusSlowDown, CategoryTemporaryFailure},
		{StatusPermanentFailure, CategoryPermanentFailure},
		{StatusNotFound, CategoryPermanentFailure},
		{StatusBadRequest, CategoryPermanentFailure},
		{StatusCertificateRequired, CategoryCertificate},
		{StatusCertificateNotValid, CategoryCertificate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Category(), "status %d", tt.status)
	}
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	assert.False(t, Status(9).Valid())
	assert.True(t, Status(10).Valid())
	assert.True(t, Status(69).Valid())
	assert.False(t, Status(70).Valid())
	assert.False(t, Status(0).Valid())
	assert.False(t, Status(-1).Valid())
}

func TestStatusSuccess(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusSuccess.Success())
	assert.False(t, StatusNotFound.Success())
	assert.False(t, StatusInput.Success())
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "20", StatusSuccess.String())
	assert.Equal(t, "51", StatusNotFound.String())
}

func TestCategoryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", CategorySuccess.String())
	assert.Equal(t, "permanent failure", CategoryPermanentFailure.String())
	assert.Equal(t, "invalid", Category(0).String())
}
