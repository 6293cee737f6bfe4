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

package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"rivaas.dev/gemini"
	"rivaas.dev/gemini/router"
)

func TestRecorder_ThroughRouter(t *testing.T) {
	t.Parallel()

	rec, reader := newManualRecorder(t, WithServiceName("capsule"))

	r := router.MustNew(router.WithObservability(rec))
	r.Handle("/hello/{name}", func(_ context.Context, req *gemini.Request) (*gemini.Response, error) {
		return gemini.Gemtext("# Hi " + req.Param("name"))
	})

	for range 3 {
		req, err := gemini.ParseRequest([]byte("gemini://host/hello/alice\r\n"), nil)
		require.NoError(t, err)
		r.Dispatch(context.Background(), req)
	}
	reqMiss, err := gemini.ParseRequest([]byte("gemini://host/missing\r\n"), nil)
	require.NoError(t, err)
	r.Dispatch(context.Background(), reqMiss)

	m := findMetric(t, reader, "gemini.requests")
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 2)

	byRoute := map[string]int64{}
	for _, dp := range sum.DataPoints {
		route, _ := dp.Attributes.Value(attribute.Key("gemini.route"))
		byRoute[route.AsString()] = dp.Value
	}
	assert.Equal(t, int64(3), byRoute["/hello/{name}"])
	assert.Equal(t, int64(1), byRoute[router.NotFoundPattern])
}
