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
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"rivaas.dev/gemini"
)

// RouterLifecycleSuite exercises the build-freeze-dispatch sequence with
// shared setup.
type RouterLifecycleSuite struct {
	suite.Suite
	router *Router
}

func (s *RouterLifecycleSuite) SetupTest() {
	s.router = MustNew()
	s.router.Handle("/greet/{name}", func(_ context.Context, req *gemini.Request) (*gemini.Response, error) {
		return gemini.Gemtext("hello " + req.Param("name"))
	})
}

func (s *RouterLifecycleSuite) dispatch(rawURL string) *gemini.Response {
	req, err := gemini.ParseRequest([]byte(rawURL+"\r\n"), nil)
	s.Require().NoError(err)
	return s.router.Dispatch(context.Background(), req)
}

func (s *RouterLifecycleSuite) TestBuildThenFreezeThenDispatch() {
	users := MustNew()
	users.Handle("/{id}", func(_ context.Context, req *gemini.Request) (*gemini.Response, error) {
		return gemini.Gemtext("user " + req.Param("id"))
	})
	s.router.Mount("/users", users)
	s.router.Freeze()

	resp := s.dispatch("gemini://host/greet/alice")
	s.Equal(gemini.StatusSuccess, resp.Status())
	s.Equal([]byte("hello alice"), resp.Body())

	resp = s.dispatch("gemini://host/users/42")
	s.Equal([]byte("user 42"), resp.Body())
}

func (s *RouterLifecycleSuite) TestFreezeIsIdempotent() {
	s.router.Freeze()
	s.router.Freeze()
	s.True(s.router.Frozen())

	resp := s.dispatch("gemini://host/greet/bob")
	s.Equal(gemini.StatusSuccess, resp.Status())
}

func (s *RouterLifecycleSuite) TestRegistrationAfterDispatchPanics() {
	s.dispatch("gemini://host/greet/carol")

	s.Panics(func() {
		s.router.Handle("/late", func(context.Context, *gemini.Request) (*gemini.Response, error) {
			return gemini.Gemtext("late")
		})
	})
}

func TestRouterLifecycleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RouterLifecycleSuite))
}
