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

package server

import (
	"crypto/tls"
	"time"

	"rivaas.dev/gemini/logging"
)

// WithAddress sets the listen address (default ":1965").
func WithAddress(addr string) Option {
	return func(s *Server) { s.address = addr }
}

// WithHostname sets the hostname presented during the TLS handshake.
func WithHostname(hostname string) Option {
	return func(s *Server) { s.hostname = hostname }
}

// WithCertificate sets the server certificate and key files.
func WithCertificate(certFile, keyFile string) Option {
	return func(s *Server) {
		s.certFile = certFile
		s.keyFile = keyFile
	}
}

// WithTLSConfig supplies a complete TLS configuration, overriding
// [WithCertificate]. The caller is responsible for setting a certificate
// and a client-certificate policy.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *Server) { s.tlsConfig = cfg }
}

// WithReadTimeout bounds how long a client may take to send its request
// line (default 30s). Zero disables the deadline.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.readTimeout = d }
}

// WithWriteTimeout bounds handler execution plus response transmission
// (default 30s). Zero disables the deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { s.writeTimeout = d }
}

// WithLogger sets the server's logger. Without it the server builds one
// from its service identity.
func WithLogger(log *logging.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithServiceName sets the service name used in logs and the banner.
func WithServiceName(name string) Option {
	return func(s *Server) { s.serviceName = name }
}

// WithServiceVersion sets the service version used in logs and the banner.
func WithServiceVersion(version string) Option {
	return func(s *Server) { s.serviceVersion = version }
}

// WithEnvironment sets the environment name. Production strips banner
// colors and hides the route table.
func WithEnvironment(env string) Option {
	return func(s *Server) { s.environment = env }
}

// WithBanner toggles the startup banner (default on).
func WithBanner(enabled bool) Option {
	return func(s *Server) { s.banner = enabled }
}

// WithMetrics reports a metrics recorder's endpoint in the startup banner.
func WithMetrics(info MetricsInfo) Option {
	return func(s *Server) { s.metrics = info }
}
