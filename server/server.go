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
	"bufio"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"rivaas.dev/gemini"
	"rivaas.dev/gemini/logging"
	"rivaas.dev/gemini/router"
)

// Environment names recognized by the server.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// MetricsInfo describes a metrics recorder for startup reporting. It is
// satisfied by *metrics.Recorder.
type MetricsInfo interface {
	ServerAddress() string
	Path() string
	Provider() string
}

// Server accepts Gemini connections over TLS and dispatches each request
// through its router. One request is served per connection, per protocol.
//
// Example:
//
//	r := router.MustNew()
//	r.Handle("/", indexHandler)
//
//	srv := server.MustNew(r,
//	    server.WithAddress(":1965"),
//	    server.WithCertificate("cert.pem", "key.pem"),
//	)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
type Server struct {
	router *router.Router
	log    *logging.Logger

	address      string
	hostname     string
	certFile     string
	keyFile      string
	tlsConfig    *tls.Config
	readTimeout  time.Duration
	writeTimeout time.Duration

	serviceName    string
	serviceVersion string
	environment    string
	banner         bool
	metrics        MetricsInfo

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// Option configures a Server at construction time.
type Option func(*Server)

// New creates a Server for the given router.
func New(r *router.Router, opts ...Option) (*Server, error) {
	if r == nil {
		return nil, fmt.Errorf("server: %w", ErrNilRouter)
	}
	s := &Server{
		router:         r,
		address:        ":1965",
		readTimeout:    30 * time.Second,
		writeTimeout:   30 * time.Second,
		serviceName:    "gemini",
		serviceVersion: "unknown",
		environment:    EnvironmentDevelopment,
		banner:         true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.MustNew(
			logging.WithServiceName(s.serviceName),
			logging.WithServiceVersion(s.serviceVersion),
			logging.WithEnvironment(s.environment),
		)
	}
	if s.tlsConfig == nil && (s.certFile == "" || s.keyFile == "") {
		return nil, fmt.Errorf("server: %w", ErrNoCertificate)
	}
	return s, nil
}

// MustNew creates a Server or panics on error.
func MustNew(r *router.Router, opts ...Option) *Server {
	s, err := New(r, opts...)
	if err != nil {
		panic("server initialization failed: " + err.Error())
	}
	return s
}

// buildTLSConfig returns the TLS configuration for the listener. Client
// certificates are requested but never verified against a CA; Gemini
// clients use self-signed certificates and handlers decide what to trust.
func (s *Server) buildTLSConfig() (*tls.Config, error) {
	if s.tlsConfig != nil {
		return s.tlsConfig, nil
	}
	cert, err := tls.LoadX509KeyPair(s.certFile, s.keyFile)
	if err != nil {
		return nil, fmt.Errorf("server: load certificate: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		ClientAuth:   tls.RequestClientCert,
		ServerName:   s.hostname,
	}, nil
}

// Addr returns the listener's address once Run has bound it. Useful with
// ":0" in tests.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run binds the TLS listener and serves until the context is canceled,
// then closes the listener and waits for in-flight connections to finish.
// The route table is frozen before the first connection is accepted.
func (s *Server) Run(ctx context.Context) error {
	tlsConfig, err := s.buildTLSConfig()
	if err != nil {
		return err
	}

	ln, err := tls.Listen("tcp", s.address, tlsConfig)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.address, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.router.Freeze()

	if s.banner {
		s.printStartupBanner()
	}
	s.log.Info("server listening",
		"address", ln.Addr().String(),
		"hostname", s.hostname,
	)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if errors.Is(err, net.ErrClosed) {
				break
			}
			s.log.Warn("accept failed", "error", err)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}

	s.wg.Wait()
	s.log.Info("server stopped")
	return nil
}

// handleConn serves one request on one connection and closes it.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	start := time.Now()

	if s.readTimeout > 0 {
		_ = conn.SetReadDeadline(start.Add(s.readTimeout))
	}
	if s.writeTimeout > 0 {
		_ = conn.SetWriteDeadline(start.Add(s.writeTimeout))
	}

	line, err := readRequestLine(conn)
	if err != nil {
		s.log.Warn("unreadable request line", "remote", conn.RemoteAddr().String(), "error", err)
		s.writeResponse(conn, gemini.BadRequest(""))
		return
	}

	req, err := gemini.ParseRequest(line, peerIdentity(conn))
	if err != nil {
		s.log.Warn("malformed request", "remote", conn.RemoteAddr().String(), "error", err)
		s.writeResponse(conn, gemini.BadRequest(""))
		return
	}

	reqCtx := ctx
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithDeadline(ctx, start.Add(s.writeTimeout))
		defer cancel()
	}

	resp := s.router.Dispatch(reqCtx, req)
	s.writeResponse(conn, resp)
	s.log.LogRequest(req, resp.Status(), req.RoutePattern(), time.Since(start))
}

// readRequestLine reads up to one request line from the connection. The
// protocol caps the line at [gemini.MaxRequestBytes] including CRLF; a
// longer line is rejected without reading further.
func readRequestLine(conn net.Conn) ([]byte, error) {
	br := bufio.NewReaderSize(conn, gemini.MaxRequestBytes+1)
	line, err := br.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		return nil, gemini.ErrRequestTooLong
	}
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(line))
	copy(out, line)
	return out, nil
}

// peerIdentity extracts the client-certificate identity from the TLS
// connection state, or nil when no certificate was presented.
func peerIdentity(conn net.Conn) *gemini.Identity {
	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return nil
	}
	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return nil
	}
	sum := sha256.Sum256(certs[0].Raw)
	return &gemini.Identity{
		Fingerprint: hex.EncodeToString(sum[:]),
		Subject:     certs[0].Subject.String(),
	}
}

func (s *Server) writeResponse(conn net.Conn, resp *gemini.Response) {
	if _, err := resp.WriteTo(conn); err != nil {
		s.log.Warn("write failed", "remote", conn.RemoteAddr().String(), "error", err)
	}
}
