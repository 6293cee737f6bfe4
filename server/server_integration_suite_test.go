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
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"math/big"
	"net"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/gemini"
	"rivaas.dev/gemini/logging"
	"rivaas.dev/gemini/router"
)

// selfSignedCert generates an in-memory certificate for loopback testing.
func selfSignedCert(commonName string) tls.Certificate {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	Expect(err).NotTo(HaveOccurred())

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: commonName},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	Expect(err).NotTo(HaveOccurred())

	return tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
	}
}

// testServer runs a Server on a loopback port and tears it down with the
// spec.
type testServer struct {
	server *Server
	cancel context.CancelFunc
	done   chan error
}

func startTestServer(r *router.Router) *testServer {
	cert := selfSignedCert("test-capsule")
	srv := MustNew(r,
		WithAddress("127.0.0.1:0"),
		WithTLSConfig(&tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
			ClientAuth:   tls.RequestClientCert,
		}),
		WithBanner(false),
		WithReadTimeout(2*time.Second),
		WithWriteTimeout(2*time.Second),
		WithLogger(logging.MustNew(logging.WithOutput(io.Discard))),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	Eventually(srv.Addr, "2s", "10ms").ShouldNot(BeNil())
	return &testServer{server: srv, cancel: cancel, done: done}
}

func (ts *testServer) stop() {
	ts.cancel()
	Eventually(ts.done, "5s").Should(Receive(BeNil()))
}

// exchange performs one full Gemini transaction and returns the raw
// response bytes.
func (ts *testServer) exchange(line string, clientCert *tls.Certificate) string {
	cfg := &tls.Config{InsecureSkipVerify: true} //nolint:gosec // self-signed test cert
	if clientCert != nil {
		cfg.Certificates = []tls.Certificate{*clientCert}
	}
	conn, err := tls.Dial("tcp", ts.server.Addr().String(), cfg)
	Expect(err).NotTo(HaveOccurred())
	defer conn.Close()

	_, err = conn.Write([]byte(line))
	Expect(err).NotTo(HaveOccurred())

	raw, err := io.ReadAll(conn)
	Expect(err).NotTo(HaveOccurred())
	return string(raw)
}

var _ = Describe("Server Integration", func() {
	Describe("Request Dispatch", func() {
		var ts *testServer

		BeforeEach(func() {
			r := router.MustNew()
			r.Handle("/hello/{name}", func(_ context.Context, req *gemini.Request) (*gemini.Response, error) {
				return gemini.Gemtext("# Hi " + req.Param("name"))
			})
			r.Handle("/whoami", func(_ context.Context, req *gemini.Request) (*gemini.Response, error) {
				if req.Identity == nil {
					return gemini.CertificateRequired("Client certificate required"), nil
				}
				return gemini.Gemtext("fingerprint: " + req.Identity.Fingerprint)
			})
			ts = startTestServer(r)
		})

		AfterEach(func() {
			ts.stop()
		})

		It("serves a success response with body", func() {
			resp := ts.exchange("gemini://localhost/hello/alice\r\n", nil)
			Expect(resp).To(Equal("20 text/gemini\r\n# Hi alice"))
		})

		It("answers 51 for unknown paths without a body", func() {
			resp := ts.exchange("gemini://localhost/unknown\r\n", nil)
			Expect(resp).To(Equal("51 Not Found\r\n"))
		})

		It("answers 59 for a relative request URL", func() {
			resp := ts.exchange("/no/scheme\r\n", nil)
			Expect(resp).To(Equal("59 Bad Request\r\n"))
		})

		It("answers 59 for an oversized request line", func() {
			long := "gemini://localhost/" + strings.Repeat("a", gemini.MaxRequestBytes) + "\r\n"
			resp := ts.exchange(long, nil)
			Expect(resp).To(Equal("59 Bad Request\r\n"))
		})

		It("requires a certificate on protected routes", func() {
			resp := ts.exchange("gemini://localhost/whoami\r\n", nil)
			Expect(resp).To(HavePrefix("60 "))
		})

		It("passes the client certificate identity to handlers", func() {
			clientCert := selfSignedCert("alice")
			resp := ts.exchange("gemini://localhost/whoami\r\n", &clientCert)
			Expect(resp).To(HavePrefix("20 text/gemini\r\n"))
			Expect(resp).To(ContainSubstring("fingerprint: "))
		})
	})

	Describe("Error Conversion", func() {
		var ts *testServer

		BeforeEach(func() {
			r := router.MustNew()
			r.Handle("/boom", func(context.Context, *gemini.Request) (*gemini.Response, error) {
				panic("kaboom")
			})
			ts = startTestServer(r)
		})

		AfterEach(func() {
			ts.stop()
		})

		It("converts handler panics to a generic 50 without leaking the cause", func() {
			resp := ts.exchange("gemini://localhost/boom\r\n", nil)
			Expect(resp).To(Equal("50 Internal Server Error\r\n"))
			Expect(resp).NotTo(ContainSubstring("kaboom"))
		})
	})

	Describe("Concurrency", func() {
		var ts *testServer

		BeforeEach(func() {
			r := router.MustNew()
			r.Handle("/n/{n}", func(_ context.Context, req *gemini.Request) (*gemini.Response, error) {
				return gemini.Gemtext(req.Param("n"))
			})
			ts = startTestServer(r)
		})

		AfterEach(func() {
			ts.stop()
		})

		It("serves concurrent connections independently", func() {
			results := make(chan string, 16)
			for i := range 16 {
				go func(n int) {
					defer GinkgoRecover()
					line := "gemini://localhost/n/" + string(rune('a'+n)) + "\r\n"
					results <- ts.exchange(line, nil)
				}(i)
			}
			for range 16 {
				Eventually(results, "5s").Should(Receive(HavePrefix("20 text/gemini\r\n")))
			}
		})
	})

	Describe("Graceful Shutdown", func() {
		It("stops accepting and returns once the context is canceled", func() {
			r := router.MustNew()
			ts := startTestServer(r)
			addr := ts.server.Addr().String()

			ts.stop()

			_, err := tls.Dial("tcp", addr, &tls.Config{InsecureSkipVerify: true}) //nolint:gosec // test
			Expect(err).To(HaveOccurred())
		})
	})
})

func TestServerIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Server Integration Suite")
}
