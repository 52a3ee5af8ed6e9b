// Copyright 2021 Converter Systems LLC. All rights reserved.

package server_test

import (
	"testing"
	"time"

	"github.com/awcullen/uakit/server"
	"github.com/awcullen/uakit/ua"
	"github.com/prometheus/client_golang/prometheus"
	"gotest.tools/assert"
)

var (
	SoftwareVersion = "0.3.0"
)

// NewTestConfig returns a valid config that listens on an ephemeral port.
func NewTestConfig() server.Config {
	return server.Config{
		EndpointURL:     "opc.tcp://127.0.0.1:0",
		ApplicationURI:  "urn:127.0.0.1:testserver",
		ApplicationName: "testserver",
		ProductURI:      "http://github.com/awcullen/uakit",
		BuildInfo: ua.BuildInfo{
			ProductURI:       "http://github.com/awcullen/uakit",
			ManufacturerName: "awcullen",
			ProductName:      "testserver",
			SoftwareVersion:  SoftwareVersion,
			BuildDate:        time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		NamespaceURIs:             []string{"http://github.com/awcullen/uakit/testserver"},
		SecurityPolicyURIs:        []string{ua.SecurityPolicyURINone},
		ReceiveBufferSize:         ua.DefaultBufferSize,
		SendBufferSize:            ua.DefaultBufferSize,
		MaxMessageSize:            ua.DefaultMaxMessageSize,
		MaxChunkCount:             ua.DefaultMaxChunkCount,
		MaxStringLength:           65535,
		MaxByteStringLength:       65535,
		MaxArrayLength:            65535,
		MaxWorkerThreads:          4,
		MaxNodesPerNodeManagement: 100,
	}
}

// NewTestServer creates a server with its own metrics registry.
func NewTestServer(t *testing.T, opts ...server.Option) (*server.Server, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	srv, err := server.New(NewTestConfig(), append([]server.Option{server.WithMetricsRegisterer(reg)}, opts...)...)
	assert.NilError(t, err)
	return srv, reg
}

// RunTestServer starts the server and returns a func that closes it and waits for ListenAndServe.
func RunTestServer(t *testing.T, srv *server.Server) func() {
	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe()
	}()
	deadline := time.Now().Add(5 * time.Second)
	for srv.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server did not start listening")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return func() {
		srv.Close()
		select {
		case err := <-done:
			assert.Equal(t, err, ua.BadServerHalted)
		case <-time.After(5 * time.Second):
			t.Fatal("ListenAndServe did not return after Close")
		}
	}
}
