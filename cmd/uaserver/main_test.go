// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/awcullen/uakit/helpers"
	"github.com/awcullen/uakit/server"
	"github.com/prometheus/client_golang/prometheus"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func TestSubmainExitCodes(t *testing.T) {
	assert.Equal(t, submain(context.Background(), []string{"--endpoint", "http://127.0.0.1:4840"}), 1)
	assert.Equal(t, submain(context.Background(), []string{"--log-level", "loud"}), 1)
	assert.Equal(t, submain(context.Background(), []string{"--config", "does-not-exist.toml"}), 1)

	// interrupted before the run loop starts
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, submain(ctx, []string{"--endpoint", "opc.tcp://127.0.0.1:0", "--log-level", "warn"}), 0)
}

func TestRunUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() {
		done <- submain(ctx, []string{"--endpoint", "opc.tcp://127.0.0.1:0", "--log-level", "error"})
	}()
	time.Sleep(200 * time.Millisecond)
	cancel()
	select {
	case code := <-done:
		assert.Equal(t, code, 0)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestProbe(t *testing.T) {
	srv, err := helpers.NewServerWithConfig(server.Config{EndpointURL: "opc.tcp://127.0.0.1:0"},
		server.WithMetricsRegisterer(prometheus.NewRegistry()))
	assert.NilError(t, err)
	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe()
	}()
	defer func() {
		srv.Close()
		<-done
	}()
	for srv.Addr() == nil {
		time.Sleep(10 * time.Millisecond)
	}

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"probe", "opc.tcp://" + srv.Addr().String(), "--timeout", "2s"})
	assert.NilError(t, cmd.ExecuteContext(context.Background()))
	assert.Check(t, is.Contains(out.String(), "receiveBufferSize: 65536"))
	assert.Check(t, is.Contains(out.String(), "maxChunkCount: 4096"))
}
