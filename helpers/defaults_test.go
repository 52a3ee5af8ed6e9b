// Copyright 2021 Converter Systems LLC. All rights reserved.

package helpers

import (
	"net"
	"testing"

	"github.com/awcullen/uakit/client"
	"github.com/awcullen/uakit/server"
	"github.com/awcullen/uakit/ua"
	"github.com/pkg/errors"
	"gotest.tools/assert"
)

func stubHost(t *testing.T, name string, addrs []net.Addr) {
	h, a := hostname, interfaceAddrs
	t.Cleanup(func() {
		hostname, interfaceAddrs = h, a
	})
	hostname = func() (string, error) {
		if name == "" {
			return "", errors.New("no hostname")
		}
		return name, nil
	}
	interfaceAddrs = func() ([]net.Addr, error) {
		return addrs, nil
	}
}

func TestResolveHostFallback(t *testing.T) {
	stubHost(t, "", []net.Addr{
		&net.IPNet{IP: net.IPv4zero, Mask: net.CIDRMask(0, 32)},
		&net.IPNet{IP: net.ParseIP("10.0.0.5"), Mask: net.CIDRMask(24, 32)},
	})
	var cfg server.Config
	assert.NilError(t, SetServerDefaults(&cfg))
	assert.Equal(t, cfg.EndpointURL, "opc.tcp://10.0.0.5:4840")
	assert.Equal(t, cfg.ApplicationURI, "urn:10.0.0.5:uakit")
}

func TestResolveHostIPv6(t *testing.T) {
	stubHost(t, "", []net.Addr{&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)}})
	var cfg server.Config
	assert.NilError(t, SetServerDefaults(&cfg))
	assert.Equal(t, cfg.EndpointURL, "opc.tcp://[fe80::1]:4840")
	assert.NilError(t, cfg.Validate())
}

func TestResolveHostFailure(t *testing.T) {
	stubHost(t, "", nil)
	var cfg server.Config
	assert.Equal(t, SetServerDefaults(&cfg), ua.BadConfigurationError)
	var ccfg client.Config
	assert.Equal(t, SetClientDefaults(&ccfg), ua.BadConfigurationError)

	srv, err := NewServerWithDefaults()
	assert.Equal(t, err, ua.BadConfigurationError)
	assert.Assert(t, srv == nil)

	// no host needed when the caller sets the endpoint and uri
	cfg = server.Config{EndpointURL: "opc.tcp://127.0.0.1:4840", ApplicationURI: "urn:127.0.0.1:uakit"}
	assert.NilError(t, SetServerDefaults(&cfg))
}
