// Copyright 2021 Converter Systems LLC. All rights reserved.

package helpers

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/awcullen/uakit/client"
	"github.com/awcullen/uakit/server"
	"github.com/awcullen/uakit/ua"
)

// Version of this module, reported in the BuildInfo of default servers.
const Version = "0.3.0"

const (
	defaultPort             = "4840"
	defaultProductURI       = "http://github.com/awcullen/uakit"
	defaultManufacturerName = "awcullen"
	defaultServerName       = "uakit"
	defaultClientName       = "uakit-client"
	defaultMaxWorkerThreads = 4

	defaultMaxStringLength     uint32 = 65535
	defaultMaxByteStringLength uint32 = 16 * 1024 * 1024
	defaultMaxArrayLength      uint32 = 65535

	// the default number of nodes that one AddNodes call may add.
	defaultMaxNodesPerNodeManagement uint32 = 1000

	// the default time that a session may be unused before being closed by the server. (2 min)
	defaultSessionTimeout = 2 * time.Minute
	defaultTimeoutHint    = 15 * time.Second
	defaultConnectTimeout = 5 * time.Second
)

var (
	hostname       = os.Hostname
	interfaceAddrs = upInterfaceAddrs
)

// SetServerDefaults fills the zero fields of the config with defaults.
// Fields already set are preserved. Returns BadConfigurationError if the
// local host name is needed but cannot be resolved.
func SetServerDefaults(cfg *server.Config) error {
	if cfg == nil {
		return ua.BadInvalidArgument
	}
	if cfg.EndpointURL == "" || cfg.ApplicationURI == "" {
		host, err := resolveHost()
		if err != nil {
			return err
		}
		if cfg.EndpointURL == "" {
			cfg.EndpointURL = "opc.tcp://" + net.JoinHostPort(host, defaultPort)
		}
		if cfg.ApplicationURI == "" {
			cfg.ApplicationURI = fmt.Sprintf("urn:%s:%s", host, defaultServerName)
		}
	}
	if cfg.ApplicationName == "" {
		cfg.ApplicationName = defaultServerName
	}
	if cfg.ProductURI == "" {
		cfg.ProductURI = defaultProductURI
	}
	setBuildInfoDefaults(&cfg.BuildInfo, cfg.ProductURI)
	if len(cfg.SecurityPolicyURIs) == 0 {
		cfg.SecurityPolicyURIs = []string{ua.SecurityPolicyURINone}
	}
	setUint32(&cfg.ReceiveBufferSize, ua.DefaultBufferSize)
	setUint32(&cfg.SendBufferSize, ua.DefaultBufferSize)
	setUint32(&cfg.MaxMessageSize, ua.DefaultMaxMessageSize)
	setUint32(&cfg.MaxChunkCount, ua.DefaultMaxChunkCount)
	setUint32(&cfg.MaxStringLength, defaultMaxStringLength)
	setUint32(&cfg.MaxByteStringLength, defaultMaxByteStringLength)
	setUint32(&cfg.MaxArrayLength, defaultMaxArrayLength)
	setUint32(&cfg.MaxNodesPerNodeManagement, defaultMaxNodesPerNodeManagement)
	if cfg.MaxWorkerThreads == 0 {
		cfg.MaxWorkerThreads = defaultMaxWorkerThreads
	}
	return nil
}

// SetClientDefaults fills the zero fields of the config with defaults.
// Fields already set are preserved.
func SetClientDefaults(cfg *client.Config) error {
	if cfg == nil {
		return ua.BadInvalidArgument
	}
	if cfg.ApplicationURI == "" {
		host, err := resolveHost()
		if err != nil {
			return err
		}
		cfg.ApplicationURI = fmt.Sprintf("urn:%s:%s", host, defaultClientName)
	}
	if cfg.ApplicationName == "" {
		cfg.ApplicationName = defaultClientName
	}
	if cfg.ProductURI == "" {
		cfg.ProductURI = defaultProductURI
	}
	if cfg.SessionName == "" {
		cfg.SessionName = cfg.ApplicationName
	}
	if cfg.SessionTimeout == 0 {
		cfg.SessionTimeout = defaultSessionTimeout
	}
	if cfg.SecurityPolicyURI == "" {
		cfg.SecurityPolicyURI = ua.SecurityPolicyURINone
	}
	if cfg.TimeoutHint == 0 {
		cfg.TimeoutHint = defaultTimeoutHint
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	setUint32(&cfg.ReceiveBufferSize, ua.DefaultBufferSize)
	setUint32(&cfg.SendBufferSize, ua.DefaultBufferSize)
	setUint32(&cfg.MaxMessageSize, ua.DefaultMaxMessageSize)
	setUint32(&cfg.MaxChunkCount, ua.DefaultMaxChunkCount)
	setUint32(&cfg.MaxStringLength, defaultMaxStringLength)
	setUint32(&cfg.MaxByteStringLength, defaultMaxByteStringLength)
	setUint32(&cfg.MaxArrayLength, defaultMaxArrayLength)
	return nil
}

func setBuildInfoDefaults(bi *ua.BuildInfo, productURI string) {
	if bi.ProductURI == "" {
		bi.ProductURI = productURI
	}
	if bi.ManufacturerName == "" {
		bi.ManufacturerName = defaultManufacturerName
	}
	if bi.ProductName == "" {
		bi.ProductName = defaultServerName
	}
	if bi.SoftwareVersion == "" {
		bi.SoftwareVersion = Version
	}
}

func setUint32(v *uint32, def uint32) {
	if *v == 0 {
		*v = def
	}
}

// resolveHost returns the host name, or else the address of the first network interface that is up.
func resolveHost() (string, error) {
	if h, err := hostname(); err == nil && h != "" {
		return h, nil
	}
	addrs, err := interfaceAddrs()
	if err != nil {
		return "", ua.BadConfigurationError
	}
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsUnspecified() {
			return ipnet.IP.String(), nil
		}
	}
	return "", ua.BadConfigurationError
}

func upInterfaceAddrs() ([]net.Addr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var addrs []net.Addr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		a, err := iface.Addrs()
		if err != nil {
			continue
		}
		addrs = append(addrs, a...)
	}
	return addrs, nil
}
