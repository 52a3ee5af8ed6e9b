// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"net/url"

	"github.com/awcullen/uakit/ua"
)

// Config holds the settings of a Server.
// A zero Config is not valid; see helpers.SetServerDefaults.
type Config struct {
	// EndpointURL is the opc.tcp url the server listens on, e.g. "opc.tcp://localhost:4840".
	EndpointURL     string
	ApplicationURI  string
	ApplicationName string
	ProductURI      string
	BuildInfo       ua.BuildInfo
	// NamespaceURIs are registered after the ApplicationURI, starting at index 2.
	NamespaceURIs      []string
	SecurityPolicyURIs []string

	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32

	MaxStringLength     uint32
	MaxByteStringLength uint32
	MaxArrayLength      uint32

	MaxWorkerThreads int
	// MaxNodesPerNodeManagement limits the nodes of one AddNodes call. Zero means no limit.
	MaxNodesPerNodeManagement uint32
}

// Validate returns nil if the config can construct a Server.
func (c Config) Validate() error {
	if c.EndpointURL == "" || c.ApplicationURI == "" {
		return ua.BadConfigurationError
	}
	u, err := url.Parse(c.EndpointURL)
	if err != nil || u.Scheme != "opc.tcp" || u.Hostname() == "" {
		return ua.BadTCPEndpointURLInvalid
	}
	if c.ReceiveBufferSize < ua.MinBufferSize || c.SendBufferSize < ua.MinBufferSize {
		return ua.BadConfigurationError
	}
	if c.MaxWorkerThreads < 1 {
		return ua.BadConfigurationError
	}
	if len(c.SecurityPolicyURIs) == 0 {
		return ua.BadConfigurationError
	}
	for _, uri := range c.SecurityPolicyURIs {
		if uri != ua.SecurityPolicyURINone {
			return ua.BadConfigurationError
		}
	}
	return nil
}

// port returns the port of the EndpointURL, or the default OPC UA port.
func (c Config) port() string {
	if u, err := url.Parse(c.EndpointURL); err == nil && u.Port() != "" {
		return u.Port()
	}
	return "4840"
}
