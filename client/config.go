// Copyright 2021 Converter Systems LLC. All rights reserved.

package client

import (
	"time"

	"github.com/awcullen/uakit/ua"
)

// Config holds the settings of a Client.
// A zero Config is not valid; see helpers.SetClientDefaults.
type Config struct {
	ApplicationName string
	ApplicationURI  string
	ProductURI      string

	SessionName       string
	SessionTimeout    time.Duration
	SecurityPolicyURI string
	// TimeoutHint is sent with each request.
	TimeoutHint time.Duration
	// ConnectTimeout limits the time to connect and complete the handshake.
	ConnectTimeout time.Duration

	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32

	MaxStringLength     uint32
	MaxByteStringLength uint32
	MaxArrayLength      uint32
}

// Validate returns nil if the config can be used to dial a server.
func (c Config) Validate() error {
	if c.ApplicationName == "" || c.ApplicationURI == "" {
		return ua.BadConfigurationError
	}
	if c.SecurityPolicyURI != ua.SecurityPolicyURINone {
		return ua.BadConfigurationError
	}
	if c.ReceiveBufferSize < ua.MinBufferSize || c.SendBufferSize < ua.MinBufferSize {
		return ua.BadConfigurationError
	}
	if c.ConnectTimeout <= 0 || c.SessionTimeout < 0 || c.TimeoutHint < 0 {
		return ua.BadConfigurationError
	}
	return nil
}
