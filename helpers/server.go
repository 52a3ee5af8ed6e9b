// Copyright 2021 Converter Systems LLC. All rights reserved.

package helpers

import (
	"github.com/awcullen/uakit/server"
	"github.com/awcullen/uakit/ua"
)

// NewServerWithDefaults constructs a server from a zero config with defaults applied.
// It never returns a server together with an error.
func NewServerWithDefaults(opts ...server.Option) (*server.Server, error) {
	return NewServerWithConfig(server.Config{}, opts...)
}

// NewServerWithConfig applies defaults to the zero fields of the config and constructs a server.
// A config that cannot be defaulted or validated returns that status. If construction fails
// with a valid config, returns BadInternalError.
func NewServerWithConfig(cfg server.Config, opts ...server.Option) (*server.Server, error) {
	if err := SetServerDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	srv, err := server.New(cfg, opts...)
	if err != nil || srv == nil {
		return nil, ua.BadInternalError
	}
	return srv, nil
}
