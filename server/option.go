// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"github.com/awcullen/uakit/ua"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Option is a functional option to be applied to a server during initialization.
type Option func(*Server) error

// WithLogger sets the logger of the server. (default: no logging)
func WithLogger(logger zerolog.Logger) Option {
	return func(srv *Server) error {
		srv.logger = logger
		return nil
	}
}

// WithMetricsRegisterer registers the server's metrics with the given registerer. (default: metrics are kept but not registered)
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(srv *Server) error {
		if reg == nil {
			return ua.BadInvalidArgument
		}
		srv.registerer = reg
		return nil
	}
}

// WithStateListener sets a func that listens for change of ServerState.
func WithStateListener(listener func(state ua.ServerState)) Option {
	return func(srv *Server) error {
		srv.stateListener = listener
		return nil
	}
}

// WithTrace logs all transport messages at debug level.
func WithTrace() Option {
	return func(srv *Server) error {
		srv.trace = true
		return nil
	}
}
