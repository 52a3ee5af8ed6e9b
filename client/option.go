// Copyright 2021 Converter Systems LLC. All rights reserved.

package client

import (
	"github.com/rs/zerolog"
)

// Option is a functional option to be applied to a client during initialization.
type Option func(*Client) error

// WithLogger sets the logger of the client. (default: no logging)
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithTrace logs all transport messages at debug level.
func WithTrace() Option {
	return func(c *Client) error {
		c.trace = true
		return nil
	}
}
