// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/awcullen/uakit/client"
	"github.com/awcullen/uakit/helpers"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newProbeCommand(v *viper.Viper) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "probe <endpoint>",
		Short: "connect to an OPC UA server and print the negotiated transport limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), v.GetString("log-level"))
			if err != nil {
				return errors.Wrap(err, "parsing log level")
			}
			var cfg client.Config
			cfg.ConnectTimeout = timeout
			if err := helpers.SetClientDefaults(&cfg); err != nil {
				return errors.Wrap(err, "configuring client")
			}
			ch, err := client.Dial(cmd.Context(), args[0], cfg, client.WithLogger(logger))
			if err != nil {
				return errors.Wrapf(err, "probing %s", args[0])
			}
			defer ch.Close()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "endpoint: %s\n", ch.EndpointURL())
			fmt.Fprintf(out, "receiveBufferSize: %d\n", ch.ReceiveBufferSize())
			fmt.Fprintf(out, "sendBufferSize: %d\n", ch.SendBufferSize())
			fmt.Fprintf(out, "maxMessageSize: %d\n", ch.MaxMessageSize())
			fmt.Fprintf(out, "maxChunkCount: %d\n", ch.MaxChunkCount())
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "time to connect and complete the handshake")
	return cmd
}
