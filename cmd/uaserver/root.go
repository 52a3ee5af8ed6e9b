// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/awcullen/uakit/helpers"
	"github.com/awcullen/uakit/server"
	"github.com/awcullen/uakit/ua"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "uaserver",
		Short:         "uaserver runs an OPC UA server with the variable ns=1;s=the.answer",
		SilenceErrors: true,
		SilenceUsage:  true,
		Example: `
  # listen on the default endpoint opc.tcp://<host>:4840
  uaserver

  # overlay a TOML config and serve metrics
  uaserver --config server.toml --metrics-addr :9090

  # same, configured from the environment
  UAKIT_CONFIG=server.toml UAKIT_METRICS_ADDR=:9090 uaserver
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.OutOrStdout(), v.GetString("log-level"))
			if err != nil {
				return errors.Wrap(err, "parsing log level")
			}
			return runServer(cmd.Context(), v, logger)
		},
	}

	persistentFlags := cmd.PersistentFlags()
	persistentFlags.String("log-level", "info", "log level (trace, debug, info, warn, error)")

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "path to TOML config file")
	flags.String("endpoint", "", "endpoint url to listen on, e.g. opc.tcp://localhost:4840")
	flags.String("metrics-addr", "", "listen address of the Prometheus scrape endpoint (empty disables)")
	flags.Bool("trace", false, "log every transport message at debug level")

	bindFlags(v, persistentFlags)
	bindFlags(v, flags)
	v.SetEnvPrefix("UAKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(newProbeCommand(v))
	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		v.BindPFlag(flag.Name, flag)
	})
}

func runServer(ctx context.Context, v *viper.Viper, logger zerolog.Logger) error {
	var cfg server.Config
	if path := strings.TrimSpace(v.GetString("config")); path != "" {
		if err := helpers.LoadServerConfig(path, &cfg); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("Loaded config file")
	}
	if endpoint := strings.TrimSpace(v.GetString("endpoint")); endpoint != "" {
		cfg.EndpointURL = endpoint
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithMetricsRegisterer(prometheus.DefaultRegisterer),
	}
	if v.GetBool("trace") {
		opts = append(opts, server.WithTrace())
	}
	srv, err := helpers.NewServerWithConfig(cfg, opts...)
	if err != nil {
		return errors.Wrap(err, "creating server")
	}

	id, err := helpers.AddVariable(srv, 1, "the.answer", ua.ObjectIDObjectsFolder, "the answer", "the answer", int32(42))
	if err != nil {
		return errors.Wrap(err, "adding variable")
	}
	logger.Info().Str("nodeId", id.String()).Msg("Added variable")

	if addr := strings.TrimSpace(v.GetString("metrics-addr")); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		hs := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Str("addr", addr).Msg("Error serving metrics")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			hs.Shutdown(shutdownCtx)
		}()
		logger.Info().Str("addr", addr).Msg("Serving metrics")
	}

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Stopping server")
		srv.Close()
	}()

	logger.Info().Str("endpoint", srv.EndpointURL()).Str("app", srv.Config().ApplicationName).Msg("Starting server")
	if err := srv.ListenAndServe(); err != ua.BadServerHalted {
		return errors.Wrap(err, "opening server")
	}
	return nil
}
