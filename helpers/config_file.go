// Copyright 2021 Converter Systems LLC. All rights reserved.

package helpers

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/awcullen/uakit/server"
	"github.com/awcullen/uakit/ua"
	"github.com/pkg/errors"
)

// server.toml key mapping to server.Config.
type fileConfig struct {
	EndpointURL               string          `toml:"endpoint_url"`
	ApplicationURI            string          `toml:"application_uri"`
	ApplicationName           string          `toml:"application_name"`
	ProductURI                string          `toml:"product_uri"`
	NamespaceURIs             []string        `toml:"namespace_uris"`
	SecurityPolicyURIs        []string        `toml:"security_policy_uris"`
	ReceiveBufferSize         uint32          `toml:"receive_buffer_size"`
	SendBufferSize            uint32          `toml:"send_buffer_size"`
	MaxMessageSize            uint32          `toml:"max_message_size"`
	MaxChunkCount             uint32          `toml:"max_chunk_count"`
	MaxStringLength           uint32          `toml:"max_string_length"`
	MaxByteStringLength       uint32          `toml:"max_byte_string_length"`
	MaxArrayLength            uint32          `toml:"max_array_length"`
	MaxWorkerThreads          int             `toml:"max_worker_threads"`
	MaxNodesPerNodeManagement uint32          `toml:"max_nodes_per_node_management"`
	BuildInfo                 buildInfoConfig `toml:"build_info"`
}

type buildInfoConfig struct {
	ProductName      string `toml:"product_name"`
	ManufacturerName string `toml:"manufacturer_name"`
	SoftwareVersion  string `toml:"software_version"`
	BuildNumber      string `toml:"build_number"`
}

// LoadServerConfig overlays the keys defined in the TOML file onto the config.
// Keys absent from the file leave the config unchanged. Errors have cause BadConfigurationError.
func LoadServerConfig(path string, cfg *server.Config) error {
	if cfg == nil {
		return ua.BadInvalidArgument
	}
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return errors.Wrapf(ua.BadConfigurationError, "load server config %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return errors.Wrapf(ua.BadConfigurationError, "load server config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("endpoint_url") {
		cfg.EndpointURL = strings.TrimSpace(raw.EndpointURL)
	}
	if meta.IsDefined("application_uri") {
		cfg.ApplicationURI = strings.TrimSpace(raw.ApplicationURI)
	}
	if meta.IsDefined("application_name") {
		cfg.ApplicationName = strings.TrimSpace(raw.ApplicationName)
	}
	if meta.IsDefined("product_uri") {
		cfg.ProductURI = strings.TrimSpace(raw.ProductURI)
	}
	if meta.IsDefined("namespace_uris") {
		cfg.NamespaceURIs = raw.NamespaceURIs
	}
	if meta.IsDefined("security_policy_uris") {
		cfg.SecurityPolicyURIs = raw.SecurityPolicyURIs
	}
	if meta.IsDefined("receive_buffer_size") {
		cfg.ReceiveBufferSize = raw.ReceiveBufferSize
	}
	if meta.IsDefined("send_buffer_size") {
		cfg.SendBufferSize = raw.SendBufferSize
	}
	if meta.IsDefined("max_message_size") {
		cfg.MaxMessageSize = raw.MaxMessageSize
	}
	if meta.IsDefined("max_chunk_count") {
		cfg.MaxChunkCount = raw.MaxChunkCount
	}
	if meta.IsDefined("max_string_length") {
		cfg.MaxStringLength = raw.MaxStringLength
	}
	if meta.IsDefined("max_byte_string_length") {
		cfg.MaxByteStringLength = raw.MaxByteStringLength
	}
	if meta.IsDefined("max_array_length") {
		cfg.MaxArrayLength = raw.MaxArrayLength
	}
	if meta.IsDefined("max_worker_threads") {
		cfg.MaxWorkerThreads = raw.MaxWorkerThreads
	}
	if meta.IsDefined("max_nodes_per_node_management") {
		cfg.MaxNodesPerNodeManagement = raw.MaxNodesPerNodeManagement
	}
	if meta.IsDefined("build_info", "product_name") {
		cfg.BuildInfo.ProductName = strings.TrimSpace(raw.BuildInfo.ProductName)
	}
	if meta.IsDefined("build_info", "manufacturer_name") {
		cfg.BuildInfo.ManufacturerName = strings.TrimSpace(raw.BuildInfo.ManufacturerName)
	}
	if meta.IsDefined("build_info", "software_version") {
		cfg.BuildInfo.SoftwareVersion = strings.TrimSpace(raw.BuildInfo.SoftwareVersion)
	}
	if meta.IsDefined("build_info", "build_number") {
		cfg.BuildInfo.BuildNumber = strings.TrimSpace(raw.BuildInfo.BuildNumber)
	}
	return nil
}
