// Copyright 2021 Converter Systems LLC. All rights reserved.

package helpers_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/awcullen/uakit/client"
	"github.com/awcullen/uakit/helpers"
	"github.com/awcullen/uakit/server"
	"github.com/awcullen/uakit/ua"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func newTestServer(t *testing.T) *server.Server {
	srv, err := helpers.NewServerWithDefaults(server.WithMetricsRegisterer(prometheus.NewRegistry()))
	assert.NilError(t, err)
	assert.Assert(t, srv != nil)
	return srv
}

func TestSetServerDefaults(t *testing.T) {
	var cfg server.Config
	assert.NilError(t, helpers.SetServerDefaults(&cfg))
	assert.NilError(t, cfg.Validate())
	assert.Check(t, is.Contains(cfg.EndpointURL, "opc.tcp://"))
	assert.Check(t, is.Contains(cfg.EndpointURL, ":4840"))
	assert.DeepEqual(t, cfg.SecurityPolicyURIs, []string{ua.SecurityPolicyURINone})
	assert.Equal(t, cfg.ReceiveBufferSize, ua.DefaultBufferSize)
	assert.Equal(t, cfg.SendBufferSize, ua.DefaultBufferSize)
	assert.Equal(t, cfg.MaxMessageSize, ua.DefaultMaxMessageSize)
	assert.Equal(t, cfg.MaxChunkCount, ua.DefaultMaxChunkCount)
	assert.Equal(t, cfg.MaxWorkerThreads, 4)
	assert.Equal(t, cfg.BuildInfo.SoftwareVersion, helpers.Version)

	// a second pass changes nothing
	again := cfg
	assert.NilError(t, helpers.SetServerDefaults(&again))
	assert.DeepEqual(t, again, cfg)

	srv, err := server.New(cfg, server.WithMetricsRegisterer(prometheus.NewRegistry()))
	assert.NilError(t, err)
	assert.Assert(t, srv != nil)
}

func TestSetServerDefaultsPreservesFields(t *testing.T) {
	cfg := server.Config{
		EndpointURL:       "opc.tcp://127.0.0.1:48010",
		ApplicationURI:    "urn:127.0.0.1:boiler",
		ReceiveBufferSize: 8192,
		MaxWorkerThreads:  1,
		NamespaceURIs:     []string{"http://example.com/boiler"},
	}
	assert.NilError(t, helpers.SetServerDefaults(&cfg))
	assert.Equal(t, cfg.EndpointURL, "opc.tcp://127.0.0.1:48010")
	assert.Equal(t, cfg.ApplicationURI, "urn:127.0.0.1:boiler")
	assert.Equal(t, cfg.ReceiveBufferSize, uint32(8192))
	assert.Equal(t, cfg.SendBufferSize, ua.DefaultBufferSize)
	assert.Equal(t, cfg.MaxWorkerThreads, 1)
	assert.DeepEqual(t, cfg.NamespaceURIs, []string{"http://example.com/boiler"})
}

func TestSetDefaultsNil(t *testing.T) {
	assert.Equal(t, helpers.SetServerDefaults(nil), ua.BadInvalidArgument)
	assert.Equal(t, helpers.SetClientDefaults(nil), ua.BadInvalidArgument)
}

func TestSetClientDefaults(t *testing.T) {
	cfg := client.Config{SessionName: "probe"}
	assert.NilError(t, helpers.SetClientDefaults(&cfg))
	assert.NilError(t, cfg.Validate())
	assert.Equal(t, cfg.SessionName, "probe")
	assert.Equal(t, cfg.SecurityPolicyURI, ua.SecurityPolicyURINone)
	assert.Equal(t, cfg.SessionTimeout, 2*time.Minute)
	assert.Equal(t, cfg.ConnectTimeout, 5*time.Second)

	again := cfg
	assert.NilError(t, helpers.SetClientDefaults(&again))
	assert.DeepEqual(t, again, cfg)
}

func TestNewServerWithConfig(t *testing.T) {
	srv, err := helpers.NewServerWithConfig(server.Config{EndpointURL: "http://127.0.0.1:4840"})
	assert.Equal(t, err, ua.BadTCPEndpointURLInvalid)
	assert.Assert(t, srv == nil)

	// a good config that fails to construct
	srv, err = helpers.NewServerWithDefaults(server.WithMetricsRegisterer(nil))
	assert.Equal(t, err, ua.BadInternalError)
	assert.Assert(t, srv == nil)

	srv = newTestServer(t)
	assert.Equal(t, srv.State(), ua.ServerStateUnknown)
}

func TestAddVariable(t *testing.T) {
	srv := newTestServer(t)
	m := srv.NamespaceManager()

	id, err := helpers.AddVariable(srv, 1, "the.answer", ua.ObjectIDObjectsFolder, "the answer", "the answer", int32(42))
	assert.NilError(t, err)
	assert.Equal(t, id, ua.NewNodeIDString(1, "the.answer"))

	dv := m.Read(id, ua.AttributeIDValue)
	assert.Equal(t, dv.StatusCode, ua.Good)
	assert.Equal(t, dv.Value, int32(42))
	assert.Equal(t, m.Read(id, ua.AttributeIDDisplayName).Value, ua.NewLocalizedText("the answer", "en-US"))
	assert.Equal(t, m.Read(id, ua.AttributeIDDescription).Value, ua.NewLocalizedText("the answer", "en-US"))
	assert.Equal(t, m.Read(id, ua.AttributeIDBrowseName).Value, ua.NewQualifiedName(1, "the answer"))
	assert.Equal(t, m.Read(id, ua.AttributeIDDataType).Value, ua.DataTypeIDInt32)
	assert.Equal(t, m.Read(id, ua.AttributeIDValueRank).Value, ua.ValueRankScalar)
	rw := ua.AccessLevelsCurrentRead | ua.AccessLevelsCurrentWrite
	assert.Equal(t, m.Read(id, ua.AttributeIDAccessLevel).Value, rw)
	assert.Equal(t, m.Read(id, ua.AttributeIDUserAccessLevel).Value, rw)

	// organized by the Objects folder
	refs, err := m.Browse(ua.ObjectIDObjectsFolder)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(refs, ua.NewReference(ua.ReferenceTypeIDOrganizes, false, id)))
	refs, err = m.Browse(id)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(refs, ua.NewReference(ua.ReferenceTypeIDHasTypeDefinition, false, ua.VariableTypeIDBaseDataVariableType)))

	// writable
	assert.NilError(t, m.Write(id, ua.NewDataValue(int32(43), ua.Good, time.Time{}, 0, time.Time{}, 0)))
	assert.Equal(t, m.Read(id, ua.AttributeIDValue).Value, int32(43))
}

func TestAddVariableFailures(t *testing.T) {
	srv := newTestServer(t)
	m := srv.NamespaceManager()
	_, err := helpers.AddVariable(srv, 1, "the.answer", ua.ObjectIDObjectsFolder, "the answer", "the answer", int32(42))
	assert.NilError(t, err)
	count := m.NodeCount()

	cases := []struct {
		name        string
		identifier  interface{}
		parentID    ua.NodeID
		browseName  string
		displayName string
		want        ua.StatusCode
	}{
		{"duplicate", "the.answer", ua.ObjectIDObjectsFolder, "the answer", "the answer", ua.BadNodeIDExists},
		{"missing parent", "orphan", ua.NewNodeIDString(1, "nowhere"), "orphan", "orphan", ua.BadParentNodeIDInvalid},
		{"empty browse name", "nameless", ua.ObjectIDObjectsFolder, "", "nameless", ua.BadBrowseNameInvalid},
		{"empty display name", "nameless", ua.ObjectIDObjectsFolder, "nameless", "", ua.BadBrowseNameInvalid},
		{"bad identifier", 3.14, ua.ObjectIDObjectsFolder, "pi", "pi", ua.BadNodeIDInvalid},
		{"unregistered namespace", "far", ua.ObjectIDObjectsFolder, "far", "far", ua.BadNodeIDRejected},
	}
	for _, c := range cases {
		ns := uint16(1)
		if c.name == "unregistered namespace" {
			ns = 9
		}
		_, err := helpers.AddVariable(srv, ns, c.identifier, c.parentID, c.browseName, c.displayName, int32(0))
		assert.Equal(t, err, c.want, c.name)
	}
	// no partial nodes
	assert.Equal(t, m.NodeCount(), count)
	assert.Equal(t, m.Read(ua.NewNodeIDString(1, "the.answer"), ua.AttributeIDValue).Value, int32(42))

	_, err = helpers.AddVariable(nil, 1, "x", ua.ObjectIDObjectsFolder, "x", "x", int32(0))
	assert.Equal(t, err, ua.BadInvalidArgument)
}

func TestAddObjectAndStringVariable(t *testing.T) {
	srv := newTestServer(t)
	m := srv.NamespaceManager()

	folder, err := helpers.AddObject(srv, 1, "boiler", ua.ObjectIDObjectsFolder, "Boiler", "Boiler #1")
	assert.NilError(t, err)
	obj, ok := m.FindObject(folder)
	assert.Assert(t, ok)
	assert.Equal(t, obj.DisplayName(), ua.NewLocalizedText("Boiler #1", "en-US"))
	refs, err := m.Browse(folder)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(refs, ua.NewReference(ua.ReferenceTypeIDHasTypeDefinition, false, ua.ObjectTypeIDFolderType)))

	id, err := helpers.AddStringVariable(srv, 1, 1001, folder, "Status", "Status", "idle")
	assert.NilError(t, err)
	assert.Equal(t, id, ua.NewNodeIDNumeric(1, 1001))
	assert.Equal(t, m.Read(id, ua.AttributeIDValue).Value, "idle")
	assert.Equal(t, m.Read(id, ua.AttributeIDDataType).Value, ua.DataTypeIDString)

	children := m.GetChildren(obj, []ua.NodeID{ua.ReferenceTypeIDOrganizes})
	assert.Equal(t, len(children), 1)
	assert.Equal(t, children[0].NodeID(), id)
}

func TestLoadServerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	data := `
endpoint_url = "opc.tcp://127.0.0.1:48400"
namespace_uris = ["http://example.com/boiler"]
max_worker_threads = 8

[build_info]
product_name = "boiler"
`
	assert.NilError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg := server.Config{ApplicationURI: "urn:127.0.0.1:boiler", MaxWorkerThreads: 2, ReceiveBufferSize: 8192}
	assert.NilError(t, helpers.LoadServerConfig(path, &cfg))
	assert.Equal(t, cfg.EndpointURL, "opc.tcp://127.0.0.1:48400")
	assert.Equal(t, cfg.ApplicationURI, "urn:127.0.0.1:boiler")
	assert.DeepEqual(t, cfg.NamespaceURIs, []string{"http://example.com/boiler"})
	assert.Equal(t, cfg.MaxWorkerThreads, 8)
	assert.Equal(t, cfg.ReceiveBufferSize, uint32(8192))
	assert.Equal(t, cfg.BuildInfo.ProductName, "boiler")

	assert.NilError(t, helpers.SetServerDefaults(&cfg))
	assert.NilError(t, cfg.Validate())
}

func TestLoadServerConfigErrors(t *testing.T) {
	var cfg server.Config
	err := helpers.LoadServerConfig(filepath.Join(t.TempDir(), "missing.toml"), &cfg)
	assert.Equal(t, errors.Cause(err), ua.BadConfigurationError)

	path := filepath.Join(t.TempDir(), "server.toml")
	assert.NilError(t, os.WriteFile(path, []byte(`endpoint = "opc.tcp://127.0.0.1:4840"`), 0o600))
	err = helpers.LoadServerConfig(path, &cfg)
	assert.Equal(t, ua.ToStatusCode(err), ua.BadConfigurationError)
	assert.Equal(t, cfg.EndpointURL, "")

	assert.Equal(t, helpers.LoadServerConfig(path, nil), ua.BadInvalidArgument)
}
