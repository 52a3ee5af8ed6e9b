// Copyright 2021 Converter Systems LLC. All rights reserved.

package helpers

import (
	"github.com/awcullen/uakit/server"
	"github.com/awcullen/uakit/ua"
)

// DefaultLocale of the display names and descriptions of registered nodes.
const DefaultLocale = "en-US"

// AddVariable registers a readable and writable scalar variable under the parent, organized by the parent.
// The identifier may be a uint32, int, string, uuid.UUID or ua.ByteString. The data type is derived from the value.
// Errors of the server are returned verbatim, e.g. BadNodeIDExists or BadParentNodeIDInvalid.
func AddVariable(srv *server.Server, ns uint16, identifier interface{}, parentID ua.NodeID, browseName, displayName string, value ua.Variant) (ua.NodeID, error) {
	if srv == nil {
		return ua.NilNodeID, ua.BadInvalidArgument
	}
	if browseName == "" || displayName == "" {
		return ua.NilNodeID, ua.BadBrowseNameInvalid
	}
	id, err := ua.NewNodeID(ns, identifier)
	if err != nil {
		return ua.NilNodeID, err
	}
	text := ua.NewLocalizedText(displayName, DefaultLocale)
	return srv.NamespaceManager().AddNodesItem(server.AddNodesItem{
		ParentNodeID:       parentID,
		ReferenceTypeID:    ua.ReferenceTypeIDOrganizes,
		RequestedNewNodeID: id,
		BrowseName:         ua.NewQualifiedName(ns, browseName),
		NodeClass:          ua.NodeClassVariable,
		NodeAttributes: ua.VariableAttributes{
			DisplayName:     text,
			Description:     text,
			Value:           value,
			DataType:        ua.DataTypeIDOf(value),
			ValueRank:       ua.ValueRankScalar,
			AccessLevel:     ua.AccessLevelsCurrentRead | ua.AccessLevelsCurrentWrite,
			UserAccessLevel: ua.AccessLevelsCurrentRead | ua.AccessLevelsCurrentWrite,
		},
		TypeDefinition: ua.VariableTypeIDBaseDataVariableType,
	})
}

// AddStringVariable registers a string variable with a numeric identifier under the parent.
func AddStringVariable(srv *server.Server, ns uint16, id uint32, parentID ua.NodeID, browseName, displayName, value string) (ua.NodeID, error) {
	return AddVariable(srv, ns, id, parentID, browseName, displayName, value)
}

// AddObject registers a folder under the parent, organized by the parent.
func AddObject(srv *server.Server, ns uint16, identifier interface{}, parentID ua.NodeID, browseName, displayName string) (ua.NodeID, error) {
	if srv == nil {
		return ua.NilNodeID, ua.BadInvalidArgument
	}
	if browseName == "" || displayName == "" {
		return ua.NilNodeID, ua.BadBrowseNameInvalid
	}
	id, err := ua.NewNodeID(ns, identifier)
	if err != nil {
		return ua.NilNodeID, err
	}
	text := ua.NewLocalizedText(displayName, DefaultLocale)
	return srv.NamespaceManager().AddNodesItem(server.AddNodesItem{
		ParentNodeID:       parentID,
		ReferenceTypeID:    ua.ReferenceTypeIDOrganizes,
		RequestedNewNodeID: id,
		BrowseName:         ua.NewQualifiedName(ns, browseName),
		NodeClass:          ua.NodeClassObject,
		NodeAttributes: ua.ObjectAttributes{
			DisplayName: text,
			Description: text,
		},
		TypeDefinition: ua.ObjectTypeIDFolderType,
	})
}
