// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"github.com/awcullen/uakit/ua"
)

// DataTypeNode is a node of class DataType.
type DataTypeNode struct {
	baseNode
	isAbstract bool
}

var _ Node = (*DataTypeNode)(nil)

// NewDataTypeNode creates a DataType node.
func NewDataTypeNode(nodeID ua.NodeID, browseName ua.QualifiedName, displayName ua.LocalizedText, description ua.LocalizedText, references []ua.Reference, isAbstract bool) *DataTypeNode {
	return &DataTypeNode{
		baseNode:   newBaseNode(ua.NodeClassDataType, nodeID, browseName, displayName, description, references),
		isAbstract: isAbstract,
	}
}

// IsAbstract returns the IsAbstract attribute of this node.
func (n *DataTypeNode) IsAbstract() bool {
	return n.isAbstract
}

// IsAttributeIDValid returns true if attributeId is supported for the node.
func (n *DataTypeNode) IsAttributeIDValid(attributeID uint32) bool {
	return isBaseAttributeID(attributeID) || attributeID == ua.AttributeIDIsAbstract
}
