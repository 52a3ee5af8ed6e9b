// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"github.com/awcullen/uakit/ua"
)

// VariableTypeNode is a node of class VariableType.
type VariableTypeNode struct {
	baseNode
	value           ua.DataValue
	dataType        ua.NodeID
	valueRank       int32
	arrayDimensions []uint32
	isAbstract      bool
}

var _ Node = (*VariableTypeNode)(nil)

// NewVariableTypeNode creates a VariableType node with a default value for its instances.
func NewVariableTypeNode(nodeID ua.NodeID, browseName ua.QualifiedName, displayName ua.LocalizedText, description ua.LocalizedText, references []ua.Reference, value ua.DataValue, dataType ua.NodeID, valueRank int32, arrayDimensions []uint32, isAbstract bool) *VariableTypeNode {
	return &VariableTypeNode{
		baseNode:        newBaseNode(ua.NodeClassVariableType, nodeID, browseName, displayName, description, references),
		value:           value,
		dataType:        dataType,
		valueRank:       valueRank,
		arrayDimensions: arrayDimensions,
		isAbstract:      isAbstract,
	}
}

// Value returns the default value of instances of this type.
func (n *VariableTypeNode) Value() ua.DataValue {
	return n.value
}

// DataType returns the DataType attribute of this node.
func (n *VariableTypeNode) DataType() ua.NodeID {
	return n.dataType
}

// ValueRank returns the ValueRank attribute of this node.
func (n *VariableTypeNode) ValueRank() int32 {
	return n.valueRank
}

// ArrayDimensions returns the ArrayDimensions attribute of this node.
func (n *VariableTypeNode) ArrayDimensions() []uint32 {
	return n.arrayDimensions
}

// IsAbstract returns the IsAbstract attribute of this node.
func (n *VariableTypeNode) IsAbstract() bool {
	return n.isAbstract
}

// IsAttributeIDValid returns true if attributeId is supported for the node.
func (n *VariableTypeNode) IsAttributeIDValid(attributeID uint32) bool {
	switch attributeID {
	case ua.AttributeIDValue, ua.AttributeIDDataType, ua.AttributeIDValueRank,
		ua.AttributeIDArrayDimensions, ua.AttributeIDIsAbstract:
		return true
	default:
		return isBaseAttributeID(attributeID)
	}
}
