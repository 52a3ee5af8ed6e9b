// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"github.com/awcullen/uakit/ua"
)

// VariableNode is a node of class Variable.
type VariableNode struct {
	baseNode
	value                   ua.DataValue
	dataType                ua.NodeID
	valueRank               int32
	arrayDimensions         []uint32
	accessLevel             byte
	userAccessLevel         byte
	minimumSamplingInterval float64
	historizing             bool
	readValueHandler        func() ua.DataValue
}

var _ Node = (*VariableNode)(nil)

// NewVariableNode creates a Variable node holding value. The UserAccessLevel starts equal to accessLevel.
func NewVariableNode(nodeID ua.NodeID, browseName ua.QualifiedName, displayName ua.LocalizedText, description ua.LocalizedText, references []ua.Reference, value ua.DataValue, dataType ua.NodeID, valueRank int32, arrayDimensions []uint32, accessLevel byte, minimumSamplingInterval float64, historizing bool) *VariableNode {
	return &VariableNode{
		baseNode:                newBaseNode(ua.NodeClassVariable, nodeID, browseName, displayName, description, references),
		value:                   value,
		dataType:                dataType,
		valueRank:               valueRank,
		arrayDimensions:         arrayDimensions,
		accessLevel:             accessLevel,
		userAccessLevel:         accessLevel,
		minimumSamplingInterval: minimumSamplingInterval,
		historizing:             historizing,
	}
}

// Value returns the value of the Variable.
func (n *VariableNode) Value() ua.DataValue {
	n.RLock()
	h := n.readValueHandler
	if h == nil {
		res := n.value
		n.RUnlock()
		return res
	}
	n.RUnlock()
	return h()
}

// SetValue sets the value of the Variable.
func (n *VariableNode) SetValue(value ua.DataValue) {
	n.Lock()
	n.value = value
	n.Unlock()
}

// SetReadValueHandler sets a func that computes the value on each read.
func (n *VariableNode) SetReadValueHandler(value func() ua.DataValue) {
	n.Lock()
	n.readValueHandler = value
	n.Unlock()
}

// DataType returns the DataType attribute of this node.
func (n *VariableNode) DataType() ua.NodeID {
	return n.dataType
}

// ValueRank returns the ValueRank attribute of this node.
func (n *VariableNode) ValueRank() int32 {
	return n.valueRank
}

// ArrayDimensions returns the ArrayDimensions attribute of this node.
func (n *VariableNode) ArrayDimensions() []uint32 {
	return n.arrayDimensions
}

// AccessLevel returns the AccessLevel attribute of this node.
func (n *VariableNode) AccessLevel() byte {
	return n.accessLevel
}

// UserAccessLevel returns the UserAccessLevel attribute of this node.
func (n *VariableNode) UserAccessLevel() byte {
	n.RLock()
	defer n.RUnlock()
	return n.userAccessLevel
}

// SetUserAccessLevel sets the UserAccessLevel attribute of this node.
func (n *VariableNode) SetUserAccessLevel(value byte) {
	n.Lock()
	n.userAccessLevel = value
	n.Unlock()
}

// MinimumSamplingInterval returns the MinimumSamplingInterval attribute of this node.
func (n *VariableNode) MinimumSamplingInterval() float64 {
	return n.minimumSamplingInterval
}

// Historizing returns the Historizing attribute of this node.
func (n *VariableNode) Historizing() bool {
	return n.historizing
}

// IsAttributeIDValid returns true if attributeId is supported for the node.
func (n *VariableNode) IsAttributeIDValid(attributeID uint32) bool {
	switch attributeID {
	case ua.AttributeIDValue, ua.AttributeIDDataType, ua.AttributeIDValueRank,
		ua.AttributeIDArrayDimensions, ua.AttributeIDAccessLevel, ua.AttributeIDUserAccessLevel,
		ua.AttributeIDMinimumSamplingInterval, ua.AttributeIDHistorizing:
		return true
	default:
		return isBaseAttributeID(attributeID)
	}
}
