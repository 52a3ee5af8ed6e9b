// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"github.com/awcullen/uakit/ua"
)

// MethodNode is a node of class Method. Calling methods is not supported.
type MethodNode struct {
	baseNode
	executable bool
}

var _ Node = (*MethodNode)(nil)

// NewMethodNode creates a Method node.
func NewMethodNode(nodeID ua.NodeID, browseName ua.QualifiedName, displayName ua.LocalizedText, description ua.LocalizedText, references []ua.Reference, executable bool) *MethodNode {
	return &MethodNode{
		baseNode:   newBaseNode(ua.NodeClassMethod, nodeID, browseName, displayName, description, references),
		executable: executable,
	}
}

// Executable returns the Executable attribute of this node.
func (n *MethodNode) Executable() bool {
	return n.executable
}

// IsAttributeIDValid returns true if attributeId is supported for the node.
func (n *MethodNode) IsAttributeIDValid(attributeID uint32) bool {
	switch attributeID {
	case ua.AttributeIDExecutable, ua.AttributeIDUserExecutable:
		return true
	default:
		return isBaseAttributeID(attributeID)
	}
}
