// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"github.com/awcullen/uakit/ua"
)

// ObjectTypeNode is a node of class ObjectType.
type ObjectTypeNode struct {
	baseNode
	isAbstract bool
}

var _ Node = (*ObjectTypeNode)(nil)

// NewObjectTypeNode creates an ObjectType node.
func NewObjectTypeNode(nodeID ua.NodeID, browseName ua.QualifiedName, displayName ua.LocalizedText, description ua.LocalizedText, references []ua.Reference, isAbstract bool) *ObjectTypeNode {
	return &ObjectTypeNode{
		baseNode:   newBaseNode(ua.NodeClassObjectType, nodeID, browseName, displayName, description, references),
		isAbstract: isAbstract,
	}
}

// IsAbstract returns the IsAbstract attribute of this node.
func (n *ObjectTypeNode) IsAbstract() bool {
	return n.isAbstract
}

// IsAttributeIDValid returns true if attributeId is supported for the node.
func (n *ObjectTypeNode) IsAttributeIDValid(attributeID uint32) bool {
	return isBaseAttributeID(attributeID) || attributeID == ua.AttributeIDIsAbstract
}
