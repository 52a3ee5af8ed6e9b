// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"github.com/awcullen/uakit/ua"
)

// ObjectNode is a node of class Object.
type ObjectNode struct {
	baseNode
	eventNotifier byte
}

var _ Node = (*ObjectNode)(nil)

// NewObjectNode creates an Object node.
func NewObjectNode(nodeID ua.NodeID, browseName ua.QualifiedName, displayName ua.LocalizedText, description ua.LocalizedText, references []ua.Reference, eventNotifier byte) *ObjectNode {
	return &ObjectNode{
		baseNode:      newBaseNode(ua.NodeClassObject, nodeID, browseName, displayName, description, references),
		eventNotifier: eventNotifier,
	}
}

// EventNotifier returns the EventNotifier attribute of this node.
func (n *ObjectNode) EventNotifier() byte {
	return n.eventNotifier
}

// IsAttributeIDValid returns true if attributeId is supported for the node.
func (n *ObjectNode) IsAttributeIDValid(attributeID uint32) bool {
	return isBaseAttributeID(attributeID) || attributeID == ua.AttributeIDEventNotifier
}
