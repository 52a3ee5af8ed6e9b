// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"github.com/awcullen/uakit/ua"
)

// ViewNode is a node of class View.
type ViewNode struct {
	baseNode
	containsNoLoops bool
	eventNotifier   byte
}

var _ Node = (*ViewNode)(nil)

// NewViewNode creates a View node.
func NewViewNode(nodeID ua.NodeID, browseName ua.QualifiedName, displayName ua.LocalizedText, description ua.LocalizedText, references []ua.Reference, containsNoLoops bool, eventNotifier byte) *ViewNode {
	return &ViewNode{
		baseNode:        newBaseNode(ua.NodeClassView, nodeID, browseName, displayName, description, references),
		containsNoLoops: containsNoLoops,
		eventNotifier:   eventNotifier,
	}
}

// ContainsNoLoops returns the ContainsNoLoops attribute of this node.
func (n *ViewNode) ContainsNoLoops() bool {
	return n.containsNoLoops
}

// EventNotifier returns the EventNotifier attribute of this node.
func (n *ViewNode) EventNotifier() byte {
	return n.eventNotifier
}

// IsAttributeIDValid returns true if attributeId is supported for the node.
func (n *ViewNode) IsAttributeIDValid(attributeID uint32) bool {
	switch attributeID {
	case ua.AttributeIDContainsNoLoops, ua.AttributeIDEventNotifier:
		return true
	default:
		return isBaseAttributeID(attributeID)
	}
}
