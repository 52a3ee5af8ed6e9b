// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"sync"

	"github.com/awcullen/uakit/ua"
)

// Node is a node of the address space.
type Node interface {
	NodeID() ua.NodeID
	NodeClass() ua.NodeClass
	BrowseName() ua.QualifiedName
	DisplayName() ua.LocalizedText
	Description() ua.LocalizedText
	References() []ua.Reference
	SetReferences([]ua.Reference)
	IsAttributeIDValid(uint32) bool
}

// baseNode holds the attributes shared by all node classes.
type baseNode struct {
	sync.RWMutex
	nodeID      ua.NodeID
	nodeClass   ua.NodeClass
	browseName  ua.QualifiedName
	displayName ua.LocalizedText
	description ua.LocalizedText
	references  []ua.Reference
}

func newBaseNode(nodeClass ua.NodeClass, nodeID ua.NodeID, browseName ua.QualifiedName, displayName ua.LocalizedText, description ua.LocalizedText, references []ua.Reference) baseNode {
	if references == nil {
		references = []ua.Reference{}
	}
	return baseNode{
		nodeID:      nodeID,
		nodeClass:   nodeClass,
		browseName:  browseName,
		displayName: displayName,
		description: description,
		references:  references,
	}
}

// NodeID returns the NodeID attribute of this node.
func (n *baseNode) NodeID() ua.NodeID {
	return n.nodeID
}

// NodeClass returns the NodeClass attribute of this node.
func (n *baseNode) NodeClass() ua.NodeClass {
	return n.nodeClass
}

// BrowseName returns the BrowseName attribute of this node.
func (n *baseNode) BrowseName() ua.QualifiedName {
	return n.browseName
}

// DisplayName returns the DisplayName attribute of this node.
func (n *baseNode) DisplayName() ua.LocalizedText {
	return n.displayName
}

// Description returns the Description attribute of this node.
func (n *baseNode) Description() ua.LocalizedText {
	return n.description
}

// References returns the References of this node.
func (n *baseNode) References() []ua.Reference {
	n.RLock()
	res := n.references
	n.RUnlock()
	return res
}

// SetReferences sets the References of this node.
func (n *baseNode) SetReferences(value []ua.Reference) {
	n.Lock()
	n.references = value
	n.Unlock()
}

func isBaseAttributeID(attributeID uint32) bool {
	switch attributeID {
	case ua.AttributeIDNodeID, ua.AttributeIDNodeClass, ua.AttributeIDBrowseName,
		ua.AttributeIDDisplayName, ua.AttributeIDDescription, ua.AttributeIDWriteMask,
		ua.AttributeIDUserWriteMask:
		return true
	default:
		return false
	}
}
