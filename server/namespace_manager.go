// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"reflect"
	"sync"
	"time"

	"github.com/awcullen/uakit/ua"
	"github.com/gammazero/deque"
)

var (
	hasChildandSubtypes = []ua.NodeID{ua.ReferenceTypeIDHasComponent, ua.ReferenceTypeIDHasProperty, ua.ReferenceTypeIDHasSubtype}
)

// NamespaceManager manages the namespaces for a server.
type NamespaceManager struct {
	sync.RWMutex
	server     *Server
	namespaces []string
	nodes      map[ua.NodeID]Node
}

// NewNamespaceManager instantiates a new NamespaceManager.
func NewNamespaceManager(server *Server) *NamespaceManager {
	m := &NamespaceManager{
		server:     server,
		namespaces: []string{"http://opcfoundation.org/UA/", server.config.ApplicationURI},
		nodes:      make(map[ua.NodeID]Node, 1024),
	}
	for _, nsu := range server.config.NamespaceURIs {
		m.Add(nsu)
	}
	return m
}

// Add adds a namespace to the end of the table and returns the index.
// If the namespace already exists then returns the index.
func (m *NamespaceManager) Add(nsu string) uint16 {
	m.Lock()
	defer m.Unlock()
	for i, ns := range m.namespaces {
		if ns == nsu {
			return uint16(i)
		}
	}
	m.namespaces = append(m.namespaces, nsu)
	return uint16(len(m.namespaces) - 1)
}

// Len returns the number of namespace.
func (m *NamespaceManager) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.namespaces)
}

// NamespaceUris returns a copy of the namespace table of the server.
func (m *NamespaceManager) NamespaceUris() []string {
	m.RLock()
	defer m.RUnlock()
	res := make([]string, len(m.namespaces))
	copy(res, m.namespaces)
	return res
}

// NodeCount returns the number of nodes in the address space.
func (m *NamespaceManager) NodeCount() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.nodes)
}

// FindNode returns the node with the given NodeID from the namespace.
func (m *NamespaceManager) FindNode(id ua.NodeID) (node Node, ok bool) {
	m.RLock()
	defer m.RUnlock()
	node, ok = m.nodes[id]
	return
}

// FindObject returns the node with the given NodeID from the namespace.
func (m *NamespaceManager) FindObject(id ua.NodeID) (node *ObjectNode, ok bool) {
	m.RLock()
	defer m.RUnlock()
	if node1, ok1 := m.nodes[id]; ok1 {
		node, ok = node1.(*ObjectNode)
	}
	return
}

// FindVariable returns the node with the given NodeID from the namespace.
func (m *NamespaceManager) FindVariable(id ua.NodeID) (node *VariableNode, ok bool) {
	m.RLock()
	defer m.RUnlock()
	if node1, ok1 := m.nodes[id]; ok1 {
		node, ok = node1.(*VariableNode)
	}
	return
}

// FindComponent returns the component or property of startNode with the given browseName.
func (m *NamespaceManager) FindComponent(startNode Node, browseName ua.QualifiedName) (node Node, ok bool) {
	m.RLock()
	defer m.RUnlock()
	for _, r := range startNode.References() {
		if !r.IsInverse && (r.ReferenceTypeID == ua.ReferenceTypeIDHasComponent || r.ReferenceTypeID == ua.ReferenceTypeIDHasProperty) {
			if node1, ok1 := m.nodes[r.TargetID]; ok1 && node1.BrowseName() == browseName {
				return node1, true
			}
		}
	}
	return
}

// IsSubtype returns whether the subtype is derived from the given supertype in the namespace.
func (m *NamespaceManager) IsSubtype(subtype, supertype ua.NodeID) bool {
	m.RLock()
	defer m.RUnlock()
	return m.isSubtype(subtype, supertype)
}

func (m *NamespaceManager) isSubtype(subtype, supertype ua.NodeID) bool {
	id := subtype
	for i := 0; i < 100; i++ {
		id = m.findSuperType(id)
		if id.IsNil() {
			return false
		}
		if id == supertype {
			return true
		}
	}
	m.server.logger.Warn().Str("type", subtype.String()).Msg("IsSubtype() exceeded limits")
	return false
}

// FindSuperType returns the immediate supertype for the type.
func (m *NamespaceManager) FindSuperType(typeid ua.NodeID) ua.NodeID {
	m.RLock()
	defer m.RUnlock()
	return m.findSuperType(typeid)
}

func (m *NamespaceManager) findSuperType(typeid ua.NodeID) ua.NodeID {
	if n, ok := m.nodes[typeid]; ok {
		for _, r := range n.References() {
			if r.IsInverse && r.ReferenceTypeID == ua.ReferenceTypeIDHasSubtype {
				return r.TargetID
			}
		}
	}
	return ua.NilNodeID
}

// AddNodes validates the nodes and adds them to the namespace.
// Nodes may refer to other nodes of the same call. Either all nodes are added or none.
// This method adds the inverse refs as well.
func (m *NamespaceManager) AddNodes(nodes ...Node) error {
	m.Lock()
	defer m.Unlock()
	if len(nodes) == 0 {
		return ua.BadNothingToDo
	}
	if max := m.server.config.MaxNodesPerNodeManagement; max > 0 && uint32(len(nodes)) > max {
		m.server.metrics.observeAdd(ua.BadTooManyOperations)
		return ua.BadTooManyOperations
	}
	pending := make(map[ua.NodeID]Node, len(nodes))
	for _, node := range nodes {
		if err := m.validateNode(node.NodeID(), node.BrowseName(), node.NodeClass(), node.References(), pending); err != nil {
			m.server.metrics.observeAdd(err)
			return err
		}
		pending[node.NodeID()] = node
	}
	m.addNodes(nodes)
	for range nodes {
		m.server.metrics.observeAdd(nil)
	}
	return nil
}

// AddNode validates the node and adds it to the namespace.
// This method adds the inverse refs as well.
func (m *NamespaceManager) AddNode(node Node) error {
	return m.AddNodes(node)
}

// AddNodesItem describes a node to be created from an attribute record.
type AddNodesItem struct {
	ParentNodeID       ua.NodeID
	ReferenceTypeID    ua.NodeID
	RequestedNewNodeID ua.NodeID
	BrowseName         ua.QualifiedName
	NodeClass          ua.NodeClass
	// NodeAttributes is the record matching NodeClass, e.g. ua.VariableAttributes, or a pointer to it.
	NodeAttributes interface{}
	TypeDefinition ua.NodeID
}

// AddNodesItem creates a node from the attribute record of the item and adds it to the namespace.
// Returns the NodeID of the new node.
func (m *NamespaceManager) AddNodesItem(item AddNodesItem) (ua.NodeID, error) {
	refs := []ua.Reference{ua.NewReference(item.ReferenceTypeID, true, item.ParentNodeID)}
	if !item.TypeDefinition.IsNil() {
		refs = append(refs, ua.NewReference(ua.ReferenceTypeIDHasTypeDefinition, false, item.TypeDefinition))
	}
	m.Lock()
	defer m.Unlock()
	node, err := m.newNode(item, refs)
	if err != nil {
		m.server.metrics.observeAdd(err)
		return ua.NilNodeID, err
	}
	m.addNodes([]Node{node})
	m.server.metrics.observeAdd(nil)
	return node.NodeID(), nil
}

func (m *NamespaceManager) newNode(item AddNodesItem, refs []ua.Reference) (Node, error) {
	id := item.RequestedNewNodeID
	if err := m.validateNode(id, item.BrowseName, item.NodeClass, refs, nil); err != nil {
		return nil, err
	}
	dt, ok := ua.AttributesTypeFor(item.NodeClass)
	if !ok {
		return nil, ua.BadNodeClassInvalid
	}
	if !dt.IsInstance(item.NodeAttributes) {
		return nil, ua.BadNodeAttributesInvalid
	}
	attrs := item.NodeAttributes
	if rv := reflect.ValueOf(attrs); rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, ua.BadNodeAttributesInvalid
		}
		attrs = rv.Elem().Interface()
	}
	switch a := attrs.(type) {
	case ua.ObjectAttributes:
		return NewObjectNode(id, item.BrowseName, a.DisplayName, a.Description, refs, a.EventNotifier), nil
	case ua.VariableAttributes:
		dataType := a.DataType
		if dataType.IsNil() {
			dataType = ua.DataTypeIDOf(a.Value)
		}
		if !m.isCompatible(dataType, a.Value) {
			return nil, ua.BadTypeMismatch
		}
		now := time.Now()
		n := NewVariableNode(id, item.BrowseName, a.DisplayName, a.Description, refs,
			ua.NewDataValue(a.Value, ua.Good, now, 0, now, 0),
			dataType, a.ValueRank, a.ArrayDimensions, a.AccessLevel, a.MinimumSamplingInterval, a.Historizing)
		if a.UserAccessLevel != 0 {
			n.SetUserAccessLevel(a.UserAccessLevel & a.AccessLevel)
		}
		return n, nil
	case ua.MethodAttributes:
		return NewMethodNode(id, item.BrowseName, a.DisplayName, a.Description, refs, a.Executable), nil
	case ua.ObjectTypeAttributes:
		return NewObjectTypeNode(id, item.BrowseName, a.DisplayName, a.Description, refs, a.IsAbstract), nil
	case ua.VariableTypeAttributes:
		return NewVariableTypeNode(id, item.BrowseName, a.DisplayName, a.Description, refs,
			ua.NewDataValue(a.Value, ua.Good, time.Time{}, 0, time.Time{}, 0),
			a.DataType, a.ValueRank, a.ArrayDimensions, a.IsAbstract), nil
	case ua.ReferenceTypeAttributes:
		return NewReferenceTypeNode(id, item.BrowseName, a.DisplayName, a.Description, refs, a.IsAbstract, a.Symmetric, a.InverseName), nil
	case ua.DataTypeAttributes:
		return NewDataTypeNode(id, item.BrowseName, a.DisplayName, a.Description, refs, a.IsAbstract), nil
	case ua.ViewAttributes:
		return NewViewNode(id, item.BrowseName, a.DisplayName, a.Description, refs, a.ContainsNoLoops, a.EventNotifier), nil
	default:
		return nil, ua.BadNodeAttributesInvalid
	}
}

// validateNode checks a new node against the address space and the nodes pending in the same call.
// The first inverse reference names the parent.
func (m *NamespaceManager) validateNode(id ua.NodeID, browseName ua.QualifiedName, nodeClass ua.NodeClass, refs []ua.Reference, pending map[ua.NodeID]Node) error {
	lookup := func(id ua.NodeID) (Node, bool) {
		if n, ok := m.nodes[id]; ok {
			return n, true
		}
		n, ok := pending[id]
		return n, ok
	}
	if !id.IsValid() {
		return ua.BadNodeIDInvalid
	}
	if int(id.NamespaceIndex()) >= len(m.namespaces) {
		return ua.BadNodeIDRejected
	}
	if _, ok := lookup(id); ok {
		return ua.BadNodeIDExists
	}
	if browseName.Name == "" {
		return ua.BadBrowseNameInvalid
	}
	var parentRef *ua.Reference
	for i := range refs {
		if refs[i].IsInverse {
			parentRef = &refs[i]
			break
		}
	}
	if parentRef == nil {
		return ua.BadParentNodeIDInvalid
	}
	if _, ok := lookup(parentRef.TargetID); !ok {
		return ua.BadParentNodeIDInvalid
	}
	for _, r := range refs {
		if _, ok := lookup(r.ReferenceTypeID); !ok {
			return ua.BadReferenceTypeIDInvalid
		}
		if rt, ok := m.nodes[r.ReferenceTypeID]; ok && rt.NodeClass() != ua.NodeClassReferenceType {
			return ua.BadReferenceTypeIDInvalid
		}
	}
	if parentRef.ReferenceTypeID != ua.ReferenceTypeIDHierarchicalReferences && !m.isSubtype(parentRef.ReferenceTypeID, ua.ReferenceTypeIDHierarchicalReferences) {
		return ua.BadReferenceTypeIDInvalid
	}
	var typeDef ua.NodeID
	for _, r := range refs {
		if !r.IsInverse && r.ReferenceTypeID == ua.ReferenceTypeIDHasTypeDefinition {
			typeDef = r.TargetID
			break
		}
	}
	switch nodeClass {
	case ua.NodeClassObject, ua.NodeClassVariable:
		td, ok := lookup(typeDef)
		if !ok {
			return ua.BadTypeDefinitionInvalid
		}
		if nodeClass == ua.NodeClassObject && td.NodeClass() != ua.NodeClassObjectType {
			return ua.BadTypeDefinitionInvalid
		}
		if nodeClass == ua.NodeClassVariable && td.NodeClass() != ua.NodeClassVariableType {
			return ua.BadTypeDefinitionInvalid
		}
	default:
		if !typeDef.IsNil() {
			return ua.BadTypeDefinitionInvalid
		}
	}
	return nil
}

// isCompatible returns true if the value may be stored in a variable of the data type.
func (m *NamespaceManager) isCompatible(dataType ua.NodeID, value ua.Variant) bool {
	if value == nil || dataType == ua.DataTypeIDBaseDataType {
		return true
	}
	vt := ua.DataTypeIDOf(value)
	switch {
	case vt == ua.DataTypeIDBaseDataType:
		return false
	case vt == dataType:
		return true
	case vt == ua.DataTypeIDInt32 && m.isSubtype(dataType, ua.DataTypeIDEnumeration):
		return true
	}
	return m.isSubtype(vt, dataType) || m.isSubtype(dataType, vt)
}

// addNodes inserts the nodes without validation.
func (m *NamespaceManager) addNodes(nodes []Node) {
	for _, node := range nodes {
		m.nodes[node.NodeID()] = node
	}
	// add inverse refs of added nodes
	for _, node := range nodes {
		id := node.NodeID()
		for _, r := range node.References() {
			if r.ReferenceTypeID == ua.ReferenceTypeIDHasTypeDefinition || r.ReferenceTypeID == ua.ReferenceTypeIDHasModellingRule {
				continue
			}
			t, ok := m.nodes[r.TargetID]
			if !ok {
				m.server.logger.Warn().Str("source", id.String()).Str("target", r.TargetID.String()).Msg("Error finding reference target")
				continue
			}
			flag := false
			for _, tr := range t.References() {
				if tr.ReferenceTypeID == r.ReferenceTypeID && tr.IsInverse != r.IsInverse && tr.TargetID == id {
					flag = true
					break
				}
			}
			if !flag {
				t.SetReferences(append(t.References(), ua.NewReference(r.ReferenceTypeID, !r.IsInverse, id)))
			}
		}
	}
	m.server.metrics.setNodes(len(m.nodes))
}

// DeleteNodes removes the nodes from the namespace.
// This method removes the inverse refs as well.
func (m *NamespaceManager) DeleteNodes(nodes []Node, deleteChildren bool) error {
	m.Lock()
	defer m.Unlock()
	for _, node := range nodes {
		if _, ok := m.nodes[node.NodeID()]; !ok {
			return ua.BadNodeIDUnknown
		}
	}
	if deleteChildren {
		children := []Node{}
		for _, node := range nodes {
			children = append(children, m.getChildren(node, hasChildandSubtypes)...)
		}
		for _, node := range children {
			m.deleteNodeandInverseReferences(node)
		}
	}
	for _, node := range nodes {
		m.deleteNodeandInverseReferences(node)
	}
	m.server.metrics.setNodes(len(m.nodes))
	return nil
}

// DeleteNode removes the node from the namespace.
// This method removes the inverse refs as well.
func (m *NamespaceManager) DeleteNode(node Node, deleteChildren bool) error {
	return m.DeleteNodes([]Node{node}, deleteChildren)
}

// DeleteNodeByID removes the node with the given id. Nodes of namespace 0 cannot be deleted.
func (m *NamespaceManager) DeleteNodeByID(id ua.NodeID) error {
	_, err := m.deleteNodeByID(id, false)
	return err
}

// DeleteNodeByIDRecursive removes the node with the given id and its children.
// Returns the number of nodes removed.
func (m *NamespaceManager) DeleteNodeByIDRecursive(id ua.NodeID) (int, error) {
	return m.deleteNodeByID(id, true)
}

func (m *NamespaceManager) deleteNodeByID(id ua.NodeID, deleteChildren bool) (int, error) {
	if id.NamespaceIndex() == 0 {
		return 0, ua.BadNodeIDInvalid
	}
	m.Lock()
	defer m.Unlock()
	node, ok := m.nodes[id]
	if !ok {
		return 0, ua.BadNodeIDUnknown
	}
	count := 0
	if deleteChildren {
		for _, child := range m.getChildren(node, hasChildandSubtypes) {
			if child.NodeID().NamespaceIndex() == 0 {
				continue
			}
			m.deleteNodeandInverseReferences(child)
			count++
		}
	}
	m.deleteNodeandInverseReferences(node)
	count++
	m.server.metrics.setNodes(len(m.nodes))
	return count, nil
}

func (m *NamespaceManager) deleteNodeandInverseReferences(node Node) {
	id := node.NodeID()
	// delete inverse references from target nodes.
	for _, r := range node.References() {
		if r.ReferenceTypeID == ua.ReferenceTypeIDHasTypeDefinition || r.ReferenceTypeID == ua.ReferenceTypeIDHasModellingRule {
			continue
		}
		t, ok := m.nodes[r.TargetID]
		if !ok {
			continue
		}
		refs := []ua.Reference{}
		for _, tr := range t.References() {
			if tr.ReferenceTypeID == r.ReferenceTypeID && tr.IsInverse != r.IsInverse && tr.TargetID == id {
				continue
			}
			refs = append(refs, tr)
		}
		t.SetReferences(refs)
	}
	// delete node from namespace.
	delete(m.nodes, id)
}

// GetChildren traverses the tree to get all target nodes with the given reference types.
func (m *NamespaceManager) GetChildren(node Node, withRefTypes []ua.NodeID) []Node {
	m.RLock()
	defer m.RUnlock()
	return m.getChildren(node, withRefTypes)
}

func (m *NamespaceManager) getChildren(node Node, withRefTypes []ua.NodeID) []Node {
	children := []Node{}
	visited := map[ua.NodeID]struct{}{node.NodeID(): {}}
	queue := deque.New[Node]()
	queue.PushBack(node)
	for queue.Len() > 0 {
		item := queue.PopFront()
		for _, r := range item.References() {
			if r.IsInverse || (withRefTypes != nil && !Contains(withRefTypes, r.ReferenceTypeID)) {
				continue
			}
			if _, ok := visited[r.TargetID]; ok {
				continue
			}
			if target, ok := m.nodes[r.TargetID]; ok {
				visited[r.TargetID] = struct{}{}
				queue.PushBack(target)
				children = append(children, target)
			}
		}
	}
	return children
}

// Contains returns true if the given node is found to equal any of the given nodes.
func Contains(nodes []ua.NodeID, node ua.NodeID) bool {
	for _, n := range nodes {
		if n == node {
			return true
		}
	}
	return false
}

// Browse returns the references of the node with the given id.
func (m *NamespaceManager) Browse(id ua.NodeID) ([]ua.Reference, error) {
	n, ok := m.FindNode(id)
	if !ok {
		return nil, ua.BadNodeIDUnknown
	}
	refs := n.References()
	res := make([]ua.Reference, len(refs))
	copy(res, refs)
	return res, nil
}

// Read returns the value of an attribute of a node.
// Failures are reported in the StatusCode of the result.
func (m *NamespaceManager) Read(id ua.NodeID, attributeID uint32) ua.DataValue {
	n, ok := m.FindNode(id)
	if !ok {
		return ua.DataValue{StatusCode: ua.BadNodeIDUnknown}
	}
	if !n.IsAttributeIDValid(attributeID) {
		return ua.DataValue{StatusCode: ua.BadAttributeIDInvalid}
	}
	if attributeID == ua.AttributeIDValue {
		switch n1 := n.(type) {
		case *VariableNode:
			if n1.UserAccessLevel()&ua.AccessLevelsCurrentRead == 0 {
				return ua.DataValue{StatusCode: ua.BadNotReadable}
			}
			return n1.Value()
		case *VariableTypeNode:
			return n1.Value()
		}
	}
	now := time.Now()
	return ua.NewDataValue(readAttribute(n, attributeID), ua.Good, time.Time{}, 0, now, 0)
}

func readAttribute(n Node, attributeID uint32) ua.Variant {
	switch attributeID {
	case ua.AttributeIDNodeID:
		return n.NodeID()
	case ua.AttributeIDNodeClass:
		return int32(n.NodeClass())
	case ua.AttributeIDBrowseName:
		return n.BrowseName()
	case ua.AttributeIDDisplayName:
		return n.DisplayName()
	case ua.AttributeIDDescription:
		return n.Description()
	case ua.AttributeIDWriteMask, ua.AttributeIDUserWriteMask:
		return uint32(0)
	}
	switch n1 := n.(type) {
	case *ObjectNode:
		return n1.EventNotifier()
	case *VariableNode:
		switch attributeID {
		case ua.AttributeIDDataType:
			return n1.DataType()
		case ua.AttributeIDValueRank:
			return n1.ValueRank()
		case ua.AttributeIDArrayDimensions:
			return n1.ArrayDimensions()
		case ua.AttributeIDAccessLevel:
			return n1.AccessLevel()
		case ua.AttributeIDUserAccessLevel:
			return n1.UserAccessLevel()
		case ua.AttributeIDMinimumSamplingInterval:
			return n1.MinimumSamplingInterval()
		case ua.AttributeIDHistorizing:
			return n1.Historizing()
		}
	case *VariableTypeNode:
		switch attributeID {
		case ua.AttributeIDDataType:
			return n1.DataType()
		case ua.AttributeIDValueRank:
			return n1.ValueRank()
		case ua.AttributeIDArrayDimensions:
			return n1.ArrayDimensions()
		case ua.AttributeIDIsAbstract:
			return n1.IsAbstract()
		}
	case *MethodNode:
		return n1.Executable()
	case *ObjectTypeNode:
		return n1.IsAbstract()
	case *DataTypeNode:
		return n1.IsAbstract()
	case *ReferenceTypeNode:
		switch attributeID {
		case ua.AttributeIDIsAbstract:
			return n1.IsAbstract()
		case ua.AttributeIDSymmetric:
			return n1.Symmetric()
		case ua.AttributeIDInverseName:
			return n1.InverseName()
		}
	case *ViewNode:
		if attributeID == ua.AttributeIDContainsNoLoops {
			return n1.ContainsNoLoops()
		}
		return n1.EventNotifier()
	}
	return nil
}

// Write sets the value of a variable.
// The value must match the data type of the variable and the variable must be writable.
func (m *NamespaceManager) Write(id ua.NodeID, value ua.DataValue) error {
	n, ok := m.FindNode(id)
	if !ok {
		return ua.BadNodeIDUnknown
	}
	v, ok := n.(*VariableNode)
	if !ok {
		return ua.BadAttributeIDInvalid
	}
	if v.UserAccessLevel()&ua.AccessLevelsCurrentWrite == 0 {
		return ua.BadNotWritable
	}
	m.RLock()
	compatible := m.isCompatible(v.DataType(), value.Value)
	m.RUnlock()
	if !compatible {
		return ua.BadTypeMismatch
	}
	if value.ServerTimestamp.IsZero() {
		value.ServerTimestamp = time.Now()
	}
	if value.SourceTimestamp.IsZero() {
		value.SourceTimestamp = value.ServerTimestamp
	}
	v.SetValue(value)
	return nil
}
