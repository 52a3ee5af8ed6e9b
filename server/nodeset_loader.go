// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/awcullen/uakit/ua"
	"github.com/pkg/errors"
)

// LoadNodeSetFromFile loads the UANodeSet XML from a file with the given path into the namespace.
func (m *NamespaceManager) LoadNodeSetFromFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		m.server.logger.Error().Err(err).Str("path", path).Msg("Error reading nodeset")
		return errors.Wrapf(err, "reading nodeset %s", path)
	}
	return m.LoadNodeSetFromBuffer(buf)
}

// LoadNodeSetFromBuffer loads the UANodeSet XML from a buffer into the namespace.
// Namespaces of the nodeset are added to the namespace table. References to nodes outside
// the nodeset are kept, so nodesets may be loaded in any order.
func (m *NamespaceManager) LoadNodeSetFromBuffer(buf []byte) error {
	set := &ua.UANodeSet{}
	if err := xml.Unmarshal(buf, set); err != nil {
		m.server.logger.Error().Err(err).Msg("Error decoding nodeset")
		return ua.BadDecodingError
	}

	nsMap := make(map[uint16]uint16, 8)
	for i, nsu := range set.NamespaceUris {
		nsMap[uint16(i+1)] = m.Add(nsu)
	}

	aliases := make(map[string]string, len(set.Aliases))
	for _, a := range set.Aliases {
		aliases[a.Alias] = strings.TrimSpace(a.NodeID)
	}

	nodes := make([]Node, 0, len(set.Nodes))
	for _, n := range set.Nodes {
		if n == nil {
			continue
		}
		id := toNodeID(n.NodeID, aliases, nsMap)
		browseName := toBrowseName(n.BrowseName, nsMap)
		displayName := toLocalizedText(n.DisplayName, browseName.Name)
		description := toLocalizedText(n.Description, "")
		refs := toRefs(n.References, aliases, nsMap)
		switch n.XMLName.Local {
		case "UAObjectType":
			nodes = append(nodes, NewObjectTypeNode(id, browseName, displayName, description, refs, n.IsAbstract))
		case "UAVariableType":
			rank := toInt32(n.ValueRank, -1)
			nodes = append(nodes, NewVariableTypeNode(id, browseName, displayName, description, refs,
				toDataValue(n.Value, time.Time{}),
				toDataType(n.DataType, aliases, nsMap),
				rank,
				toDims(n.ArrayDimensions, rank),
				n.IsAbstract,
			))
		case "UADataType":
			nodes = append(nodes, NewDataTypeNode(id, browseName, displayName, description, refs, n.IsAbstract))
		case "UAReferenceType":
			nodes = append(nodes, NewReferenceTypeNode(id, browseName, displayName, description, refs,
				n.IsAbstract, n.Symmetric, ua.NewLocalizedText(strings.TrimSpace(n.InverseName), "")))
		case "UAObject":
			nodes = append(nodes, NewObjectNode(id, browseName, displayName, description, refs, n.EventNotifier))
		case "UAVariable":
			rank := toInt32(n.ValueRank, -1)
			nodes = append(nodes, NewVariableNode(id, browseName, displayName, description, refs,
				toDataValue(n.Value, time.Now()),
				toDataType(n.DataType, aliases, nsMap),
				rank,
				toDims(n.ArrayDimensions, rank),
				toUint8(n.AccessLevel, ua.AccessLevelsCurrentRead),
				n.MinimumSamplingInterval,
				n.Historizing,
			))
		case "UAMethod":
			nodes = append(nodes, NewMethodNode(id, browseName, displayName, description, refs, toBool(n.Executable, true)))
		case "UAView":
			nodes = append(nodes, NewViewNode(id, browseName, displayName, description, refs, n.ContainsNoLoops, n.EventNotifier))
		}
	}

	m.Lock()
	defer m.Unlock()
	seen := make(map[ua.NodeID]struct{}, len(nodes))
	for _, n := range nodes {
		id := n.NodeID()
		if !id.IsValid() {
			m.server.logger.Error().Str("browseName", n.BrowseName().String()).Msg("Error loading nodeset, invalid node id")
			return ua.BadNodeIDInvalid
		}
		if _, ok := m.nodes[id]; ok {
			m.server.logger.Error().Str("nodeId", id.String()).Msg("Error loading nodeset, node exists")
			return ua.BadNodeIDExists
		}
		if _, ok := seen[id]; ok {
			m.server.logger.Error().Str("nodeId", id.String()).Msg("Error loading nodeset, duplicate node")
			return ua.BadNodeIDExists
		}
		seen[id] = struct{}{}
	}
	m.addNodes(nodes)
	m.server.logger.Debug().Int("nodes", len(nodes)).Msg("Loaded nodeset")
	return nil
}

func toNodeID(s string, aliases map[string]string, nsMap map[uint16]uint16) ua.NodeID {
	s = strings.TrimSpace(s)
	if alias, exists := aliases[s]; exists {
		s = alias
	}
	id := ua.ParseNodeID(s)
	if id.IsNil() {
		return ua.NilNodeID
	}
	ns, exists := nsMap[id.NamespaceIndex()]
	if !exists {
		return id
	}
	id2, err := ua.NewNodeID(ns, id.Identifier())
	if err != nil {
		return ua.NilNodeID
	}
	return id2
}

func toDataType(s string, aliases map[string]string, nsMap map[uint16]uint16) ua.NodeID {
	if s == "" {
		return ua.DataTypeIDBaseDataType
	}
	return toNodeID(s, aliases, nsMap)
}

func toBrowseName(s string, nsMap map[uint16]uint16) ua.QualifiedName {
	qn := ua.ParseQualifiedName(s)
	if ns, exists := nsMap[qn.NamespaceIndex]; exists {
		qn.NamespaceIndex = ns
	}
	return qn
}

func toLocalizedText(s ua.UALocalizedText, def string) ua.LocalizedText {
	text := strings.TrimSpace(s.Content)
	if text == "" {
		text = def
	}
	return ua.NewLocalizedText(text, s.Locale)
}

func toRefs(refs []*ua.UAReference, aliases map[string]string, nsMap map[uint16]uint16) []ua.Reference {
	ra := make([]ua.Reference, 0, len(refs))
	for _, r := range refs {
		ra = append(ra, ua.NewReference(
			toNodeID(r.ReferenceType, aliases, nsMap),
			r.IsForward == "false",
			toNodeID(r.TargetNodeID, aliases, nsMap),
		))
	}
	return ra
}

func toDims(dims string, rank int32) []uint32 {
	if dims == "" {
		if rank > 0 {
			return make([]uint32, rank)
		}
		return []uint32{}
	}
	sa := strings.Split(dims, ",")
	ia := make([]uint32, len(sa))
	for i, a := range sa {
		if v, err := strconv.ParseUint(strings.TrimSpace(a), 10, 32); err == nil {
			ia[i] = uint32(v)
		}
	}
	return ia
}

func toInt32(s string, def int32) int32 {
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(v)
	}
	return def
}

func toUint8(s string, def uint8) uint8 {
	if v, err := strconv.ParseUint(s, 10, 8); err == nil {
		return uint8(v)
	}
	return def
}

func toBool(s string, def bool) bool {
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	return def
}

func toDataValue(v *ua.UAVariant, ts time.Time) ua.DataValue {
	var value ua.Variant
	if v != nil {
		switch {
		case v.Boolean != nil:
			value = *v.Boolean
		case v.Byte != nil:
			value = *v.Byte
		case v.Int32 != nil:
			value = *v.Int32
		case v.UInt32 != nil:
			value = *v.UInt32
		case v.Double != nil:
			value = *v.Double
		case v.String != nil:
			value = *v.String
		case v.ListOfString != nil:
			value = v.ListOfString
		}
	}
	return ua.NewDataValue(value, ua.Good, ts, 0, ts, 0)
}
