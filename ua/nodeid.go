// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDType is the kind of identifier held by a NodeID.
type IDType byte

// IDTypes
const (
	IDTypeNumeric IDType = iota
	IDTypeString
	IDTypeGUID
	IDTypeOpaque
)

// maxIdentifierLength limits string and opaque identifiers.
const maxIdentifierLength = 4096

// NodeID identifies a Node within a namespace.
// NodeID is comparable and may be used as a map key.
type NodeID struct {
	namespaceIndex uint16
	idType         IDType
	nid            uint32
	sid            string
	gid            uuid.UUID
	bid            ByteString
}

// NilNodeID is the nil value.
var NilNodeID = NodeID{}

// NewNodeIDNumeric constructs a new NodeID of numeric type.
func NewNodeIDNumeric(ns uint16, id uint32) NodeID {
	return NodeID{namespaceIndex: ns, idType: IDTypeNumeric, nid: id}
}

// NewNodeIDString constructs a new NodeID of string type.
func NewNodeIDString(ns uint16, id string) NodeID {
	return NodeID{namespaceIndex: ns, idType: IDTypeString, sid: id}
}

// NewNodeIDGUID constructs a new NodeID of GUID type.
func NewNodeIDGUID(ns uint16, id uuid.UUID) NodeID {
	return NodeID{namespaceIndex: ns, idType: IDTypeGUID, gid: id}
}

// NewNodeIDOpaque constructs a new NodeID of opaque type.
func NewNodeIDOpaque(ns uint16, id ByteString) NodeID {
	return NodeID{namespaceIndex: ns, idType: IDTypeOpaque, bid: id}
}

// NewNodeID constructs a NodeID from a namespace index and an identifier of any supported kind:
// uint32, int (non-negative, fits in 32 bits), string, uuid.UUID or ByteString.
// Returns BadNodeIDInvalid for other identifiers.
func NewNodeID(ns uint16, id interface{}) (NodeID, error) {
	switch v := id.(type) {
	case uint32:
		return NewNodeIDNumeric(ns, v), nil
	case int:
		if v < 0 || int64(v) > int64(^uint32(0)) {
			return NilNodeID, BadNodeIDInvalid
		}
		return NewNodeIDNumeric(ns, uint32(v)), nil
	case string:
		return NewNodeIDString(ns, v), nil
	case uuid.UUID:
		return NewNodeIDGUID(ns, v), nil
	case ByteString:
		return NewNodeIDOpaque(ns, v), nil
	default:
		return NilNodeID, BadNodeIDInvalid
	}
}

// NamespaceIndex returns the namespace index.
func (n NodeID) NamespaceIndex() uint16 {
	return n.namespaceIndex
}

// IDType returns the identifier type.
func (n NodeID) IDType() IDType {
	return n.idType
}

// Identifier returns the identifier.
func (n NodeID) Identifier() interface{} {
	switch n.idType {
	case IDTypeNumeric:
		return n.nid
	case IDTypeString:
		return n.sid
	case IDTypeGUID:
		return n.gid
	case IDTypeOpaque:
		return n.bid
	}
	return nil
}

// IsNil returns true if the nodeId is nil.
func (n NodeID) IsNil() bool {
	if n.namespaceIndex > 0 {
		return false
	}
	switch n.idType {
	case IDTypeNumeric:
		return n.nid == 0
	case IDTypeString:
		return len(n.sid) == 0
	case IDTypeGUID:
		return n.gid == uuid.Nil
	case IDTypeOpaque:
		return len(n.bid) == 0
	}
	return false
}

// IsValid returns true if the identifier is non-empty and within length limits.
func (n NodeID) IsValid() bool {
	switch n.idType {
	case IDTypeNumeric:
		return n.nid != 0
	case IDTypeString:
		return len(n.sid) > 0 && len(n.sid) <= maxIdentifierLength
	case IDTypeGUID:
		return n.gid != uuid.Nil
	case IDTypeOpaque:
		return len(n.bid) > 0 && len(n.bid) <= maxIdentifierLength
	}
	return false
}

// ParseNodeID returns a NodeID from a string representation.
//   - ParseNodeID("i=85") // integer, assumes ns=0
//   - ParseNodeID("ns=1;s=the.answer") // string
//   - ParseNodeID("ns=2;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c") // guid
//   - ParseNodeID("ns=2;b=YWJjZA==") // opaque byte string
//
// Returns NilNodeID if the string cannot be parsed.
func ParseNodeID(s string) NodeID {
	var ns uint64
	if strings.HasPrefix(s, "ns=") {
		pos := strings.Index(s, ";")
		if pos == -1 {
			return NilNodeID
		}
		var err error
		if ns, err = strconv.ParseUint(s[3:pos], 10, 16); err != nil {
			return NilNodeID
		}
		s = s[pos+1:]
	}
	switch {
	case strings.HasPrefix(s, "i="):
		id, err := strconv.ParseUint(s[2:], 10, 32)
		if err != nil {
			return NilNodeID
		}
		return NewNodeIDNumeric(uint16(ns), uint32(id))
	case strings.HasPrefix(s, "s="):
		return NewNodeIDString(uint16(ns), s[2:])
	case strings.HasPrefix(s, "g="):
		id, err := uuid.Parse(s[2:])
		if err != nil {
			return NilNodeID
		}
		return NewNodeIDGUID(uint16(ns), id)
	case strings.HasPrefix(s, "b="):
		id, err := base64.StdEncoding.DecodeString(s[2:])
		if err != nil {
			return NilNodeID
		}
		return NewNodeIDOpaque(uint16(ns), ByteString(id))
	}
	return NilNodeID
}

// String returns a string representation of the NodeID, e.g. "ns=1;s=the.answer"
func (n NodeID) String() string {
	var id string
	switch n.idType {
	case IDTypeNumeric:
		id = fmt.Sprintf("i=%d", n.nid)
	case IDTypeString:
		id = "s=" + n.sid
	case IDTypeGUID:
		id = "g=" + n.gid.String()
	case IDTypeOpaque:
		id = "b=" + base64.StdEncoding.EncodeToString([]byte(n.bid))
	default:
		return ""
	}
	if n.namespaceIndex > 0 {
		return fmt.Sprintf("ns=%d;%s", n.namespaceIndex, id)
	}
	return id
}
