// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ByteString is stored as a string.
type ByteString string

// String returns ByteString as a base64-encoded string.
func (b ByteString) String() string {
	return base64.StdEncoding.EncodeToString([]byte(b))
}

// QualifiedName pairs a name and a namespace index.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// NewQualifiedName constructs a QualifiedName from a namespace index and a name.
func NewQualifiedName(ns uint16, name string) QualifiedName {
	return QualifiedName{ns, name}
}

// ParseQualifiedName returns a QualifiedName from a string, e.g. ParseQualifiedName("1:the answer")
func ParseQualifiedName(s string) QualifiedName {
	pos := strings.Index(s, ":")
	if pos == -1 {
		return QualifiedName{0, s}
	}
	ns, err := strconv.ParseUint(s[:pos], 10, 16)
	if err != nil {
		return QualifiedName{0, s}
	}
	return QualifiedName{uint16(ns), s[pos+1:]}
}

// String returns a string representation, e.g. "1:the answer"
func (a QualifiedName) String() string {
	return fmt.Sprintf("%d:%s", a.NamespaceIndex, a.Name)
}

// LocalizedText pairs text and a Locale string.
type LocalizedText struct {
	Text   string `xml:",chardata"`
	Locale string `xml:"Locale,attr"`
}

// NewLocalizedText constructs a LocalizedText from text and Locale string.
func NewLocalizedText(text, locale string) LocalizedText {
	return LocalizedText{text, locale}
}

// String returns the string representation, e.g. "text (locale)"
func (a LocalizedText) String() string {
	return fmt.Sprintf("%s (%s)", a.Text, a.Locale)
}

// Variant holds any of the built-in scalar types, or a slice of them.
type Variant interface{}

// DataValue holds the value, quality and timestamp.
type DataValue struct {
	Value             Variant
	StatusCode        StatusCode
	SourceTimestamp   time.Time
	SourcePicoseconds uint16
	ServerTimestamp   time.Time
	ServerPicoseconds uint16
}

// NewDataValue returns a new DataValue.
func NewDataValue(value Variant, status StatusCode, sourceTimestamp time.Time, sourcePicoseconds uint16, serverTimestamp time.Time, serverPicoseconds uint16) DataValue {
	return DataValue{value, status, sourceTimestamp, sourcePicoseconds, serverTimestamp, serverPicoseconds}
}

// Reference is a typed edge from the owning node to the target node.
type Reference struct {
	ReferenceTypeID NodeID
	IsInverse       bool
	TargetID        NodeID
}

// NewReference constructs a Reference.
func NewReference(referenceTypeID NodeID, isInverse bool, targetID NodeID) Reference {
	return Reference{referenceTypeID, isInverse, targetID}
}

// NodeClass enumeration.
type NodeClass int32

// NodeClass enumeration.
const (
	NodeClassUnspecified   NodeClass = 0
	NodeClassObject        NodeClass = 1
	NodeClassVariable      NodeClass = 2
	NodeClassMethod        NodeClass = 4
	NodeClassObjectType    NodeClass = 8
	NodeClassVariableType  NodeClass = 16
	NodeClassReferenceType NodeClass = 32
	NodeClassDataType      NodeClass = 64
	NodeClassView          NodeClass = 128
)

// String returns enumeration value as string.
func (v NodeClass) String() string {
	switch v {
	case NodeClassUnspecified:
		return "Unspecified"
	case NodeClassObject:
		return "Object"
	case NodeClassVariable:
		return "Variable"
	case NodeClassMethod:
		return "Method"
	case NodeClassObjectType:
		return "ObjectType"
	case NodeClassVariableType:
		return "VariableType"
	case NodeClassReferenceType:
		return "ReferenceType"
	case NodeClassDataType:
		return "DataType"
	case NodeClassView:
		return "View"
	default:
		return ""
	}
}

// ServerState enumeration.
type ServerState int32

// ServerState enumeration.
const (
	ServerStateRunning            ServerState = 0
	ServerStateFailed             ServerState = 1
	ServerStateNoConfiguration    ServerState = 2
	ServerStateSuspended          ServerState = 3
	ServerStateShutdown           ServerState = 4
	ServerStateTest               ServerState = 5
	ServerStateCommunicationFault ServerState = 6
	ServerStateUnknown            ServerState = 7
)

// String returns enumeration value as string.
func (v ServerState) String() string {
	switch v {
	case ServerStateRunning:
		return "Running"
	case ServerStateFailed:
		return "Failed"
	case ServerStateNoConfiguration:
		return "NoConfiguration"
	case ServerStateSuspended:
		return "Suspended"
	case ServerStateShutdown:
		return "Shutdown"
	case ServerStateTest:
		return "Test"
	case ServerStateCommunicationFault:
		return "CommunicationFault"
	case ServerStateUnknown:
		return "Unknown"
	default:
		return ""
	}
}

// BuildInfo structure.
type BuildInfo struct {
	ProductURI       string
	ManufacturerName string
	ProductName      string
	SoftwareVersion  string
	BuildNumber      string
	BuildDate        time.Time
}

// AccessLevel flags of a Variable.
const (
	AccessLevelsNone           byte = 0
	AccessLevelsCurrentRead    byte = 1
	AccessLevelsCurrentWrite   byte = 2
	AccessLevelsHistoryRead    byte = 4
	AccessLevelsHistoryWrite   byte = 8
	AccessLevelsSemanticChange byte = 16
	AccessLevelsStatusWrite    byte = 32
	AccessLevelsTimestampWrite byte = 64
)

// ValueRanks
const (
	ValueRankScalarOrOneDimension int32 = -3
	ValueRankAny                  int32 = -2
	ValueRankScalar               int32 = -1
	ValueRankOneOrMoreDimensions  int32 = 0
	ValueRankOneDimension         int32 = 1
)

// AttributeIDs
const (
	AttributeIDNodeID                  uint32 = 1
	AttributeIDNodeClass               uint32 = 2
	AttributeIDBrowseName              uint32 = 3
	AttributeIDDisplayName             uint32 = 4
	AttributeIDDescription             uint32 = 5
	AttributeIDWriteMask               uint32 = 6
	AttributeIDUserWriteMask           uint32 = 7
	AttributeIDIsAbstract              uint32 = 8
	AttributeIDSymmetric               uint32 = 9
	AttributeIDInverseName             uint32 = 10
	AttributeIDContainsNoLoops         uint32 = 11
	AttributeIDEventNotifier           uint32 = 12
	AttributeIDValue                   uint32 = 13
	AttributeIDDataType                uint32 = 14
	AttributeIDValueRank               uint32 = 15
	AttributeIDArrayDimensions         uint32 = 16
	AttributeIDAccessLevel             uint32 = 17
	AttributeIDUserAccessLevel         uint32 = 18
	AttributeIDMinimumSamplingInterval uint32 = 19
	AttributeIDHistorizing             uint32 = 20
	AttributeIDExecutable              uint32 = 21
	AttributeIDUserExecutable          uint32 = 22
)
