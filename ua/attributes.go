// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// ObjectAttributes are the attributes of a new Object node.
type ObjectAttributes struct {
	SpecifiedAttributes uint32
	DisplayName         LocalizedText
	Description         LocalizedText
	WriteMask           uint32
	UserWriteMask       uint32
	EventNotifier       byte
}

// VariableAttributes are the attributes of a new Variable node.
type VariableAttributes struct {
	SpecifiedAttributes     uint32
	DisplayName             LocalizedText
	Description             LocalizedText
	WriteMask               uint32
	UserWriteMask           uint32
	Value                   Variant
	DataType                NodeID
	ValueRank               int32
	ArrayDimensions         []uint32
	AccessLevel             byte
	UserAccessLevel         byte
	MinimumSamplingInterval float64
	Historizing             bool
}

// MethodAttributes are the attributes of a new Method node.
type MethodAttributes struct {
	SpecifiedAttributes uint32
	DisplayName         LocalizedText
	Description         LocalizedText
	WriteMask           uint32
	UserWriteMask       uint32
	Executable          bool
	UserExecutable      bool
}

// ObjectTypeAttributes are the attributes of a new ObjectType node.
type ObjectTypeAttributes struct {
	SpecifiedAttributes uint32
	DisplayName         LocalizedText
	Description         LocalizedText
	WriteMask           uint32
	UserWriteMask       uint32
	IsAbstract          bool
}

// VariableTypeAttributes are the attributes of a new VariableType node.
type VariableTypeAttributes struct {
	SpecifiedAttributes uint32
	DisplayName         LocalizedText
	Description         LocalizedText
	WriteMask           uint32
	UserWriteMask       uint32
	Value               Variant
	DataType            NodeID
	ValueRank           int32
	ArrayDimensions     []uint32
	IsAbstract          bool
}

// ReferenceTypeAttributes are the attributes of a new ReferenceType node.
type ReferenceTypeAttributes struct {
	SpecifiedAttributes uint32
	DisplayName         LocalizedText
	Description         LocalizedText
	WriteMask           uint32
	UserWriteMask       uint32
	IsAbstract          bool
	Symmetric           bool
	InverseName         LocalizedText
}

// DataTypeAttributes are the attributes of a new DataType node.
type DataTypeAttributes struct {
	SpecifiedAttributes uint32
	DisplayName         LocalizedText
	Description         LocalizedText
	WriteMask           uint32
	UserWriteMask       uint32
	IsAbstract          bool
}

// ViewAttributes are the attributes of a new View node.
type ViewAttributes struct {
	SpecifiedAttributes uint32
	DisplayName         LocalizedText
	Description         LocalizedText
	WriteMask           uint32
	UserWriteMask       uint32
	ContainsNoLoops     bool
	EventNotifier       byte
}

// DataType describes a structured type known to this module.
type DataType struct {
	Name             string
	TypeID           NodeID
	BinaryEncodingID NodeID
	Type             reflect.Type
}

// types is indexed by position; the order is stable.
var types = []DataType{
	{"ObjectAttributes", DataTypeIDObjectAttributes, ObjectIDObjectAttributesEncodingDefaultBinary, reflect.TypeOf(ObjectAttributes{})},
	{"VariableAttributes", DataTypeIDVariableAttributes, ObjectIDVariableAttributesEncodingDefaultBinary, reflect.TypeOf(VariableAttributes{})},
	{"MethodAttributes", DataTypeIDMethodAttributes, ObjectIDMethodAttributesEncodingDefaultBinary, reflect.TypeOf(MethodAttributes{})},
	{"ObjectTypeAttributes", DataTypeIDObjectTypeAttributes, ObjectIDObjectTypeAttributesEncodingDefaultBinary, reflect.TypeOf(ObjectTypeAttributes{})},
	{"VariableTypeAttributes", DataTypeIDVariableTypeAttributes, ObjectIDVariableTypeAttributesEncodingDefaultBinary, reflect.TypeOf(VariableTypeAttributes{})},
	{"ReferenceTypeAttributes", DataTypeIDReferenceTypeAttributes, ObjectIDReferenceTypeAttributesEncodingDefaultBinary, reflect.TypeOf(ReferenceTypeAttributes{})},
	{"DataTypeAttributes", DataTypeIDDataTypeAttributes, ObjectIDDataTypeAttributesEncodingDefaultBinary, reflect.TypeOf(DataTypeAttributes{})},
	{"ViewAttributes", DataTypeIDViewAttributes, ObjectIDViewAttributesEncodingDefaultBinary, reflect.TypeOf(ViewAttributes{})},
}

const (
	objectAttributesIndex = iota
	variableAttributesIndex
	methodAttributesIndex
	objectTypeAttributesIndex
	variableTypeAttributesIndex
	referenceTypeAttributesIndex
	dataTypeAttributesIndex
	viewAttributesIndex
)

// ObjectAttributesType returns the descriptor of ObjectAttributes.
func ObjectAttributesType() *DataType { return typeAt(objectAttributesIndex) }

// VariableAttributesType returns the descriptor of VariableAttributes.
func VariableAttributesType() *DataType { return typeAt(variableAttributesIndex) }

// MethodAttributesType returns the descriptor of MethodAttributes.
func MethodAttributesType() *DataType { return typeAt(methodAttributesIndex) }

// ObjectTypeAttributesType returns the descriptor of ObjectTypeAttributes.
func ObjectTypeAttributesType() *DataType { return typeAt(objectTypeAttributesIndex) }

// VariableTypeAttributesType returns the descriptor of VariableTypeAttributes.
func VariableTypeAttributesType() *DataType { return typeAt(variableTypeAttributesIndex) }

// ReferenceTypeAttributesType returns the descriptor of ReferenceTypeAttributes.
func ReferenceTypeAttributesType() *DataType { return typeAt(referenceTypeAttributesIndex) }

// DataTypeAttributesType returns the descriptor of DataTypeAttributes.
func DataTypeAttributesType() *DataType { return typeAt(dataTypeAttributesIndex) }

// ViewAttributesType returns the descriptor of ViewAttributes.
func ViewAttributesType() *DataType { return typeAt(viewAttributesIndex) }

// typeAt returns a copy of the descriptor at index i. The table itself is never handed out.
func typeAt(i int) *DataType {
	dt := types[i]
	return &dt
}

// TypesCount returns the number of descriptors in the table.
func TypesCount() int {
	return len(types)
}

// TypeByIndex returns a copy of the descriptor at index i, or false if i is out of range.
func TypeByIndex(i int) (*DataType, bool) {
	if i < 0 || i >= len(types) {
		return nil, false
	}
	return typeAt(i), true
}

// FindType returns the descriptor with the given type id or binary encoding id.
func FindType(id NodeID) (*DataType, bool) {
	for i := range types {
		if types[i].TypeID == id || types[i].BinaryEncodingID == id {
			return typeAt(i), true
		}
	}
	return nil, false
}

// AttributesTypeFor returns the descriptor of the attribute record that creates a node of the given class.
func AttributesTypeFor(nodeClass NodeClass) (*DataType, bool) {
	switch nodeClass {
	case NodeClassObject:
		return ObjectAttributesType(), true
	case NodeClassVariable:
		return VariableAttributesType(), true
	case NodeClassMethod:
		return MethodAttributesType(), true
	case NodeClassObjectType:
		return ObjectTypeAttributesType(), true
	case NodeClassVariableType:
		return VariableTypeAttributesType(), true
	case NodeClassReferenceType:
		return ReferenceTypeAttributesType(), true
	case NodeClassDataType:
		return DataTypeAttributesType(), true
	case NodeClassView:
		return ViewAttributesType(), true
	default:
		return nil, false
	}
}

// IsInstance returns true if v (or the value v points to) is of the described type.
func (t *DataType) IsInstance(v interface{}) bool {
	if v == nil {
		return false
	}
	rt := reflect.TypeOf(v)
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return rt == t.Type
}

// DataTypeIDOf returns the NodeID of the built-in data type of the value.
// Slices report the data type of their elements. Unknown values report BaseDataType.
func DataTypeIDOf(value Variant) NodeID {
	switch value.(type) {
	case nil:
		return DataTypeIDBaseDataType
	case bool:
		return DataTypeIDBoolean
	case int8:
		return DataTypeIDSByte
	case uint8:
		return DataTypeIDByte
	case int16:
		return DataTypeIDInt16
	case uint16:
		return DataTypeIDUInt16
	case int32:
		return DataTypeIDInt32
	case uint32:
		return DataTypeIDUInt32
	case int64, int:
		return DataTypeIDInt64
	case uint64:
		return DataTypeIDUInt64
	case float32:
		return DataTypeIDFloat
	case float64:
		return DataTypeIDDouble
	case string:
		return DataTypeIDString
	case time.Time:
		return DataTypeIDDateTime
	case uuid.UUID:
		return DataTypeIDGUID
	case ByteString:
		return DataTypeIDByteString
	case NodeID:
		return DataTypeIDNodeID
	case StatusCode:
		return DataTypeIDStatusCode
	case QualifiedName:
		return DataTypeIDQualifiedName
	case LocalizedText:
		return DataTypeIDLocalizedText
	case DataValue:
		return DataTypeIDDataValue
	case BuildInfo:
		return DataTypeIDBuildInfo
	case ServerState:
		return DataTypeIDServerState
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return DataTypeIDOf(reflect.Zero(rv.Type().Elem()).Interface())
	}
	return DataTypeIDBaseDataType
}
