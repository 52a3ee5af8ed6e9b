// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua_test

import (
	"testing"

	"github.com/awcullen/uakit/ua"
	"github.com/google/uuid"
	"github.com/gopcua/opcua/id"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func TestNewNodeID(t *testing.T) {
	g := uuid.MustParse("5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c")
	cases := []struct {
		ns   uint16
		id   interface{}
		want ua.NodeID
	}{
		{1, "the.answer", ua.NewNodeIDString(1, "the.answer")},
		{2, uint32(42), ua.NewNodeIDNumeric(2, 42)},
		{2, 42, ua.NewNodeIDNumeric(2, 42)},
		{3, g, ua.NewNodeIDGUID(3, g)},
		{4, ua.ByteString("abcd"), ua.NewNodeIDOpaque(4, ua.ByteString("abcd"))},
	}
	for _, c := range cases {
		n, err := ua.NewNodeID(c.ns, c.id)
		assert.NilError(t, err)
		assert.Equal(t, n, c.want)
	}
}

func TestNewNodeIDRejectsUnsupportedIdentifiers(t *testing.T) {
	for _, id := range []interface{}{-1, 3.14, nil, []byte("x"), int64(1)} {
		_, err := ua.NewNodeID(1, id)
		assert.Equal(t, err, ua.BadNodeIDInvalid, "identifier %v", id)
	}
}

func TestParseNodeID(t *testing.T) {
	cases := []struct {
		in   string
		want ua.NodeID
	}{
		{"i=85", ua.ObjectIDObjectsFolder},
		{"ns=1;s=the.answer", ua.NewNodeIDString(1, "the.answer")},
		{"ns=2;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c", ua.NewNodeIDGUID(2, uuid.MustParse("5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c"))},
		{"ns=2;b=YWJjZA==", ua.NewNodeIDOpaque(2, ua.ByteString("abcd"))},
		{"ns=x;i=1", ua.NilNodeID},
		{"q=1", ua.NilNodeID},
	}
	for _, c := range cases {
		assert.Equal(t, ua.ParseNodeID(c.in), c.want, c.in)
	}
}

func TestNodeIDString(t *testing.T) {
	for _, s := range []string{"i=85", "ns=1;s=the.answer", "ns=2;b=YWJjZA=="} {
		assert.Equal(t, ua.ParseNodeID(s).String(), s)
	}
}

func TestNodeIDIsNilAndIsValid(t *testing.T) {
	assert.Check(t, ua.NilNodeID.IsNil())
	assert.Check(t, !ua.NilNodeID.IsValid())
	assert.Check(t, !ua.NewNodeIDString(1, "").IsNil())
	assert.Check(t, !ua.NewNodeIDString(1, "").IsValid())
	assert.Check(t, ua.NewNodeIDString(1, "x").IsValid())
	long := make([]byte, 4097)
	assert.Check(t, !ua.NewNodeIDString(1, string(long)).IsValid())
}

func TestNodeIDIsComparable(t *testing.T) {
	m := map[ua.NodeID]int{ua.NewNodeIDString(1, "a"): 1}
	assert.Check(t, is.Equal(m[ua.ParseNodeID("ns=1;s=a")], 1))
}

func TestStandardNodeIDs(t *testing.T) {
	cases := []struct {
		got  ua.NodeID
		want uint32
	}{
		{ua.ObjectIDRootFolder, id.RootFolder},
		{ua.ObjectIDObjectsFolder, id.ObjectsFolder},
		{ua.ObjectIDServer, id.Server},
		{ua.ObjectTypeIDFolderType, id.FolderType},
		{ua.VariableTypeIDBaseDataVariableType, id.BaseDataVariableType},
		{ua.VariableTypeIDPropertyType, id.PropertyType},
		{ua.ReferenceTypeIDOrganizes, id.Organizes},
		{ua.ReferenceTypeIDHasTypeDefinition, id.HasTypeDefinition},
		{ua.ReferenceTypeIDHierarchicalReferences, id.HierarchicalReferences},
		{ua.DataTypeIDInt32, id.Int32},
		{ua.VariableIDServerNamespaceArray, id.Server_NamespaceArray},
		{ua.VariableIDServerServerStatusState, id.Server_ServerStatus_State},
	}
	for _, c := range cases {
		assert.Equal(t, c.got, ua.NewNodeIDNumeric(0, c.want))
	}
}

func TestQualifiedName(t *testing.T) {
	qn := ua.ParseQualifiedName("1:the answer")
	assert.Equal(t, qn, ua.NewQualifiedName(1, "the answer"))
	assert.Equal(t, qn.String(), "1:the answer")
	assert.Equal(t, ua.ParseQualifiedName("plain"), ua.NewQualifiedName(0, "plain"))
}
