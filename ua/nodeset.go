// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import "encoding/xml"

// UANodeSet is the root of a nodeset XML document.
type UANodeSet struct {
	XMLName       xml.Name   `xml:"http://opcfoundation.org/UA/2011/03/UANodeSet.xsd UANodeSet"`
	NamespaceUris []string   `xml:"NamespaceUris>Uri"`
	Aliases       []*UAAlias `xml:"Aliases>Alias"`
	Nodes         []*UANode  `xml:",any"`
}

// UAAlias maps a symbolic name to a NodeID string.
type UAAlias struct {
	Alias  string `xml:"Alias,attr"`
	NodeID string `xml:",chardata"`
}

// UANode holds the union of attributes of all node classes.
// XMLName.Local is one of UAObject, UAVariable, UAMethod, UAView, UAObjectType,
// UAVariableType, UAReferenceType or UADataType.
type UANode struct {
	XMLName                 xml.Name
	NodeID                  string          `xml:"NodeId,attr"`
	BrowseName              string          `xml:"BrowseName,attr"`
	DisplayName             UALocalizedText `xml:"DisplayName"`
	Description             UALocalizedText `xml:"Description"`
	References              []*UAReference  `xml:"References>Reference"`
	IsAbstract              bool            `xml:"IsAbstract,attr"`
	Symmetric               bool            `xml:"Symmetric,attr"`
	InverseName             string          `xml:"InverseName"`
	ContainsNoLoops         bool            `xml:"ContainsNoLoops,attr"`
	EventNotifier           uint8           `xml:"EventNotifier,attr"`
	DataType                string          `xml:"DataType,attr"`
	ValueRank               string          `xml:"ValueRank,attr"`
	ArrayDimensions         string          `xml:"ArrayDimensions,attr"`
	AccessLevel             string          `xml:"AccessLevel,attr"`
	MinimumSamplingInterval float64         `xml:"MinimumSamplingInterval,attr"`
	Historizing             bool            `xml:"Historizing,attr"`
	Executable              string          `xml:"Executable,attr"`
	Value                   *UAVariant      `xml:"Value"`
}

// UALocalizedText is a localized text element.
type UALocalizedText struct {
	Content string `xml:",chardata"`
	Locale  string `xml:"Locale,attr"`
}

// UAReference is a reference element of a node.
type UAReference struct {
	ReferenceType string `xml:"ReferenceType,attr"`
	IsForward     string `xml:"IsForward,attr"`
	TargetNodeID  string `xml:",chardata"`
}

// UAVariant holds the scalar value of a node. Only one field is set.
type UAVariant struct {
	Boolean      *bool    `xml:"Boolean"`
	Byte         *uint8   `xml:"Byte"`
	Int32        *int32   `xml:"Int32"`
	UInt32       *uint32  `xml:"UInt32"`
	Double       *float64 `xml:"Double"`
	String       *string  `xml:"String"`
	ListOfString []string `xml:"ListOfString>String"`
}
