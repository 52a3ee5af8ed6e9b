// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

// Standard NodeIDs of namespace 0 used by this module.
var (
	ObjectIDRootFolder             = NewNodeIDNumeric(0, 84)
	ObjectIDObjectsFolder          = NewNodeIDNumeric(0, 85)
	ObjectIDTypesFolder            = NewNodeIDNumeric(0, 86)
	ObjectIDViewsFolder            = NewNodeIDNumeric(0, 87)
	ObjectIDServer                 = NewNodeIDNumeric(0, 2253)
	ObjectIDModellingRuleMandatory = NewNodeIDNumeric(0, 78)

	ObjectTypeIDBaseObjectType    = NewNodeIDNumeric(0, 58)
	ObjectTypeIDFolderType        = NewNodeIDNumeric(0, 61)
	ObjectTypeIDModellingRuleType = NewNodeIDNumeric(0, 77)
	ObjectTypeIDServerType        = NewNodeIDNumeric(0, 2004)

	VariableTypeIDBaseVariableType     = NewNodeIDNumeric(0, 62)
	VariableTypeIDBaseDataVariableType = NewNodeIDNumeric(0, 63)
	VariableTypeIDPropertyType         = NewNodeIDNumeric(0, 68)
	VariableTypeIDServerStatusType     = NewNodeIDNumeric(0, 2138)
	VariableTypeIDBuildInfoType        = NewNodeIDNumeric(0, 3051)

	ReferenceTypeIDReferences                = NewNodeIDNumeric(0, 31)
	ReferenceTypeIDNonHierarchicalReferences = NewNodeIDNumeric(0, 32)
	ReferenceTypeIDHierarchicalReferences    = NewNodeIDNumeric(0, 33)
	ReferenceTypeIDHasChild                  = NewNodeIDNumeric(0, 34)
	ReferenceTypeIDOrganizes                 = NewNodeIDNumeric(0, 35)
	ReferenceTypeIDHasModellingRule          = NewNodeIDNumeric(0, 37)
	ReferenceTypeIDHasTypeDefinition         = NewNodeIDNumeric(0, 40)
	ReferenceTypeIDAggregates                = NewNodeIDNumeric(0, 44)
	ReferenceTypeIDHasSubtype                = NewNodeIDNumeric(0, 45)
	ReferenceTypeIDHasProperty               = NewNodeIDNumeric(0, 46)
	ReferenceTypeIDHasComponent              = NewNodeIDNumeric(0, 47)

	DataTypeIDBoolean        = NewNodeIDNumeric(0, 1)
	DataTypeIDSByte          = NewNodeIDNumeric(0, 2)
	DataTypeIDByte           = NewNodeIDNumeric(0, 3)
	DataTypeIDInt16          = NewNodeIDNumeric(0, 4)
	DataTypeIDUInt16         = NewNodeIDNumeric(0, 5)
	DataTypeIDInt32          = NewNodeIDNumeric(0, 6)
	DataTypeIDUInt32         = NewNodeIDNumeric(0, 7)
	DataTypeIDInt64          = NewNodeIDNumeric(0, 8)
	DataTypeIDUInt64         = NewNodeIDNumeric(0, 9)
	DataTypeIDFloat          = NewNodeIDNumeric(0, 10)
	DataTypeIDDouble         = NewNodeIDNumeric(0, 11)
	DataTypeIDString         = NewNodeIDNumeric(0, 12)
	DataTypeIDDateTime       = NewNodeIDNumeric(0, 13)
	DataTypeIDGUID           = NewNodeIDNumeric(0, 14)
	DataTypeIDByteString     = NewNodeIDNumeric(0, 15)
	DataTypeIDXMLElement     = NewNodeIDNumeric(0, 16)
	DataTypeIDNodeID         = NewNodeIDNumeric(0, 17)
	DataTypeIDExpandedNodeID = NewNodeIDNumeric(0, 18)
	DataTypeIDStatusCode     = NewNodeIDNumeric(0, 19)
	DataTypeIDQualifiedName  = NewNodeIDNumeric(0, 20)
	DataTypeIDLocalizedText  = NewNodeIDNumeric(0, 21)
	DataTypeIDStructure      = NewNodeIDNumeric(0, 22)
	DataTypeIDDataValue      = NewNodeIDNumeric(0, 23)
	DataTypeIDBaseDataType   = NewNodeIDNumeric(0, 24)
	DataTypeIDDiagnosticInfo = NewNodeIDNumeric(0, 25)
	DataTypeIDNumber         = NewNodeIDNumeric(0, 26)
	DataTypeIDInteger        = NewNodeIDNumeric(0, 27)
	DataTypeIDUInteger       = NewNodeIDNumeric(0, 28)
	DataTypeIDEnumeration    = NewNodeIDNumeric(0, 29)
	DataTypeIDUtcTime        = NewNodeIDNumeric(0, 294)
	DataTypeIDBuildInfo      = NewNodeIDNumeric(0, 338)
	DataTypeIDServerState    = NewNodeIDNumeric(0, 852)

	DataTypeIDObjectAttributes        = NewNodeIDNumeric(0, 352)
	DataTypeIDVariableAttributes      = NewNodeIDNumeric(0, 355)
	DataTypeIDMethodAttributes        = NewNodeIDNumeric(0, 358)
	DataTypeIDObjectTypeAttributes    = NewNodeIDNumeric(0, 361)
	DataTypeIDVariableTypeAttributes  = NewNodeIDNumeric(0, 364)
	DataTypeIDReferenceTypeAttributes = NewNodeIDNumeric(0, 367)
	DataTypeIDDataTypeAttributes      = NewNodeIDNumeric(0, 370)
	DataTypeIDViewAttributes          = NewNodeIDNumeric(0, 373)

	ObjectIDObjectAttributesEncodingDefaultBinary        = NewNodeIDNumeric(0, 354)
	ObjectIDVariableAttributesEncodingDefaultBinary      = NewNodeIDNumeric(0, 357)
	ObjectIDMethodAttributesEncodingDefaultBinary        = NewNodeIDNumeric(0, 360)
	ObjectIDObjectTypeAttributesEncodingDefaultBinary    = NewNodeIDNumeric(0, 363)
	ObjectIDVariableTypeAttributesEncodingDefaultBinary  = NewNodeIDNumeric(0, 366)
	ObjectIDReferenceTypeAttributesEncodingDefaultBinary = NewNodeIDNumeric(0, 369)
	ObjectIDDataTypeAttributesEncodingDefaultBinary      = NewNodeIDNumeric(0, 372)
	ObjectIDViewAttributesEncodingDefaultBinary          = NewNodeIDNumeric(0, 375)

	VariableIDServerServerArray                           = NewNodeIDNumeric(0, 2254)
	VariableIDServerNamespaceArray                        = NewNodeIDNumeric(0, 2255)
	VariableIDServerServerStatus                          = NewNodeIDNumeric(0, 2256)
	VariableIDServerServerStatusStartTime                 = NewNodeIDNumeric(0, 2257)
	VariableIDServerServerStatusCurrentTime               = NewNodeIDNumeric(0, 2258)
	VariableIDServerServerStatusState                     = NewNodeIDNumeric(0, 2259)
	VariableIDServerServerStatusBuildInfo                 = NewNodeIDNumeric(0, 2260)
	VariableIDServerServerStatusBuildInfoProductName      = NewNodeIDNumeric(0, 2261)
	VariableIDServerServerStatusBuildInfoProductURI       = NewNodeIDNumeric(0, 2262)
	VariableIDServerServerStatusBuildInfoManufacturerName = NewNodeIDNumeric(0, 2263)
	VariableIDServerServerStatusBuildInfoSoftwareVersion  = NewNodeIDNumeric(0, 2264)
	VariableIDServerServerStatusBuildInfoBuildNumber      = NewNodeIDNumeric(0, 2265)
	VariableIDServerServerStatusBuildInfoBuildDate        = NewNodeIDNumeric(0, 2266)
	VariableIDServerServiceLevel                          = NewNodeIDNumeric(0, 2267)
)
