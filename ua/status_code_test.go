// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/awcullen/uakit/ua"
	gopcua "github.com/gopcua/opcua/ua"
	"github.com/pkg/errors"
	"gotest.tools/assert"
)

func TestStatusCodeValues(t *testing.T) {
	cases := []struct {
		got  ua.StatusCode
		want gopcua.StatusCode
	}{
		{ua.BadInternalError, gopcua.StatusBadInternalError},
		{ua.BadNodeIDInvalid, gopcua.StatusBadNodeIDInvalid},
		{ua.BadNodeIDUnknown, gopcua.StatusBadNodeIDUnknown},
		{ua.BadNodeIDExists, gopcua.StatusBadNodeIDExists},
		{ua.BadParentNodeIDInvalid, gopcua.StatusBadParentNodeIDInvalid},
		{ua.BadBrowseNameInvalid, gopcua.StatusBadBrowseNameInvalid},
		{ua.BadNodeAttributesInvalid, gopcua.StatusBadNodeAttributesInvalid},
		{ua.BadTypeDefinitionInvalid, gopcua.StatusBadTypeDefinitionInvalid},
		{ua.BadConfigurationError, gopcua.StatusBadConfigurationError},
		{ua.BadInvalidArgument, gopcua.StatusBadInvalidArgument},
		{ua.BadServerHalted, gopcua.StatusBadServerHalted},
		{ua.BadConnectionRejected, gopcua.StatusBadConnectionRejected},
		{ua.BadServiceUnsupported, gopcua.StatusBadServiceUnsupported},
		{ua.BadTypeMismatch, gopcua.StatusBadTypeMismatch},
		{ua.BadNotWritable, gopcua.StatusBadNotWritable},
		{ua.BadTooManyOperations, gopcua.StatusBadTooManyOperations},
	}
	for _, c := range cases {
		assert.Equal(t, uint32(c.got), uint32(c.want), c.got.Error())
	}
}

func TestStatusCodeSeverity(t *testing.T) {
	assert.Check(t, ua.Good.IsGood())
	assert.Check(t, !ua.Good.IsBad())
	assert.Check(t, ua.BadNodeIDExists.IsBad())
	assert.Check(t, !ua.BadNodeIDExists.IsGood())
	assert.Check(t, ua.Uncertain.IsUncertain())
}

func TestStatusCodeError(t *testing.T) {
	var err error = ua.BadNodeIDExists
	assert.Equal(t, err.Error(), "The requested node id is already used by another node.")
	assert.Equal(t, ua.StatusCode(0x81230000).Error(), "An unknown error occurred (0x81230000).")
}

func TestToStatusCode(t *testing.T) {
	assert.Equal(t, ua.ToStatusCode(nil), ua.Good)
	assert.Equal(t, ua.ToStatusCode(ua.BadNodeIDExists), ua.BadNodeIDExists)
	assert.Equal(t, ua.ToStatusCode(errors.Wrap(ua.BadTimeout, "dialing")), ua.BadTimeout)
	assert.Equal(t, ua.ToStatusCode(io.EOF), ua.BadInternalError)
	assert.Equal(t, ua.ToStatusCode(fmt.Errorf("boom")), ua.BadInternalError)
}
