// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua_test

import (
	"bytes"
	"testing"

	"github.com/awcullen/uakit/ua"
	"gotest.tools/assert"
)

func TestHelloBytes(t *testing.T) {
	buf := &bytes.Buffer{}
	err := ua.WriteMessage(buf, &ua.Hello{
		ProtocolVersion:   0,
		ReceiveBufferSize: 65536,
		SendBufferSize:    65536,
		MaxMessageSize:    0,
		MaxChunkCount:     0,
		EndpointURL:       "opc.tcp://h:4840",
	})
	assert.NilError(t, err)
	assert.DeepEqual(t, buf.Bytes()[:16], []byte{
		'H', 'E', 'L', 'F',
		0x30, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x01, 0x00,
	})
	assert.Equal(t, buf.Len(), 48)

	msg, err := ua.ReadMessage(buf, 0)
	assert.NilError(t, err)
	hel, ok := msg.(*ua.Hello)
	assert.Check(t, ok)
	assert.Equal(t, hel.EndpointURL, "opc.tcp://h:4840")
	assert.Equal(t, hel.SendBufferSize, uint32(65536))
}

func TestAcknowledgeAndError(t *testing.T) {
	buf := &bytes.Buffer{}
	ack := &ua.Acknowledge{ReceiveBufferSize: 8192, SendBufferSize: 8192, MaxMessageSize: 1 << 20, MaxChunkCount: 16}
	assert.NilError(t, ua.WriteMessage(buf, ack))
	assert.Equal(t, buf.Len(), 28)
	assert.NilError(t, ua.WriteMessage(buf, &ua.ErrorMessage{Reason: ua.BadServiceUnsupported, Message: "no secure channels"}))

	msg, err := ua.ReadMessage(buf, 0)
	assert.NilError(t, err)
	assert.DeepEqual(t, msg, ack)

	msg, err = ua.ReadMessage(buf, 0)
	assert.NilError(t, err)
	e, ok := msg.(*ua.ErrorMessage)
	assert.Check(t, ok)
	assert.Equal(t, e.Reason, ua.BadServiceUnsupported)
	assert.Equal(t, e.Message, "no secure channels")
}

func TestReadMessageLimits(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.NilError(t, ua.WriteMessage(buf, &ua.Hello{EndpointURL: "opc.tcp://h:4840"}))
	_, err := ua.ReadMessage(buf, 16)
	assert.Equal(t, err, ua.BadTCPMessageTooLarge)

	_, err = ua.ReadMessage(bytes.NewReader([]byte{'X', 'Y', 'Z', 'F', 8, 0, 0, 0}), 0)
	assert.Equal(t, err, ua.BadTCPMessageTypeInvalid)

	_, err = ua.ReadMessage(bytes.NewReader([]byte{'H', 'E', 'L', 'F', 4, 0, 0, 0}), 0)
	assert.Equal(t, err, ua.BadTCPMessageTypeInvalid)
}

func TestReadMessageSecureChannel(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.NilError(t, ua.WriteMessage(buf, &ua.RawMessage{Type: ua.MessageTypeOpenFinal, Body: []byte{1, 2, 3, 4}}))
	msg, err := ua.ReadMessage(buf, 0)
	assert.NilError(t, err)
	assert.Equal(t, msg.MessageType(), ua.MessageTypeOpenFinal)
	assert.DeepEqual(t, msg.(*ua.RawMessage).Body, []byte{1, 2, 3, 4})
}
