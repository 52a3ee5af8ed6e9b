// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/djherbis/buffer"
)

// MessageTypes indicate the kind of message.
const (
	MessageTypeHello        uint32 = 'H' | 'E'<<8 | 'L'<<16 | 'F'<<24
	MessageTypeAck          uint32 = 'A' | 'C'<<8 | 'K'<<16 | 'F'<<24
	MessageTypeError        uint32 = 'E' | 'R'<<8 | 'R'<<16 | 'F'<<24
	MessageTypeReverseHello uint32 = 'R' | 'H'<<8 | 'E'<<16 | 'F'<<24
	MessageTypeOpenFinal    uint32 = 'O' | 'P'<<8 | 'N'<<16 | 'F'<<24
	MessageTypeCloseFinal   uint32 = 'C' | 'L'<<8 | 'O'<<16 | 'F'<<24
	MessageTypeFinal        uint32 = 'M' | 'S'<<8 | 'G'<<16 | 'F'<<24
	MessageTypeChunk        uint32 = 'M' | 'S'<<8 | 'G'<<16 | 'C'<<24
	MessageTypeAbort        uint32 = 'M' | 'S'<<8 | 'G'<<16 | 'A'<<24
)

const (
	// ProtocolVersion documents the version of binary protocol that this library supports.
	ProtocolVersion uint32 = 0
	// DefaultBufferSize is the default size of the send and receive buffers.
	DefaultBufferSize uint32 = 64 * 1024
	// DefaultMaxMessageSize is the limit on the size of messages that may be accepted.
	DefaultMaxMessageSize uint32 = 16 * 1024 * 1024
	// DefaultMaxChunkCount is the limit on the number of message chunks that may be accepted.
	DefaultMaxChunkCount uint32 = 4 * 1024
	// MinBufferSize is the smallest buffer a peer may announce.
	MinBufferSize uint32 = 8192
	// MaxEndpointURLLength limits the EndpointURL of a Hello.
	MaxEndpointURLLength = 4096

	messageHeaderSize = 8
	helloMinSize      = messageHeaderSize + 24
	ackSize           = messageHeaderSize + 20
)

// bufferPool is a pool of capacity buffers.
var bufferPool = buffer.NewMemPoolAt(int64(DefaultBufferSize))

// Message is a UA-TCP connection protocol message.
type Message interface {
	MessageType() uint32
	encode(w io.Writer) error
}

// Hello is sent by the client to open a connection.
type Hello struct {
	ProtocolVersion   uint32
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32
	EndpointURL       string
}

// MessageType returns MessageTypeHello.
func (m *Hello) MessageType() uint32 { return MessageTypeHello }

func (m *Hello) encode(w io.Writer) error {
	for _, v := range []uint32{m.ProtocolVersion, m.ReceiveBufferSize, m.SendBufferSize, m.MaxMessageSize, m.MaxChunkCount} {
		if err := writeUInt32(w, v); err != nil {
			return err
		}
	}
	return writeString(w, m.EndpointURL)
}

// Acknowledge is sent by the server in response to a Hello.
type Acknowledge struct {
	ProtocolVersion   uint32
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32
}

// MessageType returns MessageTypeAck.
func (m *Acknowledge) MessageType() uint32 { return MessageTypeAck }

func (m *Acknowledge) encode(w io.Writer) error {
	for _, v := range []uint32{m.ProtocolVersion, m.ReceiveBufferSize, m.SendBufferSize, m.MaxMessageSize, m.MaxChunkCount} {
		if err := writeUInt32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ErrorMessage is sent before a connection is closed because of an error.
type ErrorMessage struct {
	Reason  StatusCode
	Message string
}

// MessageType returns MessageTypeError.
func (m *ErrorMessage) MessageType() uint32 { return MessageTypeError }

func (m *ErrorMessage) encode(w io.Writer) error {
	if err := writeUInt32(w, uint32(m.Reason)); err != nil {
		return err
	}
	return writeString(w, m.Message)
}

// RawMessage holds a secure channel message that is not decoded at the transport level.
type RawMessage struct {
	Type uint32
	Body []byte
}

// MessageType returns the message type from the header.
func (m *RawMessage) MessageType() uint32 { return m.Type }

func (m *RawMessage) encode(w io.Writer) error {
	_, err := w.Write(m.Body)
	return err
}

// WriteMessage encodes the message with its header and writes it to w in one call.
// The header is reserved first and patched once the body length is known.
func WriteMessage(w io.Writer, msg Message) error {
	var stream = buffer.NewPartitionAt(bufferPool)
	defer stream.Reset()
	var header [messageHeaderSize]byte
	if _, err := stream.Write(header[:]); err != nil {
		return BadEncodingError
	}
	if err := msg.encode(stream); err != nil {
		return BadEncodingError
	}
	count := stream.Len()
	if count > math.MaxUint32 {
		return BadEncodingLimitsExceeded
	}
	buf := make([]byte, count)
	if _, err := io.ReadFull(stream, buf); err != nil {
		return BadEncodingError
	}
	binary.LittleEndian.PutUint32(buf[0:4], msg.MessageType())
	binary.LittleEndian.PutUint32(buf[4:8], uint32(count))
	_, err := w.Write(buf)
	return err
}

// ReadMessage reads one message from r. Messages larger than maxSize are rejected with BadTCPMessageTooLarge.
// Hello, Acknowledge and Error messages are decoded; secure channel messages are returned as *RawMessage.
func ReadMessage(r io.Reader, maxSize uint32) (Message, error) {
	var header [messageHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	msgType := binary.LittleEndian.Uint32(header[0:4])
	msgLen := binary.LittleEndian.Uint32(header[4:8])
	if msgLen < messageHeaderSize {
		return nil, BadTCPMessageTypeInvalid
	}
	if maxSize > 0 && msgLen > maxSize {
		return nil, BadTCPMessageTooLarge
	}
	body := make([]byte, msgLen-messageHeaderSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	d := &decoder{buf: body}
	switch msgType {
	case MessageTypeHello:
		if msgLen < helloMinSize {
			return nil, BadDecodingError
		}
		m := &Hello{
			ProtocolVersion:   d.readUInt32(),
			ReceiveBufferSize: d.readUInt32(),
			SendBufferSize:    d.readUInt32(),
			MaxMessageSize:    d.readUInt32(),
			MaxChunkCount:     d.readUInt32(),
			EndpointURL:       d.readString(),
		}
		if d.err != nil {
			return nil, d.err
		}
		return m, nil
	case MessageTypeAck:
		if msgLen < ackSize {
			return nil, BadDecodingError
		}
		m := &Acknowledge{
			ProtocolVersion:   d.readUInt32(),
			ReceiveBufferSize: d.readUInt32(),
			SendBufferSize:    d.readUInt32(),
			MaxMessageSize:    d.readUInt32(),
			MaxChunkCount:     d.readUInt32(),
		}
		if d.err != nil {
			return nil, d.err
		}
		return m, nil
	case MessageTypeError:
		m := &ErrorMessage{
			Reason:  StatusCode(d.readUInt32()),
			Message: d.readString(),
		}
		if d.err != nil {
			return nil, d.err
		}
		return m, nil
	case MessageTypeReverseHello, MessageTypeOpenFinal, MessageTypeCloseFinal,
		MessageTypeFinal, MessageTypeChunk, MessageTypeAbort:
		return &RawMessage{Type: msgType, Body: body}, nil
	default:
		return nil, BadTCPMessageTypeInvalid
	}
}

func writeUInt32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// writeString writes a length-prefixed UTF-8 string; the empty string is written as null.
func writeString(w io.Writer, s string) error {
	if len(s) == 0 {
		return writeUInt32(w, math.MaxUint32)
	}
	if err := writeUInt32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

type decoder struct {
	buf []byte
	pos int
	err error
}

func (d *decoder) readUInt32() uint32 {
	if d.err != nil {
		return 0
	}
	if len(d.buf)-d.pos < 4 {
		d.err = BadDecodingError
		return 0
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v
}

func (d *decoder) readString() string {
	n := int32(d.readUInt32())
	if d.err != nil || n < 0 {
		return ""
	}
	if n > MaxEndpointURLLength {
		d.err = BadEncodingLimitsExceeded
		return ""
	}
	if int(n) > len(d.buf)-d.pos {
		d.err = BadDecodingError
		return ""
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s
}

// SecurityPolicyURINone is the only security policy supported by this module.
const SecurityPolicyURINone = "http://opcfoundation.org/UA/SecurityPolicy#None"
