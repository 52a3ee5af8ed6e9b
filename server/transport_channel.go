// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"net"
	"sync"
	"time"

	"github.com/awcullen/uakit/ua"
)

const (
	// the time allowed for the client to send the Hello.
	handshakeTimeout = 10 * time.Second
	// the time a connection may stay open without a message after the handshake.
	idleTimeout = 30 * time.Second
)

var (
	channelIDLock = sync.Mutex{}
	channelID     = uint32(0)
)

func getNextChannelID() uint32 {
	channelIDLock.Lock()
	defer channelIDLock.Unlock()
	channelID++
	return channelID
}

// serverTransportChannel implements the UA-TCP connection protocol over a net.Conn.
// Secure channels are not supported. After the Hello/Acknowledge handshake the
// channel answers OpenSecureChannel with an Error message and disconnects.
type serverTransportChannel struct {
	sync.RWMutex
	srv               *Server
	conn              net.Conn
	channelID         uint32
	receiveBufferSize uint32
	sendBufferSize    uint32
	maxMessageSize    uint32
	maxChunkCount     uint32
	endpointURL       string
	trace             bool
	closed            bool
}

func newServerTransportChannel(srv *Server, conn net.Conn, receiveBufferSize, sendBufferSize, maxMessageSize, maxChunkCount uint32, trace bool) *serverTransportChannel {
	return &serverTransportChannel{
		srv:               srv,
		conn:              conn,
		channelID:         getNextChannelID(),
		receiveBufferSize: receiveBufferSize,
		sendBufferSize:    sendBufferSize,
		maxMessageSize:    maxMessageSize,
		maxChunkCount:     maxChunkCount,
		trace:             trace,
	}
}

// ChannelID returns the id of the channel.
func (ch *serverTransportChannel) ChannelID() uint32 {
	return ch.channelID
}

// EndpointURL returns the endpoint url sent by the client.
func (ch *serverTransportChannel) EndpointURL() string {
	ch.RLock()
	defer ch.RUnlock()
	return ch.endpointURL
}

// ReceiveBufferSize returns the negotiated size of the receive buffer.
func (ch *serverTransportChannel) ReceiveBufferSize() uint32 {
	ch.RLock()
	defer ch.RUnlock()
	return ch.receiveBufferSize
}

// SendBufferSize returns the negotiated size of the send buffer.
func (ch *serverTransportChannel) SendBufferSize() uint32 {
	ch.RLock()
	defer ch.RUnlock()
	return ch.sendBufferSize
}

// Open performs the Hello/Acknowledge handshake.
func (ch *serverTransportChannel) Open() error {
	if err := ch.conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return ua.BadTCPInternalError
	}
	msg, err := ua.ReadMessage(ch.conn, ch.receiveBufferSize)
	if err != nil {
		if reason, ok := err.(ua.StatusCode); ok {
			return reason
		}
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return ua.BadTimeout
		}
		return ua.BadTCPMessageTypeInvalid
	}
	hel, ok := msg.(*ua.Hello)
	if !ok {
		return ua.BadTCPMessageTypeInvalid
	}
	ch.traceMessage("->", hel)
	if hel.ProtocolVersion < ua.ProtocolVersion {
		return ua.BadProtocolVersionUnsupported
	}
	if hel.ReceiveBufferSize < ua.MinBufferSize || hel.SendBufferSize < ua.MinBufferSize {
		return ua.BadConnectionRejected
	}
	ch.Lock()
	ch.endpointURL = hel.EndpointURL

	// limit the receive buffer to what the sender can send
	if ch.receiveBufferSize > hel.SendBufferSize {
		ch.receiveBufferSize = hel.SendBufferSize
	}
	// limit the send buffer to what the receiver can receive
	if ch.sendBufferSize > hel.ReceiveBufferSize {
		ch.sendBufferSize = hel.ReceiveBufferSize
	}
	// limit the max message size to what the receiver can receive
	if hel.MaxMessageSize > 0 && ch.maxMessageSize > hel.MaxMessageSize {
		ch.maxMessageSize = hel.MaxMessageSize
	}
	// limit the max chunk count to what the receiver can receive
	if hel.MaxChunkCount > 0 && ch.maxChunkCount > hel.MaxChunkCount {
		ch.maxChunkCount = hel.MaxChunkCount
	}
	ack := &ua.Acknowledge{
		ProtocolVersion:   ua.ProtocolVersion,
		ReceiveBufferSize: ch.receiveBufferSize,
		SendBufferSize:    ch.sendBufferSize,
		MaxMessageSize:    ch.maxMessageSize,
		MaxChunkCount:     ch.maxChunkCount,
	}
	ch.Unlock()
	if err := ua.WriteMessage(ch.conn, ack); err != nil {
		return ua.BadTCPInternalError
	}
	ch.traceMessage("<-", ack)
	return nil
}

// serve waits for the next message. Returns when the client closes the
// connection, when the channel times out, or when the channel is closed by the server.
func (ch *serverTransportChannel) serve() {
	if err := ch.conn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
		ch.Close()
		return
	}
	// Open guarantees a receive buffer of at least MinBufferSize, so the read is always bounded.
	msg, err := ua.ReadMessage(ch.conn, ch.ReceiveBufferSize())
	if err != nil {
		if reason, ok := err.(ua.StatusCode); ok {
			ch.Abort(reason, reason.Error())
			return
		}
		ch.Close()
		return
	}
	ch.traceMessage("->", msg)
	switch msg.MessageType() {
	case ua.MessageTypeCloseFinal:
		ch.Close()
	case ua.MessageTypeHello:
		ch.Abort(ua.BadTCPMessageTypeInvalid, "Hello already received.")
	default:
		ch.Abort(ua.BadServiceUnsupported, "Secure channels are not supported.")
	}
}

// Close the channel.
func (ch *serverTransportChannel) Close() error {
	ch.Lock()
	defer ch.Unlock()
	if ch.closed {
		return nil
	}
	ch.closed = true
	return ch.conn.Close()
}

// Abort sends an Error message to the client and closes the channel.
func (ch *serverTransportChannel) Abort(reason ua.StatusCode, message string) error {
	ch.Lock()
	defer ch.Unlock()
	if ch.closed {
		return nil
	}
	ch.closed = true
	msg := &ua.ErrorMessage{Reason: reason, Message: message}
	ch.conn.SetWriteDeadline(time.Now().Add(handshakeTimeout))
	if err := ua.WriteMessage(ch.conn, msg); err != nil {
		ch.srv.logger.Debug().Err(err).Uint32("channel", ch.channelID).Msg("Error sending Error message")
	}
	ch.traceMessage("<-", msg)
	return ch.conn.Close()
}

// Closed returns true if the channel is closed.
func (ch *serverTransportChannel) Closed() bool {
	ch.RLock()
	defer ch.RUnlock()
	return ch.closed
}

func (ch *serverTransportChannel) traceMessage(dir string, msg ua.Message) {
	if !ch.trace {
		return
	}
	e := ch.srv.logger.Debug().Uint32("channel", ch.channelID).Str("dir", dir)
	switch m := msg.(type) {
	case *ua.Hello:
		e = e.Str("type", "Hello").Uint32("ver", m.ProtocolVersion).Uint32("rec", m.ReceiveBufferSize).
			Uint32("snd", m.SendBufferSize).Uint32("msg", m.MaxMessageSize).Uint32("chk", m.MaxChunkCount).Str("ep", m.EndpointURL)
	case *ua.Acknowledge:
		e = e.Str("type", "Ack").Uint32("ver", m.ProtocolVersion).Uint32("rec", m.ReceiveBufferSize).
			Uint32("snd", m.SendBufferSize).Uint32("msg", m.MaxMessageSize).Uint32("chk", m.MaxChunkCount)
	case *ua.ErrorMessage:
		e = e.Str("type", "Error").Str("reason", statusLabel(m.Reason)).Str("message", m.Message)
	default:
		e = e.Uint32("type", msg.MessageType())
	}
	e.Msg("Transport message")
}
