// Copyright 2021 Converter Systems LLC. All rights reserved.

package client

import (
	"context"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/awcullen/uakit/ua"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Dial connects to the OPC UA server with the given URL and performs the
// Hello/Acknowledge handshake. An Error message from the server is returned as its StatusCode.
func Dial(ctx context.Context, endpointURL string, cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cli := &Client{
		config:            cfg,
		endpointURL:       endpointURL,
		logger:            zerolog.Nop(),
		receiveBufferSize: cfg.ReceiveBufferSize,
		sendBufferSize:    cfg.SendBufferSize,
	}

	// apply each option to the default
	for _, opt := range opts {
		if err := opt(cli); err != nil {
			return nil, err
		}
	}

	if len(endpointURL) > ua.MaxEndpointURLLength {
		return nil, ua.BadTCPEndpointURLInvalid
	}
	remoteURL, err := url.Parse(endpointURL)
	if err != nil || remoteURL.Scheme != "opc.tcp" || remoteURL.Hostname() == "" {
		return nil, ua.BadTCPEndpointURLInvalid
	}
	host := remoteURL.Host
	if remoteURL.Port() == "" {
		host = net.JoinHostPort(remoteURL.Hostname(), "4840")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	d := net.Dialer{}
	cli.conn, err = d.DialContext(ctx, "tcp", host)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, errors.Wrapf(ua.BadTimeout, "dialing %s", host)
		}
		return nil, errors.Wrapf(ua.BadCommunicationError, "dialing %s: %s", host, err)
	}
	if err := cli.open(ctx); err != nil {
		cli.Abort()
		return nil, err
	}
	return cli, nil
}

// Client exchanges UA-TCP connection protocol messages with an OPC UA server.
type Client struct {
	sync.RWMutex
	config            Config
	conn              net.Conn
	endpointURL       string
	logger            zerolog.Logger
	trace             bool
	receiveBufferSize uint32
	sendBufferSize    uint32
	maxMessageSize    uint32
	maxChunkCount     uint32
	closed            bool
}

func (c *Client) open(ctx context.Context) error {
	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	}
	defer c.conn.SetDeadline(time.Time{})

	hel := &ua.Hello{
		ProtocolVersion:   ua.ProtocolVersion,
		ReceiveBufferSize: c.config.ReceiveBufferSize,
		SendBufferSize:    c.config.SendBufferSize,
		MaxMessageSize:    c.config.MaxMessageSize,
		MaxChunkCount:     c.config.MaxChunkCount,
		EndpointURL:       c.endpointURL,
	}
	if err := ua.WriteMessage(c.conn, hel); err != nil {
		return errors.Wrap(ua.BadCommunicationError, err.Error())
	}
	c.traceMessage("->", hel)

	msg, err := ua.ReadMessage(c.conn, c.config.ReceiveBufferSize)
	if err != nil {
		if code, ok := err.(ua.StatusCode); ok {
			return code
		}
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return ua.BadTimeout
		}
		return errors.Wrap(ua.BadCommunicationError, err.Error())
	}
	c.traceMessage("<-", msg)
	switch m := msg.(type) {
	case *ua.Acknowledge:
		if m.ProtocolVersion < ua.ProtocolVersion {
			return ua.BadProtocolVersionUnsupported
		}
		if m.ReceiveBufferSize < ua.MinBufferSize || m.SendBufferSize < ua.MinBufferSize {
			return ua.BadConnectionRejected
		}
		c.Lock()
		// the server's receive buffer limits what the client may send
		if c.sendBufferSize > m.ReceiveBufferSize {
			c.sendBufferSize = m.ReceiveBufferSize
		}
		if c.receiveBufferSize > m.SendBufferSize {
			c.receiveBufferSize = m.SendBufferSize
		}
		c.maxMessageSize = m.MaxMessageSize
		c.maxChunkCount = m.MaxChunkCount
		c.Unlock()
		return nil
	case *ua.ErrorMessage:
		c.logger.Debug().Str("reason", m.Reason.Error()).Str("message", m.Message).Msg("Server rejected connection")
		return m.Reason
	default:
		return ua.BadTCPMessageTypeInvalid
	}
}

// EndpointURL gets the endpoint url of the server.
func (c *Client) EndpointURL() string {
	return c.endpointURL
}

// ReceiveBufferSize gets the negotiated size of the receive buffer.
func (c *Client) ReceiveBufferSize() uint32 {
	c.RLock()
	defer c.RUnlock()
	return c.receiveBufferSize
}

// SendBufferSize gets the negotiated size of the send buffer.
func (c *Client) SendBufferSize() uint32 {
	c.RLock()
	defer c.RUnlock()
	return c.sendBufferSize
}

// MaxMessageSize gets the negotiated limit on the size of messages. Zero means no limit.
func (c *Client) MaxMessageSize() uint32 {
	c.RLock()
	defer c.RUnlock()
	return c.maxMessageSize
}

// MaxChunkCount gets the negotiated limit on the number of chunks. Zero means no limit.
func (c *Client) MaxChunkCount() uint32 {
	c.RLock()
	defer c.RUnlock()
	return c.maxChunkCount
}

// Close sends CloseSecureChannel and closes the connection.
func (c *Client) Close() error {
	c.Lock()
	defer c.Unlock()
	if c.closed {
		return ua.BadInvalidState
	}
	c.closed = true
	msg := &ua.RawMessage{Type: ua.MessageTypeCloseFinal}
	c.conn.SetWriteDeadline(time.Now().Add(c.config.ConnectTimeout))
	if err := ua.WriteMessage(c.conn, msg); err != nil {
		c.logger.Debug().Err(err).Msg("Error sending CloseSecureChannel")
	}
	c.traceMessage("->", msg)
	return c.conn.Close()
}

// Abort closes the connection without notifying the server.
func (c *Client) Abort() error {
	c.Lock()
	defer c.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Client) traceMessage(dir string, msg ua.Message) {
	if !c.trace {
		return
	}
	e := c.logger.Debug().Str("dir", dir)
	switch m := msg.(type) {
	case *ua.Hello:
		e = e.Str("type", "Hello").Uint32("rec", m.ReceiveBufferSize).Uint32("snd", m.SendBufferSize).
			Uint32("msg", m.MaxMessageSize).Uint32("chk", m.MaxChunkCount).Str("ep", m.EndpointURL)
	case *ua.Acknowledge:
		e = e.Str("type", "Ack").Uint32("rec", m.ReceiveBufferSize).Uint32("snd", m.SendBufferSize).
			Uint32("msg", m.MaxMessageSize).Uint32("chk", m.MaxChunkCount)
	case *ua.ErrorMessage:
		e = e.Str("type", "Error").Uint32("reason", uint32(m.Reason)).Str("message", m.Message)
	default:
		e = e.Uint32("type", msg.MessageType())
	}
	e.Msg("Transport message")
}
