// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"sync"
)

// ChannelManager manages the transport channels for a server.
type ChannelManager struct {
	sync.RWMutex
	server       *Server
	channelsByID map[uint32]*serverTransportChannel
}

// NewChannelManager instantiates a new ChannelManager.
func NewChannelManager(server *Server) *ChannelManager {
	return &ChannelManager{server: server, channelsByID: make(map[uint32]*serverTransportChannel)}
}

// Get a transport channel from the server.
func (m *ChannelManager) Get(id uint32) (*serverTransportChannel, bool) {
	m.RLock()
	defer m.RUnlock()
	if ch, ok := m.channelsByID[id]; ok {
		return ch, ok
	}
	return nil, false
}

// Add a transport channel to the server.
func (m *ChannelManager) Add(ch *serverTransportChannel) error {
	m.Lock()
	defer m.Unlock()
	m.channelsByID[ch.channelID] = ch
	m.server.metrics.setChannels(len(m.channelsByID))
	return nil
}

// Delete the transport channel from the server.
func (m *ChannelManager) Delete(ch *serverTransportChannel) {
	m.Lock()
	defer m.Unlock()
	delete(m.channelsByID, ch.channelID)
	m.server.metrics.setChannels(len(m.channelsByID))
	m.server.logger.Debug().Uint32("channel", ch.channelID).Int("open", len(m.channelsByID)).Msg("Deleted channel")
}

// Len returns the number of transport channels.
func (m *ChannelManager) Len() int {
	m.RLock()
	defer m.RUnlock()
	res := len(m.channelsByID)
	return res
}

func (m *ChannelManager) closeChannels() {
	m.RLock()
	defer m.RUnlock()
	for _, ch := range m.channelsByID {
		ch.Close()
	}
}
