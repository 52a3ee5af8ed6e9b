// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	_ "embed"
	"net"
	"sync"
	"time"

	"github.com/awcullen/uakit/ua"
	"github.com/gammazero/workerpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// nodeset holds the standard nodes of namespace 0 that the server exposes.
//
//go:embed nodeset.xml
var nodeset []byte

// Server implements the OPC UA server role. The server keeps an address space of nodes
// and accepts opc.tcp connections.
type Server struct {
	sync.RWMutex
	config           Config
	logger           zerolog.Logger
	registerer       prometheus.Registerer
	metrics          *serverMetrics
	trace            bool
	listener         net.Listener
	serving          sync.WaitGroup
	closing          chan struct{}
	stateSemaphore   chan struct{}
	state            ua.ServerState
	stateListener    func(state ua.ServerState)
	startTime        time.Time
	workerpool       *workerpool.WorkerPool
	channelManager   *ChannelManager
	namespaceManager *NamespaceManager
}

// New initializes a new instance of the Server. The config must be valid, see Config.Validate.
func New(cfg Config, options ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	srv := &Server{
		config:         cfg,
		logger:         zerolog.Nop(),
		closing:        make(chan struct{}),
		stateSemaphore: make(chan struct{}, 1),
		state:          ua.ServerStateUnknown,
		startTime:      time.Now(),
	}

	// apply each option to the default
	for _, opt := range options {
		if err := opt(srv); err != nil {
			return nil, err
		}
	}

	srv.metrics = newServerMetrics(cfg.EndpointURL)
	if err := srv.metrics.register(srv.registerer); err != nil {
		srv.logger.Error().Err(err).Msg("Error registering metrics")
		return nil, ua.BadInternalError
	}
	srv.workerpool = workerpool.New(cfg.MaxWorkerThreads)
	srv.channelManager = NewChannelManager(srv)
	srv.namespaceManager = NewNamespaceManager(srv)

	if err := srv.initializeNamespace(); err != nil {
		srv.logger.Error().Err(err).Msg("Error initializing namespace")
		srv.workerpool.Stop()
		return nil, err
	}
	srv.logger.Info().Str("endpoint", cfg.EndpointURL).Int("nodes", srv.namespaceManager.NodeCount()).Msg("Server created")
	return srv, nil
}

// Config gets a copy of the config of the server.
func (srv *Server) Config() Config {
	srv.RLock()
	defer srv.RUnlock()
	return srv.config
}

// EndpointURL gets the endpoint url.
func (srv *Server) EndpointURL() string {
	srv.RLock()
	defer srv.RUnlock()
	return srv.config.EndpointURL
}

// Addr gets the address of the listener, or nil if the server is not listening.
func (srv *Server) Addr() net.Addr {
	srv.RLock()
	defer srv.RUnlock()
	if srv.listener == nil {
		return nil
	}
	return srv.listener.Addr()
}

// Closing gets a channel that broadcasts the closing of the server.
func (srv *Server) Closing() <-chan struct{} {
	return srv.closing
}

// State gets the ServerState.
func (srv *Server) State() ua.ServerState {
	srv.RLock()
	defer srv.RUnlock()
	return srv.state
}

func (srv *Server) setState(value ua.ServerState) {
	srv.Lock()
	srv.state = value
	listener := srv.stateListener
	srv.Unlock()
	srv.logger.Info().Str("state", value.String()).Msg("Server state changed")
	if listener != nil {
		listener(value)
	}
}

// StartTime gets the time the server was created.
func (srv *Server) StartTime() time.Time {
	return srv.startTime
}

// NamespaceUris gets the namespace uris.
func (srv *Server) NamespaceUris() []string {
	return srv.namespaceManager.NamespaceUris()
}

// ServerUris gets the server uris.
func (srv *Server) ServerUris() []string {
	srv.RLock()
	defer srv.RUnlock()
	return []string{srv.config.ApplicationURI}
}

// Logger gets the logger of the server.
func (srv *Server) Logger() zerolog.Logger {
	return srv.logger
}

// WorkerPool gets a pool of workers.
func (srv *Server) WorkerPool() *workerpool.WorkerPool {
	return srv.workerpool
}

// ChannelManager gets the transport channel manager.
func (srv *Server) ChannelManager() *ChannelManager {
	return srv.channelManager
}

// NamespaceManager gets the namespace manager.
func (srv *Server) NamespaceManager() *NamespaceManager {
	return srv.namespaceManager
}

// ListenAndServe listens on the port of the EndpointURL for incoming connections and then
// handles them until the server is closed.
// ListenAndServe always returns a non-nil error. After Close or Abort,
// the returned error is BadServerHalted.
func (srv *Server) ListenAndServe() error {
	srv.stateSemaphore <- struct{}{}
	select {
	case <-srv.closing:
		<-srv.stateSemaphore
		return ua.BadServerHalted
	default:
	}
	if srv.State() == ua.ServerStateRunning {
		<-srv.stateSemaphore
		return ua.BadInvalidState
	}
	l, err := net.Listen("tcp", ":"+srv.config.port())
	if err != nil {
		srv.logger.Error().Err(err).Str("endpoint", srv.config.EndpointURL).Msg("Error opening listener")
		<-srv.stateSemaphore
		return ua.BadResourceUnavailable
	}
	srv.Lock()
	srv.listener = l
	srv.Unlock()
	srv.serving.Add(1)
	srv.setState(ua.ServerStateRunning)
	srv.logger.Info().Str("addr", l.Addr().String()).Msg("Listening")
	<-srv.stateSemaphore

	defer srv.serving.Done()
	return srv.serve(l)
}

// Close the server. Open channels are closed and running workers are awaited.
func (srv *Server) Close() error {
	srv.stateSemaphore <- struct{}{}
	defer func() { <-srv.stateSemaphore }()
	select {
	case <-srv.closing:
		return ua.BadInvalidState
	default:
	}

	srv.setState(ua.ServerStateShutdown)
	close(srv.closing)
	srv.closeListener()

	// no Submit after the pool stops
	srv.serving.Wait()

	// close channels
	srv.channelManager.closeChannels()

	// stop workers.
	srv.workerpool.StopWait()
	return nil
}

// Abort the server. Workers are stopped without waiting.
func (srv *Server) Abort() error {
	srv.stateSemaphore <- struct{}{}
	defer func() { <-srv.stateSemaphore }()
	select {
	case <-srv.closing:
		return ua.BadInvalidState
	default:
	}

	srv.setState(ua.ServerStateFailed)
	close(srv.closing)
	srv.closeListener()
	srv.serving.Wait()

	// close channels
	srv.channelManager.closeChannels()

	// stop workers but don't wait.
	srv.workerpool.Stop()
	return nil
}

func (srv *Server) closeListener() {
	srv.RLock()
	l := srv.listener
	srv.RUnlock()
	if l == nil {
		return
	}
	if err := l.Close(); err != nil {
		srv.logger.Error().Err(err).Msg("Error closing listener")
	}
}

func (srv *Server) serve(l net.Listener) error {
	var delay time.Duration
	for {
		conn, err := l.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				if delay == 0 {
					delay = 5 * time.Millisecond
				} else {
					delay *= 2
				}
				if max := 1 * time.Second; delay > max {
					delay = max
				}
				time.Sleep(delay)
				continue
			}
			select {
			case <-srv.closing:
				return ua.BadServerHalted
			default:
				srv.logger.Error().Err(err).Msg("Error accepting connection")
				return ua.BadTCPInternalError
			}
		}
		delay = 0
		select {
		case <-srv.closing:
			conn.Close()
			return ua.BadServerHalted
		default:
		}
		ch := newServerTransportChannel(srv, conn, srv.config.ReceiveBufferSize, srv.config.SendBufferSize, srv.config.MaxMessageSize, srv.config.MaxChunkCount, srv.trace)
		srv.workerpool.Submit(func() {
			srv.handleChannel(ch)
		})
	}
}

func (srv *Server) handleChannel(ch *serverTransportChannel) {
	srv.channelManager.Add(ch)
	defer srv.channelManager.Delete(ch)
	select {
	case <-srv.closing:
		ch.Close()
		return
	default:
	}
	if err := ch.Open(); err != nil {
		srv.metrics.observeConnection(false)
		reason := ua.ToStatusCode(err)
		srv.logger.Debug().Uint32("channel", ch.channelID).Str("remote", ch.conn.RemoteAddr().String()).Str("reason", statusLabel(reason)).Msg("Rejected connection")
		ch.Abort(reason, reason.Error())
		return
	}
	srv.metrics.observeConnection(true)
	srv.logger.Debug().Uint32("channel", ch.channelID).Str("remote", ch.conn.RemoteAddr().String()).Str("endpoint", ch.EndpointURL()).Msg("Accepted connection")
	ch.serve()
}

func (srv *Server) initializeNamespace() error {
	nm := srv.NamespaceManager()
	if err := nm.LoadNodeSetFromBuffer(nodeset); err != nil {
		return err
	}
	if n, ok := nm.FindVariable(ua.VariableIDServerNamespaceArray); ok {
		n.SetReadValueHandler(func() ua.DataValue {
			return ua.NewDataValue(srv.NamespaceUris(), ua.Good, time.Now(), 0, time.Now(), 0)
		})
	}
	if n, ok := nm.FindVariable(ua.VariableIDServerServerArray); ok {
		n.SetReadValueHandler(func() ua.DataValue {
			return ua.NewDataValue(srv.ServerUris(), ua.Good, time.Now(), 0, time.Now(), 0)
		})
	}
	if n, ok := nm.FindVariable(ua.VariableIDServerServerStatusState); ok {
		n.SetReadValueHandler(func() ua.DataValue {
			return ua.NewDataValue(int32(srv.State()), ua.Good, time.Now(), 0, time.Now(), 0)
		})
	}
	if n, ok := nm.FindVariable(ua.VariableIDServerServerStatusCurrentTime); ok {
		n.SetReadValueHandler(func() ua.DataValue {
			return ua.NewDataValue(time.Now(), ua.Good, time.Now(), 0, time.Now(), 0)
		})
	}
	now := time.Now()
	buildInfo := srv.config.BuildInfo
	values := []struct {
		id    ua.NodeID
		value ua.Variant
	}{
		{ua.VariableIDServerServerStatusStartTime, srv.startTime},
		{ua.VariableIDServerServerStatusBuildInfo, buildInfo},
		{ua.VariableIDServerServerStatusBuildInfoProductURI, buildInfo.ProductURI},
		{ua.VariableIDServerServerStatusBuildInfoManufacturerName, buildInfo.ManufacturerName},
		{ua.VariableIDServerServerStatusBuildInfoProductName, buildInfo.ProductName},
		{ua.VariableIDServerServerStatusBuildInfoSoftwareVersion, buildInfo.SoftwareVersion},
		{ua.VariableIDServerServerStatusBuildInfoBuildNumber, buildInfo.BuildNumber},
		{ua.VariableIDServerServerStatusBuildInfoBuildDate, buildInfo.BuildDate},
	}
	for _, v := range values {
		if n, ok := nm.FindVariable(v.id); ok {
			n.SetValue(ua.NewDataValue(v.value, ua.Good, now, 0, now, 0))
		}
	}
	return nil
}
