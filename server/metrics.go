// Copyright 2021 Converter Systems LLC. All rights reserved.

package server

import (
	"fmt"

	"github.com/awcullen/uakit/ua"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "uakit"

// serverMetrics holds the collectors of one server. Gauges carry the server's endpoint
// as a constant label; counters are shared by all servers on a registry.
type serverMetrics struct {
	nodes       prometheus.Gauge
	nodeAdds    *prometheus.CounterVec
	connections *prometheus.CounterVec
	channels    prometheus.Gauge
}

func newServerMetrics(endpoint string) *serverMetrics {
	labels := prometheus.Labels{"endpoint": endpoint}
	return &serverMetrics{
		nodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   metricsNamespace,
				Subsystem:   "address_space",
				Name:        "nodes",
				Help:        "Number of nodes in the address space.",
				ConstLabels: labels,
			},
		),
		nodeAdds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "address_space",
				Name:      "node_adds_total",
				Help:      "Node additions by resulting status.",
			},
			[]string{"status"},
		),
		connections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "transport",
				Name:      "connections_total",
				Help:      "Transport connections by handshake result.",
			},
			[]string{"result"},
		),
		channels: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   metricsNamespace,
				Subsystem:   "transport",
				Name:        "open_channels",
				Help:        "Number of open transport channels.",
				ConstLabels: labels,
			},
		),
	}
}

// register adds the collectors to reg. Collectors already registered by another server are reused.
func (m *serverMetrics) register(reg prometheus.Registerer) error {
	if reg == nil {
		return nil
	}
	if c, err := registerOrExisting(reg, m.nodes); err == nil {
		m.nodes = c.(prometheus.Gauge)
	} else {
		return err
	}
	if c, err := registerOrExisting(reg, m.nodeAdds); err == nil {
		m.nodeAdds = c.(*prometheus.CounterVec)
	} else {
		return err
	}
	if c, err := registerOrExisting(reg, m.connections); err == nil {
		m.connections = c.(*prometheus.CounterVec)
	} else {
		return err
	}
	if c, err := registerOrExisting(reg, m.channels); err == nil {
		m.channels = c.(prometheus.Gauge)
	} else {
		return err
	}
	return nil
}

func registerOrExisting(reg prometheus.Registerer, c prometheus.Collector) (prometheus.Collector, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector, nil
		}
		return nil, errors.Wrap(err, "registering metrics")
	}
	return c, nil
}

func (m *serverMetrics) observeAdd(err error) {
	m.nodeAdds.WithLabelValues(statusLabel(ua.ToStatusCode(err))).Inc()
}

func (m *serverMetrics) setNodes(n int) {
	m.nodes.Set(float64(n))
}

func (m *serverMetrics) setChannels(n int) {
	m.channels.Set(float64(n))
}

func (m *serverMetrics) observeConnection(accepted bool) {
	if accepted {
		m.connections.WithLabelValues("accepted").Inc()
		return
	}
	m.connections.WithLabelValues("rejected").Inc()
}

func statusLabel(code ua.StatusCode) string {
	if code == ua.Good {
		return "Good"
	}
	return fmt.Sprintf("0x%08X", uint32(code))
}
