package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics chat service prometheus 指標
type Metrics struct {
	Connections   prometheus.Gauge
	Rooms         prometheus.Gauge
	Pushed        *prometheus.CounterVec
	SlowConsumers prometheus.Counter
	Messages      *prometheus.CounterVec
}

// NewMetrics create metrics and register to reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chat",
			Name:      "ws_connections",
			Help:      "Number of live websocket connections.",
		}),
		Rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chat",
			Name:      "rooms",
			Help:      "Number of rooms with at least one joined connection.",
		}),
		Pushed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chat",
			Name:      "events_pushed_total",
			Help:      "Realtime events queued to connections.",
		}, []string{"event"}),
		SlowConsumers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chat",
			Name:      "slow_consumer_closed_total",
			Help:      "Connections closed because the send queue was full.",
		}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chat",
			Name:      "messages_total",
			Help:      "Message store operations by result.",
		}, []string{"op", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Connections, m.Rooms, m.Pushed, m.SlowConsumers, m.Messages)
	}
	return m
}
