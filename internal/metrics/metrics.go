package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/dnsdeck/internal/notify"
	"github.com/five82/dnsdeck/internal/syncer"
	"github.com/five82/dnsdeck/internal/transport"
)

const namespace = "dnsdeck"

// Metrics holds the dashboard's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	InFlight     prometheus.Gauge
	Requests     *prometheus.CounterVec
	SyncCycles   *prometheus.CounterVec
	SyncDuration prometheus.Histogram
	Alerts       *prometheus.CounterVec
}

var (
	_ transport.Observer = (*Metrics)(nil)
	_ syncer.Reporter    = (*Metrics)(nil)
)

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Number of API requests currently outstanding",
		}),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of settled API requests",
			},
			[]string{"outcome"},
		),
		SyncCycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_cycles_total",
				Help:      "Total number of sync cycles by result",
			},
			[]string{"result"},
		),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Sync cycle duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		Alerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "alerts_total",
				Help:      "Total number of alerts shown by kind",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(m.InFlight, m.Requests, m.SyncCycles, m.SyncDuration, m.Alerts)
	return m
}

// Registry exposes the underlying registry for the HTTP handler and tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// CallStarted implements transport.Observer.
func (m *Metrics) CallStarted(transport.Call) {
	m.InFlight.Inc()
}

// CallEnded implements transport.Observer.
func (m *Metrics) CallEnded(_ transport.Call, err error) {
	m.InFlight.Dec()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Requests.WithLabelValues(outcome).Inc()
}

// SyncFinished implements syncer.Reporter.
func (m *Metrics) SyncFinished(result syncer.Result, took time.Duration) {
	m.SyncCycles.WithLabelValues(string(result)).Inc()
	m.SyncDuration.Observe(took.Seconds())
}

// Pusher is the alert sink counted by CountAlerts.
type Pusher interface {
	Push(kind notify.Kind, message string) int64
}

// CountAlerts wraps next so every pushed alert is counted by kind.
func (m *Metrics) CountAlerts(next Pusher) Pusher {
	return &countingPusher{next: next, alerts: m.Alerts}
}

type countingPusher struct {
	next   Pusher
	alerts *prometheus.CounterVec
}

func (p *countingPusher) Push(kind notify.Kind, message string) int64 {
	p.alerts.WithLabelValues(string(kind)).Inc()
	return p.next.Push(kind, message)
}
