package protocol

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	dropUnknownDestination = "unknown_destination"
	dropOwn                = "own"
	outcomeOK              = "ok"
)

// Metrics holds the Prometheus metrics updated by Execute.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RoundsTotal      prometheus.Counter
	MessagesSent     prometheus.Counter
	MessagesReceived prometheus.Counter
	MessagesDropped  *prometheus.CounterVec
	SessionsTotal    *prometheus.CounterVec
}

// NewMetrics creates the metrics under namespace and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RoundsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Total number of protocol rounds consumed",
		}),
		MessagesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Total number of messages handed to the transport",
		}),
		MessagesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of messages accepted by a round",
		}),
		MessagesDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dropped_total",
			Help:      "Total number of messages dropped without aborting, by reason",
		}, []string{"reason"}),
		SessionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of finished executions, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) roundDone() {
	if m != nil {
		m.RoundsTotal.Inc()
	}
}

func (m *Metrics) sent() {
	if m != nil {
		m.MessagesSent.Inc()
	}
}

func (m *Metrics) received() {
	if m != nil {
		m.MessagesReceived.Inc()
	}
}

func (m *Metrics) dropped(reason string) {
	if m != nil {
		m.MessagesDropped.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) finished(err error) {
	if m == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = kindLabel(err)
	}
	m.SessionsTotal.WithLabelValues(outcome).Inc()
}
