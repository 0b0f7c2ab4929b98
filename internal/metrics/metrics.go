package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "line_webhook"

// Reply outcomes.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// EventsReceived counts inbound events by kind.
	EventsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_received_total",
		Help:      "Inbound webhook events by event kind.",
	}, []string{"kind"})

	// RepliesSent counts reply delivery attempts by result.
	RepliesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "replies_total",
		Help:      "Reply delivery attempts by result.",
	}, []string{"result"})

	// SignatureRejected counts requests refused before reaching the handler.
	SignatureRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signature_rejected_total",
		Help:      "Webhook requests rejected for a missing or invalid signature.",
	})
)
