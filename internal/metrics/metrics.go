package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	MessagesIngested     *prometheus.CounterVec
	ValidationFailures   prometheus.Counter
	DuplicateInbound     prometheus.Counter
	ConversationsCreated prometheus.Counter
	IngestDuration       prometheus.Histogram
	TotalConversations   prometheus.Gauge
	TotalMessages        prometheus.Gauge
}

// NewMetrics creates new Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesIngested: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "unified_messaging_messages_ingested_total",
			Help: "Total number of messages persisted, by provider type and direction",
		}, []string{"provider_type", "direction"}),
		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "unified_messaging_validation_failures_total",
			Help: "Total number of send/webhook requests rejected by validation",
		}),
		DuplicateInbound: promauto.NewCounter(prometheus.CounterOpts{
			Name: "unified_messaging_duplicate_inbound_total",
			Help: "Total number of retried webhook deliveries absorbed by the idempotency key",
		}),
		ConversationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "unified_messaging_conversations_created_total",
			Help: "Total number of conversations created on first contact",
		}),
		IngestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "unified_messaging_ingest_duration_seconds",
			Help:    "Time spent ingesting a message",
			Buckets: prometheus.DefBuckets,
		}),
		TotalConversations: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "unified_messaging_conversations",
			Help: "Number of conversations in the store",
		}),
		TotalMessages: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "unified_messaging_messages",
			Help: "Number of messages in the store",
		}),
	}
}
