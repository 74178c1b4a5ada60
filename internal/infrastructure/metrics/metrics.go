package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the journey service
type Metrics struct {
	// Journey transition metrics
	TransitionsTotal   *prometheus.CounterVec
	TransitionErrors   *prometheus.CounterVec
	TransitionDuration prometheus.Histogram
	CurrentWeek        prometheus.Gauge

	// Content publication metrics
	BeersPublished    *prometheus.CounterVec
	PublishErrors     prometheus.Counter
	PublishedCacheHit *prometheus.CounterVec

	// Newsletter metrics
	EmailsDispatched *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec

	// Approval metrics
	ApprovalsReviewed *prometheus.CounterVec

	// Kafka metrics
	KafkaMessagesProduced *prometheus.CounterVec
	KafkaProduceErrors    *prometheus.CounterVec
	KafkaCommandsConsumed *prometheus.CounterVec
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics()
	})
	return DefaultMetrics
}

// NewMetrics creates a new Metrics instance registered with the default registry
func NewMetrics() *Metrics {
	return &Metrics{
		TransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journey_service_transitions_total",
				Help: "Weekly transition runs by outcome",
			},
			[]string{"outcome"},
		),
		TransitionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journey_service_transition_errors_total",
				Help: "Weekly transition failures by error code",
			},
			[]string{"code"},
		),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "journey_service_transition_duration_seconds",
			Help:    "Duration of weekly transition runs in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		CurrentWeek: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "journey_service_current_week",
			Help: "Week number of the current state, 0 when none",
		}),

		BeersPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journey_service_beers_published_total",
				Help: "Beer reviews made visible, by trigger",
			},
			[]string{"trigger"},
		),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "journey_service_publish_errors_total",
			Help: "Failed publish attempts",
		}),
		PublishedCacheHit: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journey_service_published_cache_lookups_total",
				Help: "Published-beer cache lookups by result",
			},
			[]string{"result"},
		),

		EmailsDispatched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journey_service_emails_dispatched_total",
				Help: "Newsletter emails by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		DispatchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "journey_service_dispatch_duration_seconds",
				Help:    "Duration of newsletter dispatch runs in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"kind"},
		),

		ApprovalsReviewed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journey_service_approvals_reviewed_total",
				Help: "Content approvals by content type and decision",
			},
			[]string{"content_type", "status"},
		),

		KafkaMessagesProduced: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journey_service_kafka_messages_produced_total",
				Help: "Kafka events produced by topic",
			},
			[]string{"topic"},
		),
		KafkaProduceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journey_service_kafka_produce_errors_total",
				Help: "Kafka produce failures by topic",
			},
			[]string{"topic"},
		),
		KafkaCommandsConsumed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journey_service_kafka_commands_consumed_total",
				Help: "Kafka commands consumed by type and outcome",
			},
			[]string{"command", "outcome"},
		),
	}
}

// RecordTransition records a finished transition run
func (m *Metrics) RecordTransition(outcome string, durationSeconds float64) {
	m.TransitionsTotal.WithLabelValues(outcome).Inc()
	m.TransitionDuration.Observe(durationSeconds)
}

// RecordTransitionError records a failed transition run
func (m *Metrics) RecordTransitionError(code string) {
	if code == "" {
		code = "unknown"
	}
	m.TransitionErrors.WithLabelValues(code).Inc()
}

// SetCurrentWeek updates the current week gauge
func (m *Metrics) SetCurrentWeek(week int) {
	m.CurrentWeek.Set(float64(week))
}

// RecordPublished records newly published beer reviews
func (m *Metrics) RecordPublished(trigger string, count int) {
	if count > 0 {
		m.BeersPublished.WithLabelValues(trigger).Add(float64(count))
	}
}

// RecordPublishError records a failed publish attempt
func (m *Metrics) RecordPublishError() {
	m.PublishErrors.Inc()
}

// RecordCacheLookup records a published-beer cache hit or miss
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.PublishedCacheHit.WithLabelValues(result).Inc()
}

// RecordDispatch records the outcome counts of a newsletter dispatch run
func (m *Metrics) RecordDispatch(kind string, successful, failed int, durationSeconds float64) {
	if successful > 0 {
		m.EmailsDispatched.WithLabelValues(kind, "sent").Add(float64(successful))
	}
	if failed > 0 {
		m.EmailsDispatched.WithLabelValues(kind, "failed").Add(float64(failed))
	}
	m.DispatchDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordApproval records an approval decision
func (m *Metrics) RecordApproval(contentType, status string) {
	m.ApprovalsReviewed.WithLabelValues(contentType, status).Inc()
}

// RecordKafkaMessage records a produced Kafka event
func (m *Metrics) RecordKafkaMessage(topic string) {
	m.KafkaMessagesProduced.WithLabelValues(topic).Inc()
}

// RecordKafkaError records a failed Kafka produce
func (m *Metrics) RecordKafkaError(topic string) {
	m.KafkaProduceErrors.WithLabelValues(topic).Inc()
}

// RecordCommand records a consumed Kafka command
func (m *Metrics) RecordCommand(command string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.KafkaCommandsConsumed.WithLabelValues(command, outcome).Inc()
}
