package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds consumer and producer collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	processed *prometheus.CounterVec
	failed    *prometheus.CounterVec
	duplicate *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	published *prometheus.CounterVec
	pubErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_consumer_messages_processed_total",
			Help: "Total number of successfully processed Kafka messages",
		}, []string{"topic", "consumer_group"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_consumer_messages_failed_total",
			Help: "Total number of Kafka messages dropped after exhausting retries or failing to decode",
		}, []string{"topic", "consumer_group"}),
		duplicate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_consumer_messages_duplicate_total",
			Help: "Total number of duplicate Kafka messages skipped",
		}, []string{"topic", "consumer_group"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kafka_consumer_processing_duration_seconds",
			Help:    "Duration of Kafka message processing in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"topic", "consumer_group"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_producer_messages_published_total",
			Help: "Total number of Kafka messages published",
		}, []string{"topic"}),
		pubErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_producer_publish_errors_total",
			Help: "Total number of Kafka publish errors",
		}, []string{"topic"}),
	}
	for _, c := range []prometheus.Collector{m.processed, m.failed, m.duplicate, m.duration, m.published, m.pubErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeProcessed(topic, group string, seconds float64) {
	if m == nil {
		return
	}
	m.processed.WithLabelValues(topic, group).Inc()
	m.duration.WithLabelValues(topic, group).Observe(seconds)
}

func (m *Metrics) incFailed(topic, group string) {
	if m != nil {
		m.failed.WithLabelValues(topic, group).Inc()
	}
}

func (m *Metrics) incDuplicate(topic, group string) {
	if m != nil {
		m.duplicate.WithLabelValues(topic, group).Inc()
	}
}

func (m *Metrics) observePublish(topic string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.pubErrors.WithLabelValues(topic).Inc()
		return
	}
	m.published.WithLabelValues(topic).Inc()
}
