// Package metrics is the prometheus-backed topic.MetricRegistry,
// plus a robfig/cron-scheduled periodic status reporter that logs a
// summary line on a fixed cadence rather than requiring an operator to
// scrape Prometheus to see that the process is alive.
package metrics

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/logging"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// Registry implements topic.MetricRegistry over a set of labeled
// prometheus collectors, one per subscriber id.
type Registry struct {
	responses *prometheus.CounterVec
	errors    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	latency   *prometheus.HistogramVec
}

// NewRegistry builds and registers the subscription metrics against reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topicsub",
			Name:      "responses_total",
			Help:      "Number of messages delivered per subscriber.",
		}, []string{"subscriber_id"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topicsub",
			Name:      "errors_total",
			Help:      "Number of subscriptions terminated with a given status code.",
		}, []string{"subscriber_id", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "topicsub",
			Name:      "subscription_duration_seconds",
			Help:      "Wall-clock lifetime of a subscription.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"subscriber_id"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "topicsub",
			Name:      "delivery_latency_seconds",
			Help:      "Time between a message's consensus timestamp and delivery to a subscriber.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"subscriber_id"}),
	}

	reg.MustRegister(r.responses, r.errors, r.duration, r.latency)
	return r
}

// IncResponses implements topic.MetricRegistry.
func (r *Registry) IncResponses(subscriberID string) {
	r.responses.WithLabelValues(subscriberID).Inc()
}

// IncErrors implements topic.MetricRegistry.
func (r *Registry) IncErrors(subscriberID string, code topic.Code) {
	r.errors.WithLabelValues(subscriberID, code.String()).Inc()
}

// ObserveDuration implements topic.MetricRegistry.
func (r *Registry) ObserveDuration(subscriberID string, seconds float64) {
	r.duration.WithLabelValues(subscriberID).Observe(seconds)
}

// ObserveLatency implements topic.MetricRegistry.
func (r *Registry) ObserveLatency(subscriberID string, seconds float64) {
	r.latency.WithLabelValues(subscriberID).Observe(seconds)
}

// StatusReporter logs a periodic summary of total responses and errors
// delivered across all subscribers, on a robfig/cron schedule, without
// depending on an HTTP scrape ever having happened.
type StatusReporter struct {
	cron *cron.Cron
	reg  *Registry
}

// NewStatusReporter builds a reporter that has not yet started; call Start.
func NewStatusReporter(reg *Registry) *StatusReporter {
	return &StatusReporter{cron: cron.New(), reg: reg}
}

// Start schedules the summary log on spec, a standard 5-field cron
// expression, or a "@every 30s"-style descriptor for sub-minute cadences.
func (s *StatusReporter) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.logSummary)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron scheduler, waiting for any in-flight run to finish.
func (s *StatusReporter) Stop() {
	<-s.cron.Stop().Done()
}

func (s *StatusReporter) logSummary() {
	responses := sumCounterVec(s.reg.responses)
	errs := sumCounterVec(s.reg.errors)
	logging.Infow("topic subscription engine status", "totalResponses", responses, "totalErrors", errs)
}

// sumCounterVec collects every label combination currently tracked by vec
// and sums their values, the standard way to read a CounterVec back out of
// process without going through an HTTP scrape.
func sumCounterVec(vec *prometheus.CounterVec) float64 {
	ch := make(chan prometheus.Metric, 64)
	go func() {
		vec.Collect(ch)
		close(ch)
	}()

	var total float64
	var m dto.Metric
	for metric := range ch {
		if err := metric.Write(&m); err != nil {
			continue
		}
		total += m.GetCounter().GetValue()
	}
	return total
}
