package topic

import "time"

// subscriptionMetrics wraps a MetricRegistry for a single subscription's
// lifetime: it counts responses, observes per-message publish-to-receive
// latency, and observes the wall-clock duration of the subscription on
// termination. The engine must tolerate the registry doing nothing useful with
// these calls, so every method here is fire-and-forget.
type subscriptionMetrics struct {
	registry     MetricRegistry
	enabled      bool
	subscriberID string
	start        time.Time
}

func newSubscriptionMetrics(registry MetricRegistry, enabled bool, subscriberID string) *subscriptionMetrics {
	return &subscriptionMetrics{
		registry:     registry,
		enabled:      enabled,
		subscriberID: subscriberID,
		start:        nowFn(),
	}
}

func (m *subscriptionMetrics) onDelivered(consensusTimestamp int64) {
	if !m.enabled {
		return
	}
	m.registry.IncResponses(m.subscriberID)
	publishedAt := time.Unix(0, consensusTimestamp)
	m.registry.ObserveLatency(m.subscriberID, nowFn().Sub(publishedAt).Seconds())
}

func (m *subscriptionMetrics) onTerminated(code Code) {
	if !m.enabled {
		return
	}
	if code != CodeOK && code != CodeCancelled {
		m.registry.IncErrors(m.subscriberID, code)
	}
	m.registry.ObserveDuration(m.subscriberID, nowFn().Sub(m.start).Seconds())
}
