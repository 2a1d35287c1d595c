package topic

import "go.uber.org/atomic"

// governor holds the pure, stateless-per-call completion predicates
// evaluated after each delivery. It holds no I/O; subscription.go calls it
// between every emitted message. delivered is an atomic counter; it is
// read by limitReached and by Subscribe's subscription-closed log line,
// both on the goroutine running Subscribe.
type governor struct {
	filter    Filter
	delivered atomic.Uint64
}

func newGovernor(filter Filter) *governor {
	return &governor{filter: filter}
}

// excludesByEndTime reports whether ts falls at or beyond the filter's
// exclusive end bound and must never be delivered (invariant 4).
func (g *governor) excludesByEndTime(ts int64) bool {
	return g.filter.EndTime.Valid && ts >= g.filter.EndTime.Int64
}

// recordDelivery bumps the delivered counter after a message is
// successfully sent to the subscriber.
func (g *governor) recordDelivery() {
	g.delivered.Inc()
}

// limitReached reports whether the subscription has delivered its full
// limit and must complete normally. limit == 0 means unbounded.
func (g *governor) limitReached() bool {
	return g.filter.Limit > 0 && g.delivered.Load() >= g.filter.Limit
}
