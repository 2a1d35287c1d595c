package topic

import "context"

//go:generate mockery --name EntityLookup --output ./mocks/ --case=underscore
//go:generate mockery --name MessagePager --output ./mocks/ --case=underscore
//go:generate mockery --name LiveBus --output ./mocks/ --case=underscore
//go:generate mockery --name LiveSubscription --output ./mocks/ --case=underscore
//go:generate mockery --name MetricRegistry --output ./mocks/ --case=underscore

// EntityLookup finds an entity by id. A nil, nil return means "no such
// entity".
type EntityLookup interface {
	Find(ctx context.Context, id EntityID) (*Entity, error)
}

// PageRequest is one windowed SELECT: consensus timestamp >= After,
// < Before (if Before.Valid), restricted to TopicID, ordered ascending,
// limited to Limit rows.
type PageRequest struct {
	TopicID EntityID
	After   int64
	Before  OptionalTimestamp
	Limit   int
}

// MessagePager is the historical storage port. A single call returns
// one page; the retriever drives pagination by re-invoking Page with an
// advanced cursor. Throttled distinguishes the primary historical drain
// (true, rate-limited) from an on-demand gap backfill (false, fast path).
type MessagePager interface {
	Page(ctx context.Context, req PageRequest, throttled bool) ([]Message, error)
}

// LiveBus is the process-wide broadcast port: one producer (the ingestion
// pathway, out of scope here), many consumers. Subscribe must be O(1) to
// register and Unsubscribe O(1) and race-free with concurrent publish.
type LiveBus interface {
	Subscribe(filter Filter) LiveSubscription
	// Connected reports whether the underlying transport (e.g. a Postgres
	// LISTEN channel) is currently up. The engine itself never calls this;
	// it is read by the process's HTTP readiness endpoint (cmd/topicsub)
	// so an orchestrator can detect a subscriber whose live feed is dead
	// even though its gRPC stream is still open.
	Connected() bool
}

// LiveSubscription is a single registration against the LiveBus. Messages
// delivers best-effort, in-order-once-observed messages for the
// subscription's topic; it may skip sequence numbers (a gap) or, at
// boundary conditions, repeat one. Unsubscribe must be safe to call more
// than once and must release the registration before returning.
type LiveSubscription interface {
	Messages() <-chan Message
	Errors() <-chan error
	Unsubscribe()
}

// MetricRegistry is the observational port. The engine must never
// let a metrics failure affect delivery; implementations should treat
// their own panics/errors as the caller's problem, not something a
// subscription should terminate for.
type MetricRegistry interface {
	IncResponses(subscriberID string)
	IncErrors(subscriberID string, code Code)
	ObserveDuration(subscriberID string, seconds float64)
	ObserveLatency(subscriberID string, seconds float64)
}
