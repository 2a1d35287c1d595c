package topic

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/logging"
)

// Sink is what a subscription delivers validated, ordered messages to. The
// gRPC layer's implementation wraps grpc.ServerStream.Send; tests use an
// in-memory slice collector. Returning an error from Send is how a slow or
// disconnected subscriber's backpressure/cancellation propagates back
// upstream into the engine.
type Sink interface {
	Send(Message) error
}

// errLimitReached is an internal control-flow sentinel used to unwind out
// of a gap backfill early when the subscriber's limit is satisfied
// mid-reconciliation; it is never returned from Subscribe.
var errLimitReached = errors.New("limit reached")

// Engine is the streaming topic-message subscription engine. One Engine
// instance is process-lifetime and serves arbitrarily many
// concurrent Subscribe calls; all per-subscription state lives on the
// stack of the goroutine running Subscribe, never on the Engine itself,
// so no locking is required between subscriptions.
type Engine struct {
	lookup  EntityLookup
	pager   MessagePager
	bus     LiveBus
	metrics MetricRegistry
	cfg     Config
}

// NewEngine wires the four external ports and configuration into a
// ready-to-use Engine.
func NewEngine(lookup EntityLookup, pager MessagePager, bus LiveBus, metrics MetricRegistry, cfg Config) *Engine {
	return &Engine{lookup: lookup, pager: pager, bus: bus, metrics: metrics, cfg: cfg}
}

// subscriptionState is the per-subscription cursor and bookkeeping that
// both the historical and live phases of run share: last_emitted, the
// delivery governor, and the gap backfiller. It exists so one message
// handler (handleMessage) serves both phases identically, regardless of
// whether a message came from the historical drain or the live
// subscription; backfilled messages are delivered through emit.
type subscriptionState struct {
	filter  Filter
	last    Cursor
	primed  bool
	gov     *governor
	gb      *gapBackfiller
	metrics *subscriptionMetrics
	emit    func(Message) error
}

// Subscribe runs one subscription to completion: validate, verify topic
// existence, open the live listener, drain historical storage, merge and
// dedup the two, detect and backfill gaps, and deliver everything to sink
// in strictly ascending sequence order until a termination condition
// or error fires. It blocks until the subscription terminates.
func (e *Engine) Subscribe(ctx context.Context, filter Filter, sink Sink) error {
	if filter.SubscriberID == uuid.Nil {
		filter.SubscriberID = uuid.New()
	}
	subscriberID := filter.SubscriberID.String()

	if err := Validate(filter); err != nil {
		return err
	}
	if err := verifyTopic(ctx, e.lookup, e.cfg, filter.TopicID); err != nil {
		return err
	}

	logging.Infow("topic subscription opened",
		"topicId", filter.TopicID, "subscriberId", subscriberID,
		"startTime", filter.StartTime, "endTime", filter.EndTime, "limit", filter.Limit)

	// Open the live listener before historical retrieval begins,
	// so nothing committed during the historical drain is missed.
	live := e.bus.Subscribe(filter)
	defer live.Unsubscribe()

	st := &subscriptionState{
		filter:  filter,
		gov:     newGovernor(filter),
		gb:      newGapBackfiller(newRetriever(e.pager, e.cfg)),
		metrics: newSubscriptionMetrics(e.metrics, e.cfg.MetricsEnabled(), subscriberID),
	}
	st.emit = func(msg Message) error {
		if err := sink.Send(msg); err != nil {
			return ResourceExhausted("subscriber backpressure overflow: " + err.Error())
		}
		st.gov.recordDelivery()
		st.metrics.onDelivered(msg.ConsensusTimestamp)
		st.last = cursorOf(msg)
		return nil
	}

	terminal := e.runHistorical(ctx, st, live)
	switch {
	case terminal == nil:
		terminal = e.runLive(ctx, st, live)
	case errors.Is(terminal, errHistoricalComplete):
		terminal = nil
	}

	st.metrics.onTerminated(CodeOf(terminal))
	logging.Infow("topic subscription closed",
		"topicId", filter.TopicID, "subscriberId", subscriberID,
		"delivered", st.gov.delivered.Load(), "result", CodeOf(terminal).String())

	return terminal
}

// runHistorical drains the finite historical retriever to completion
// before the live phase ever begins. Draining it to exhaustion first,
// rather than merging it with the live channel, is what lets the
// retriever's terminal error be read without racing the delivery of its
// last buffered message (a message received out of historicalCh is not
// necessarily delivered to the subscriber yet if the two were merged into
// one channel). It returns nil to mean "proceed to the live phase",
// non-nil to mean "subscription is over".
func (e *Engine) runHistorical(ctx context.Context, st *subscriptionState, live LiveSubscription) error {
	historicalCh := make(chan Message, 1)
	histErrCh := make(chan error, 1)
	go func() {
		r := newRetriever(e.pager, e.cfg)
		histErrCh <- r.retrieve(ctx, st.filter, true, historicalCh)
	}()

	for {
		select {
		case <-ctx.Done():
			drain(historicalCh)
			<-histErrCh
			return Cancelled()

		case err, ok := <-live.Errors():
			if ok && err != nil {
				drain(historicalCh)
				<-histErrCh
				return err
			}

		case msg, ok := <-historicalCh:
			if !ok {
				// The retriever has closed its output; its terminal error
				// (nil on success) is guaranteed to already be in flight.
				if err := <-histErrCh; err != nil {
					return err
				}
				if st.filter.EndTime.Valid && st.filter.EndTime.Int64 <= nowFn().UnixNano() {
					// Consensus timestamps are globally monotonic with
					// commit order: once the end bound is already in the
					// past, historical retrieval has by definition
					// captured every message that will ever exist below
					// it, so there is nothing left for the live stream to
					// contribute.
					return errHistoricalComplete
				}
				return nil
			}

			if terminal, done := handleMessage(ctx, st, msg); done {
				drain(historicalCh)
				<-histErrCh
				return terminal
			}
		}
	}
}

// errHistoricalComplete is a private sentinel meaning "subscription is
// over, successfully, without ever needing the live phase"; it is
// translated to a nil error before crossing back out of Subscribe.
var errHistoricalComplete = errors.New("historical retrieval satisfied the subscription")

// runLive services the unbounded live stream until a terminal condition
// fires. By the time this runs, the historical phase has been fully
// drained and its messages delivered in order.
func (e *Engine) runLive(ctx context.Context, st *subscriptionState, live LiveSubscription) error {
	for {
		select {
		case <-ctx.Done():
			return Cancelled()

		case err, ok := <-live.Errors():
			if ok && err != nil {
				return err
			}

		case msg, ok := <-live.Messages():
			if !ok {
				return nil
			}
			if terminal, done := handleMessage(ctx, st, msg); done {
				return terminal
			}
		}
	}
}

// handleMessage applies dedup, gap backfill, and termination checks to a
// single observed message, identically whether it came from the
// historical drain or the live stream. done reports whether the
// subscription must stop now; terminal is nil for a clean stop.
func handleMessage(ctx context.Context, st *subscriptionState, msg Message) (terminal error, done bool) {
	if st.gov.excludesByEndTime(msg.ConsensusTimestamp) {
		return nil, true
	}

	if !st.primed {
		// The first message observed in a subscription has no prior
		// cursor to compare against: there is nothing to dedup and
		// nothing to backfill, regardless of where its sequence number
		// happens to fall (a subscription may start mid-topic via
		// start_time).
		st.primed = true
		if err := st.emit(msg); err != nil {
			return err, true
		}
		return nil, st.gov.limitReached()
	}

	delta := int64(msg.SequenceNumber) - int64(st.last.Sequence)
	switch {
	case delta <= 0:
		// Duplicate or out-of-order retransmit; drop silently and keep
		// going.
		return nil, false

	case delta == 1:
		if err := st.emit(msg); err != nil {
			return err, true
		}

	default:
		newLast, err := st.gb.backfill(ctx, st.filter.TopicID, st.last, msg, func(bfMsg Message) error {
			if err := st.emit(bfMsg); err != nil {
				return err
			}
			if st.gov.limitReached() {
				return errLimitReached
			}
			return nil
		})
		st.last = newLast
		if err != nil {
			if errors.Is(err, errLimitReached) {
				return nil, true
			}
			return err, true
		}
		if err := st.emit(msg); err != nil {
			return err, true
		}
	}

	return nil, st.gov.limitReached()
}

