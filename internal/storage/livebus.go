package storage

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/tevino/abool"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/logging"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// notifyChannel is the Postgres NOTIFY channel the ingestion pathway
// publishes newly-committed topic messages on; this package only
// consumes it.
const notifyChannel = "topic_message_inserted"

// notifyPayload is the JSON body of a single NOTIFY, one per committed row.
// It carries the full message so subscribers never need a round-trip back
// to storage just to render what they were told about.
type notifyPayload struct {
	TopicID            int64  `json:"topic_id"`
	SequenceNumber     int64  `json:"sequence_number"`
	ConsensusTimestamp int64  `json:"consensus_timestamp"`
	Message            []byte `json:"message"`
	RunningHash        []byte `json:"running_hash"`
	RunningHashVersion int32  `json:"running_hash_version"`
}

// LiveBus is the single process-wide topic.LiveBus: one pq.Listener
// fanning out to a concurrent map of per-subscriber registrations, keyed
// by subscriber id.
type LiveBus struct {
	listener  *pq.Listener
	connected *abool.AtomicBool

	mu   sync.RWMutex
	subs map[string]*liveSubscription

	bufferSize int
}

// NewLiveBus dials conninfo and starts fanning out NOTIFYs from
// notifyChannel until Close is called.
func NewLiveBus(conninfo string, bufferSize int) (*LiveBus, error) {
	b := &LiveBus{
		connected:  abool.New(),
		subs:       make(map[string]*liveSubscription),
		bufferSize: bufferSize,
	}

	reportProblem := func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected, pq.ListenerEventReconnected:
			b.connected.Set()
		case pq.ListenerEventDisconnected, pq.ListenerEventConnectionAttemptFailed:
			b.connected.UnSet()
			if err != nil {
				logging.Warnw("live bus: listener connection problem", "err", err)
			}
		}
	}

	listener := pq.NewListener(conninfo, 10*time.Second, time.Minute, reportProblem)
	if err := listener.Listen(notifyChannel); err != nil {
		return nil, err
	}

	b.listener = listener
	go b.fanOut()

	return b, nil
}

// Close stops the listener and every active subscription's channel.
func (b *LiveBus) Close() error {
	b.mu.Lock()
	for id, sub := range b.subs {
		close(sub.messages)
		delete(b.subs, id)
	}
	b.mu.Unlock()
	return b.listener.Close()
}

// Connected implements topic.LiveBus.
func (b *LiveBus) Connected() bool { return b.connected.IsSet() }

// Subscribe implements topic.LiveBus. Registration is O(1): a single
// map write guarded by a mutex, race-free with the fan-out goroutine's
// reads.
func (b *LiveBus) Subscribe(filter topic.Filter) topic.LiveSubscription {
	sub := &liveSubscription{
		bus:       b,
		id:        filter.SubscriberID.String(),
		topicID:   filter.TopicID,
		startTime: filter.StartTime,
		messages:  make(chan topic.Message, b.bufferSize),
		errs:      make(chan error, 1),
	}

	b.mu.Lock()
	b.subs[sub.id] = sub
	b.mu.Unlock()

	return sub
}

func (b *LiveBus) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[id]; ok {
		close(sub.messages)
		delete(b.subs, id)
	}
}

// fanOut is the single reader of the underlying pq.Listener notification
// channel; it never blocks on a slow subscriber — a full per-subscriber
// buffer is reported as BackpressureOverflow rather than stalling every
// other subscription sharing this bus.
func (b *LiveBus) fanOut() {
	for n := range b.listener.Notify {
		if n == nil {
			continue // reconnect notification with no payload
		}

		var payload notifyPayload
		if err := json.Unmarshal([]byte(n.Extra), &payload); err != nil {
			logging.Errorw("live bus: malformed NOTIFY payload", "err", err)
			continue
		}

		msg := topic.Message{
			TopicID:            topic.EntityID(payload.TopicID),
			SequenceNumber:     uint64(payload.SequenceNumber),
			ConsensusTimestamp: payload.ConsensusTimestamp,
			Message:            payload.Message,
			RunningHash:        payload.RunningHash,
			RunningHashVersion: payload.RunningHashVersion,
		}

		b.deliver(msg)
	}
}

func (b *LiveBus) deliver(msg topic.Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if sub.topicID != msg.TopicID || msg.ConsensusTimestamp < sub.startTime {
			continue
		}
		select {
		case sub.messages <- msg:
		default:
			select {
			case sub.errs <- topic.ResourceExhausted("live listener buffer full"):
			default:
			}
		}
	}
}

// liveSubscription implements topic.LiveSubscription.
type liveSubscription struct {
	bus       *LiveBus
	id        string
	topicID   topic.EntityID
	startTime int64
	messages  chan topic.Message
	errs      chan error
}

func (s *liveSubscription) Messages() <-chan topic.Message { return s.messages }
func (s *liveSubscription) Errors() <-chan error           { return s.errs }
func (s *liveSubscription) Unsubscribe()                   { s.bus.unsubscribe(s.id) }
