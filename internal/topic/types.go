// Package topic implements the streaming topic-message subscription engine:
// it merges a finite historical read from durable storage with an unbounded
// live feed, detects and backfills sequence-number gaps in the live feed,
// and enforces start/end/limit termination, all without duplicating or
// dropping a single message.
package topic

import (
	"github.com/google/uuid"
	null "gopkg.in/guregu/null.v4"
)

// EntityID is the opaque identifier of a consensus-ledger entity. Topics are
// entities of Type EntityTypeTopic.
type EntityID int64

// Message is an immutable record of a single message published to a topic.
// SequenceNumber is a gap-free, strictly ascending counter per topic
// starting at 1; ConsensusTimestamp is unique and strictly increasing with
// SequenceNumber for a given topic.
type Message struct {
	TopicID             EntityID
	SequenceNumber      uint64
	ConsensusTimestamp  int64
	Message             []byte
	RunningHash         []byte
	RunningHashVersion  int32
}

// Cursor is the (sequence, timestamp) pair the engine uses to decide what
// has already been emitted and where a backfill window should start.
type Cursor struct {
	Sequence  uint64
	Timestamp int64
}

// cursorOf extracts the Cursor of a delivered message.
func cursorOf(m Message) Cursor {
	return Cursor{Sequence: m.SequenceNumber, Timestamp: m.ConsensusTimestamp}
}

// Filter is the validated input to a subscription. EndTime.Valid == false
// means unbounded; Limit == 0 means unbounded.
type Filter struct {
	TopicID      EntityID
	StartTime    int64
	EndTime      OptionalTimestamp
	Limit        uint64
	SubscriberID uuid.UUID
}

// OptionalTimestamp uses the gopkg.in/guregu/null.v4 pattern for a field
// that is either a concrete value or genuinely absent, which a bare int64
// with a sentinel (0, -1, MaxInt64) cannot express safely given
// ConsensusTimestamp's full int64 range.
type OptionalTimestamp = null.Int

// NewEndTime builds a present OptionalTimestamp.
func NewEndTime(ts int64) OptionalTimestamp {
	return null.IntFrom(ts)
}

// EntityType distinguishes the handful of entity kinds the mirror node
// tracks; the subscription engine only cares whether an entity is a Topic.
type EntityType int32

const (
	EntityTypeUnknown EntityType = iota
	EntityTypeAccount
	EntityTypeTopic
	EntityTypeToken
	EntityTypeFile
	EntityTypeContract
	EntityTypeSchedule
)

// Entity is the minimal view of an entity the existence check needs.
type Entity struct {
	ID   EntityID
	Type EntityType
}
