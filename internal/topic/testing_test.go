package topic_test

import (
	"context"
	"sync"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// fakeConfig is a fixed, in-memory topic.Config, the same
// "supply a fake without standing up viper" approach the config.go doc
// comment describes.
type fakeConfig struct {
	checkExists   bool
	maxPageSize   int
	bufferSize    int
	metricsOn     bool
	retryAttempts int
}

func (c fakeConfig) CheckTopicExists() bool    { return c.checkExists }
func (c fakeConfig) MaxPageSize() int          { return c.maxPageSize }
func (c fakeConfig) ListenerBufferSize() int   { return c.bufferSize }
func (c fakeConfig) MetricsEnabled() bool      { return c.metricsOn }
func (c fakeConfig) StorageRetryAttempts() int { return c.retryAttempts }

func defaultConfig() fakeConfig {
	return fakeConfig{checkExists: true, maxPageSize: 10, bufferSize: 16, metricsOn: false, retryAttempts: 3}
}

// fakeLookup is a fixed topic.EntityLookup: present reports a Topic entity
// for every id, absent reports none found.
type fakeLookup struct {
	present bool
	typ     topic.EntityType
}

func (l fakeLookup) Find(_ context.Context, id topic.EntityID) (*topic.Entity, error) {
	if !l.present {
		return nil, nil
	}
	typ := l.typ
	if typ == 0 {
		typ = topic.EntityTypeTopic
	}
	return &topic.Entity{ID: id, Type: typ}, nil
}

// scriptedPager serves canned pages in call order: one queue for the
// throttled primary drain, one for fast-path gap backfills. Once a queue
// is exhausted, further calls return an empty page, which the retriever
// reads as "historical retrieval complete".
type scriptedPager struct {
	mu        sync.Mutex
	primary   [][]topic.Message
	backfill  [][]topic.Message
	primaryAt int
	backfillI int
}

func (p *scriptedPager) Page(_ context.Context, _ topic.PageRequest, throttled bool) ([]topic.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if throttled {
		if p.primaryAt >= len(p.primary) {
			return nil, nil
		}
		page := p.primary[p.primaryAt]
		p.primaryAt++
		return page, nil
	}

	if p.backfillI >= len(p.backfill) {
		return nil, nil
	}
	page := p.backfill[p.backfillI]
	p.backfillI++
	return page, nil
}

// fakeLiveSubscription is a fixed topic.LiveSubscription over caller-owned
// channels.
type fakeLiveSubscription struct {
	messages chan topic.Message
	errs     chan error
}

func newFakeLiveSubscription() *fakeLiveSubscription {
	return &fakeLiveSubscription{
		messages: make(chan topic.Message, 64),
		errs:     make(chan error, 1),
	}
}

func (s *fakeLiveSubscription) Messages() <-chan topic.Message { return s.messages }
func (s *fakeLiveSubscription) Errors() <-chan error           { return s.errs }
func (s *fakeLiveSubscription) Unsubscribe()                   {}

// fakeBus always hands out the same subscription.
type fakeBus struct {
	sub *fakeLiveSubscription
}

func (b *fakeBus) Subscribe(topic.Filter) topic.LiveSubscription { return b.sub }
func (b *fakeBus) Connected() bool                               { return true }

// noopMetrics discards every call.
type noopMetrics struct{}

func (noopMetrics) IncResponses(string)            {}
func (noopMetrics) IncErrors(string, topic.Code)   {}
func (noopMetrics) ObserveDuration(string, float64) {}
func (noopMetrics) ObserveLatency(string, float64)  {}

// collectSink gathers every delivered message in order.
type collectSink struct {
	mu       sync.Mutex
	messages []topic.Message
}

func (s *collectSink) Send(m topic.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return nil
}

func (s *collectSink) sequence() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.messages))
	for i, m := range s.messages {
		out[i] = m.SequenceNumber
	}
	return out
}

func msg(seq uint64, ts int64) topic.Message {
	return topic.Message{TopicID: 100, SequenceNumber: seq, ConsensusTimestamp: ts, Message: []byte("m")}
}
