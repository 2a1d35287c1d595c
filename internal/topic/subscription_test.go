package topic_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

func newEngine(cfg fakeConfig, lookup fakeLookup, pager *scriptedPager, bus *fakeBus) *topic.Engine {
	return topic.NewEngine(lookup, pager, bus, noopMetrics{}, cfg)
}

// Scenario 1: historical only, past end_time — storage empty, stream
// completes with zero messages.
func TestSubscribe_HistoricalOnlyPastEndTime(t *testing.T) {
	cfg := defaultConfig()
	pager := &scriptedPager{primary: [][]topic.Message{{}}}
	bus := &fakeBus{sub: newFakeLiveSubscription()}
	engine := newEngine(cfg, fakeLookup{present: true}, pager, bus)

	sink := &collectSink{}
	filter := topic.Filter{TopicID: 100, StartTime: 0, EndTime: topic.NewEndTime(1)}

	err := engine.Subscribe(context.Background(), filter, sink)

	require.NoError(t, err)
	assert.Empty(t, sink.sequence())
}

// Scenario 2: historical three, no end — subscriber receives 1,2,3 and
// the subscription remains open until cancelled.
func TestSubscribe_HistoricalThreeNoEnd(t *testing.T) {
	cfg := defaultConfig()
	pager := &scriptedPager{primary: [][]topic.Message{
		{msg(1, 10), msg(2, 20), msg(3, 30)},
	}}
	bus := &fakeBus{sub: newFakeLiveSubscription()}
	engine := newEngine(cfg, fakeLookup{present: true}, pager, bus)

	sink := &collectSink{}
	filter := topic.Filter{TopicID: 100, StartTime: 0}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- engine.Subscribe(ctx, filter, sink) }()

	require.Eventually(t, func() bool { return len(sink.sequence()) == 3 }, time.Second, time.Millisecond)
	cancel()

	err := <-done
	assert.Equal(t, topic.CodeCancelled, topic.CodeOf(err))
	assert.Equal(t, []uint64{1, 2, 3}, sink.sequence())
}

// Scenario 3: historical paged — max_page_size=1, end_time excludes the
// fourth message; subscriber receives 1,2,3 then completes.
func TestSubscribe_HistoricalPaged(t *testing.T) {
	cfg := defaultConfig()
	cfg.maxPageSize = 1
	pager := &scriptedPager{primary: [][]topic.Message{
		{msg(1, 10)},
		{msg(2, 20)},
		{msg(3, 30)},
		{},
	}}
	bus := &fakeBus{sub: newFakeLiveSubscription()}
	engine := newEngine(cfg, fakeLookup{present: true}, pager, bus)

	sink := &collectSink{}
	filter := topic.Filter{TopicID: 100, StartTime: 0, EndTime: topic.NewEndTime(40)}

	err := engine.Subscribe(context.Background(), filter, sink)

	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, sink.sequence())
}

// Scenario 4: dedup at seam — retriever returns [1,1,2,1], listener
// empty; subscriber receives [1,2] then completes.
func TestSubscribe_DedupAtSeam(t *testing.T) {
	cfg := defaultConfig()
	pager := &scriptedPager{primary: [][]topic.Message{
		{msg(1, 10), msg(1, 10), msg(2, 20), msg(1, 10)},
	}}
	live := newFakeLiveSubscription()
	close(live.messages)
	bus := &fakeBus{sub: live}
	engine := newEngine(cfg, fakeLookup{present: true}, pager, bus)

	sink := &collectSink{}
	filter := topic.Filter{TopicID: 100, StartTime: 0, EndTime: topic.NewEndTime(25)}

	err := engine.Subscribe(context.Background(), filter, sink)

	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, sink.sequence())
}

// Scenario 5: live gap backfill — listener emits [1,4] with nothing in
// between; the engine backfills [2,3] and delivers all four in order.
func TestSubscribe_LiveGapBackfill(t *testing.T) {
	cfg := defaultConfig()
	pager := &scriptedPager{
		primary:  [][]topic.Message{{}},
		backfill: [][]topic.Message{{msg(2, 20), msg(3, 30)}},
	}
	live := newFakeLiveSubscription()
	live.messages <- msg(1, 10)
	live.messages <- msg(4, 40)
	close(live.messages)
	bus := &fakeBus{sub: live}
	engine := newEngine(cfg, fakeLookup{present: true}, pager, bus)

	sink := &collectSink{}
	filter := topic.Filter{TopicID: 100, StartTime: 0}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := engine.Subscribe(ctx, filter, sink)

	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4}, sink.sequence())
}

// Scenario 6: unreconciled gap — listener emits [1,2,3,4] then [8,9,10]
// after a gap; backfill only reconciles [5,6] (missing 7), so the
// subscriber receives [1..6] then INTERNAL.
func TestSubscribe_UnreconciledGap(t *testing.T) {
	cfg := defaultConfig()
	pager := &scriptedPager{
		primary:  [][]topic.Message{{}},
		backfill: [][]topic.Message{{msg(5, 50), msg(6, 60)}},
	}
	live := newFakeLiveSubscription()
	live.messages <- msg(1, 10)
	live.messages <- msg(2, 20)
	live.messages <- msg(3, 30)
	live.messages <- msg(4, 40)
	live.messages <- msg(8, 80)
	live.messages <- msg(9, 90)
	live.messages <- msg(10, 100)
	bus := &fakeBus{sub: live}
	engine := newEngine(cfg, fakeLookup{present: true}, pager, bus)

	sink := &collectSink{}
	filter := topic.Filter{TopicID: 100, StartTime: 0}

	err := engine.Subscribe(context.Background(), filter, sink)

	require.Error(t, err)
	assert.Equal(t, topic.CodeInternal, topic.CodeOf(err))
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, sink.sequence())
}

// Scenario 7: unknown topic, existence checks on — NOT_FOUND.
func TestSubscribe_UnknownTopicChecksOn(t *testing.T) {
	cfg := defaultConfig()
	pager := &scriptedPager{}
	bus := &fakeBus{sub: newFakeLiveSubscription()}
	engine := newEngine(cfg, fakeLookup{present: false}, pager, bus)

	sink := &collectSink{}
	filter := topic.Filter{TopicID: 999, StartTime: 0}

	err := engine.Subscribe(context.Background(), filter, sink)

	require.Error(t, err)
	assert.Equal(t, topic.CodeNotFound, topic.CodeOf(err))
}

// Scenario 8: unknown topic, existence checks off — stream opens with no
// events and terminates only by cancel.
func TestSubscribe_UnknownTopicChecksOff(t *testing.T) {
	cfg := defaultConfig()
	cfg.checkExists = false
	pager := &scriptedPager{primary: [][]topic.Message{{}}}
	bus := &fakeBus{sub: newFakeLiveSubscription()}
	engine := newEngine(cfg, fakeLookup{present: false}, pager, bus)

	sink := &collectSink{}
	filter := topic.Filter{TopicID: 999, StartTime: 0}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- engine.Subscribe(ctx, filter, sink) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	err := <-done
	assert.Equal(t, topic.CodeCancelled, topic.CodeOf(err))
	assert.Empty(t, sink.sequence())
}
