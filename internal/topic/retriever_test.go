package topic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRetrieverConfig struct {
	maxPageSize   int
	retryAttempts int
}

func (c fixedRetrieverConfig) CheckTopicExists() bool    { return true }
func (c fixedRetrieverConfig) MaxPageSize() int          { return c.maxPageSize }
func (c fixedRetrieverConfig) ListenerBufferSize() int   { return 1 }
func (c fixedRetrieverConfig) MetricsEnabled() bool      { return false }
func (c fixedRetrieverConfig) StorageRetryAttempts() int { return c.retryAttempts }

// scriptedRetrieverPager returns errs[i] (if non-nil) or pages[i] on the i-th
// call, repeating the final entry once exhausted.
type scriptedRetrieverPager struct {
	calls int
	pages [][]Message
	errs  []error
}

func (p *scriptedRetrieverPager) Page(context.Context, PageRequest, bool) ([]Message, error) {
	i := p.calls
	if i >= len(p.pages) {
		i = len(p.pages) - 1
	}
	p.calls++
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	return p.pages[i], err
}

func collectRetrieved(out <-chan Message) []Message {
	var got []Message
	for m := range out {
		got = append(got, m)
	}
	return got
}

func TestRetriever_SinglePageShortTerminates(t *testing.T) {
	pager := &scriptedRetrieverPager{pages: [][]Message{{msg(1, 10), msg(2, 20)}}}
	r := newRetriever(pager, fixedRetrieverConfig{maxPageSize: 10, retryAttempts: 1})

	out := make(chan Message, 10)
	err := r.retrieve(context.Background(), Filter{TopicID: 100}, true, out)

	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, sequencesOf(collectRetrieved(out)))
}

func TestRetriever_PagesUntilShortPage(t *testing.T) {
	pager := &scriptedRetrieverPager{pages: [][]Message{
		{msg(1, 10)},
		{msg(2, 20)},
		{},
	}}
	r := newRetriever(pager, fixedRetrieverConfig{maxPageSize: 1, retryAttempts: 1})

	out := make(chan Message, 10)
	err := r.retrieve(context.Background(), Filter{TopicID: 100}, true, out)

	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, sequencesOf(collectRetrieved(out)))
}

func TestRetriever_TransientErrorRetriesThenSucceeds(t *testing.T) {
	transient := &TransientStorageError{Err: errors.New("deadline exceeded")}
	pager := &scriptedRetrieverPager{
		pages: [][]Message{nil, nil, {}},
		errs:  []error{transient, transient, nil},
	}
	r := newRetriever(pager, fixedRetrieverConfig{maxPageSize: 10, retryAttempts: 3})

	out := make(chan Message, 10)
	err := r.retrieve(context.Background(), Filter{TopicID: 100}, true, out)

	require.NoError(t, err)
	assert.Equal(t, 3, pager.calls)
}

func TestRetriever_TransientErrorExhaustsBudget(t *testing.T) {
	transient := &TransientStorageError{Err: errors.New("deadline exceeded")}
	pager := &scriptedRetrieverPager{
		pages: [][]Message{nil, nil, nil},
		errs:  []error{transient, transient, transient},
	}
	r := newRetriever(pager, fixedRetrieverConfig{maxPageSize: 10, retryAttempts: 3})

	out := make(chan Message, 10)
	err := r.retrieve(context.Background(), Filter{TopicID: 100}, true, out)

	assert.Equal(t, CodeUnavailable, CodeOf(err))
	assert.Equal(t, 3, pager.calls)
}

func TestRetriever_FatalErrorSurfacesImmediately(t *testing.T) {
	pager := &scriptedRetrieverPager{
		pages: [][]Message{nil},
		errs:  []error{errors.New("syntax error in SQL")},
	}
	r := newRetriever(pager, fixedRetrieverConfig{maxPageSize: 10, retryAttempts: 5})

	out := make(chan Message, 10)
	err := r.retrieve(context.Background(), Filter{TopicID: 100}, true, out)

	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, 1, pager.calls)
}

func TestRetriever_ContextCancelledDuringDelivery(t *testing.T) {
	pager := &scriptedRetrieverPager{pages: [][]Message{{msg(1, 10), msg(2, 20)}}}
	r := newRetriever(pager, fixedRetrieverConfig{maxPageSize: 10, retryAttempts: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := make(chan Message)

	done := make(chan error, 1)
	go func() { done <- r.retrieve(ctx, Filter{TopicID: 100}, true, out) }()

	select {
	case err := <-done:
		assert.Equal(t, CodeCancelled, CodeOf(err))
	case <-time.After(time.Second):
		t.Fatal("retrieve did not observe context cancellation")
	}
}

func msg(seq uint64, ts int64) Message {
	return Message{TopicID: 100, SequenceNumber: seq, ConsensusTimestamp: ts, Message: []byte("m")}
}

func sequencesOf(msgs []Message) []uint64 {
	out := make([]uint64, len(msgs))
	for i, m := range msgs {
		out[i] = m.SequenceNumber
	}
	return out
}
