package topic

import (
	"context"

	"github.com/pkg/errors"
)

// backfillFilter is the pure function that, given the last message emitted
// and the one that revealed the gap, synthesizes the filter that should
// recover exactly the missing window.
func backfillFilter(topicID EntityID, last Cursor, current Message) Filter {
	return Filter{
		TopicID:   topicID,
		StartTime: last.Timestamp + 1,
		EndTime:   NewEndTime(current.ConsensusTimestamp),
		Limit:     current.SequenceNumber - last.Sequence - 1,
	}
}

// gapBackfiller reconciles a missing sequence-number window once a delta > 1
// has been observed between two consecutive messages. It
// calls the retriever with throttled=false and validates that the returned
// page is exactly the missing, strictly contiguous window, emitting each
// reconciled message through emit as it is validated so a partial,
// ultimately-unreconcilable backfill still delivers what it could account
// for (scenario 6) before the subscription fails.
type gapBackfiller struct {
	retriever *retriever
}

func newGapBackfiller(r *retriever) *gapBackfiller {
	return &gapBackfiller{retriever: r}
}

// backfill fetches and validates the window between last and current,
// invoking emit for every reconciled message in ascending order. It
// returns the new last cursor (which may be short of current.SequenceNumber
// if reconciliation failed) and a non-nil error if the gap could not be
// fully reconciled.
func (g *gapBackfiller) backfill(ctx context.Context, topicID EntityID, last Cursor, current Message, emit func(Message) error) (Cursor, error) {
	want := current.SequenceNumber - last.Sequence - 1
	filter := backfillFilter(topicID, last, current)

	pageCh := make(chan Message, want)
	errCh := make(chan error, 1)
	go func() {
		errCh <- g.retriever.retrieve(ctx, filter, false, pageCh)
	}()

	expected := last.Sequence + 1
	reconciled := last
	var got uint64
	for msg := range pageCh {
		got++
		if got > want || msg.SequenceNumber != expected {
			drain(pageCh)
			<-errCh
			return reconciled, Internal(ErrBackfillOrdering, "gap backfill")
		}
		if err := emit(msg); err != nil {
			drain(pageCh)
			<-errCh
			return reconciled, err
		}
		reconciled = cursorOf(msg)
		expected++
	}

	if err := <-errCh; err != nil {
		return reconciled, err
	}

	if got != want {
		return reconciled, Internal(
			errors.Wrapf(ErrGapUnreconciled, "expected %d messages, got %d", want, got),
			"gap backfill",
		)
	}

	return reconciled, nil
}

func drain(ch <-chan Message) {
	for range ch {
	}
}
