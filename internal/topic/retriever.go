package topic

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
)

// retriever pages a MessagePager in ascending consensus-timestamp windows
// of at most cfg.MaxPageSize() rows, advancing the cursor to
// last.ConsensusTimestamp+1 after every full page, and terminating once a
// short page is seen. It never retries a page forever: a transient storage
// error gets cfg.StorageRetryAttempts() bounded attempts with exponential
// backoff before surfacing Unavailable; a fatal storage error (anything
// not marked transient) surfaces Internal immediately.
type retriever struct {
	pager MessagePager
	cfg   Config
}

func newRetriever(pager MessagePager, cfg Config) *retriever {
	return &retriever{pager: pager, cfg: cfg}
}

// retrieve streams every historical message matching filter into out, in
// ascending order, then closes out. throttled selects the rate-limited
// primary drain path versus the fast backfill path; the distinction
// is surfaced to the pager so it can apply (or skip) its own rate-limit
// headroom — the engine itself does not rate-limit, it only labels the
// call.
func (r *retriever) retrieve(ctx context.Context, filter Filter, throttled bool, out chan<- Message) error {
	defer close(out)

	cursor := filter.StartTime
	for {
		req := PageRequest{
			TopicID: filter.TopicID,
			After:   cursor,
			Before:  filter.EndTime,
			Limit:   r.cfg.MaxPageSize(),
		}

		page, err := r.fetchWithRetry(ctx, req, throttled)
		if err != nil {
			return err
		}

		for _, msg := range page {
			select {
			case out <- msg:
			case <-ctx.Done():
				return Cancelled()
			}
		}

		if len(page) < r.cfg.MaxPageSize() {
			return nil
		}
		cursor = page[len(page)-1].ConsensusTimestamp + 1
	}
}

func (r *retriever) fetchWithRetry(ctx context.Context, req PageRequest, throttled bool) ([]Message, error) {
	attempts := r.cfg.StorageRetryAttempts()
	if attempts < 1 {
		attempts = 1
	}

	b := &backoff.Backoff{
		Min:    50 * time.Millisecond,
		Max:    2 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		page, err := r.pager.Page(ctx, req, throttled)
		if err == nil {
			return page, nil
		}
		if !IsTransientStorageError(err) {
			return nil, Internal(err, "historical retriever: fatal storage error")
		}
		lastErr = err

		select {
		case <-time.After(b.Duration()):
		case <-ctx.Done():
			return nil, Cancelled()
		}
	}
	return nil, Unavailable(lastErr, "historical retriever: exhausted retry budget")
}
