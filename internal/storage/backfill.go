package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// backfillReader serves the gap-backfill fast path over sqlx's
// named-query support rather than gorm, so a single targeted read for a
// tight, already-known-size window never pays gorm's statement-building
// overhead or waits behind the historical drain's rate limiter.
type backfillReader struct {
	db *sqlx.DB
}

func newBackfillReader(db *sqlx.DB) *backfillReader {
	return &backfillReader{db: db}
}

type backfillParams struct {
	TopicID int64 `db:"topic_id"`
	After   int64 `db:"after"`
	Before  int64 `db:"before"`
	Limit   int   `db:"limit"`
}

const backfillQuery = `
	SELECT topic_id, sequence_number, consensus_timestamp, message, running_hash, running_hash_version
	FROM topic_message
	WHERE topic_id = :topic_id
	  AND consensus_timestamp >= :after
	  AND consensus_timestamp < :before
	ORDER BY consensus_timestamp ASC
	LIMIT :limit
`

func (b *backfillReader) page(ctx context.Context, req topic.PageRequest) ([]topic.Message, error) {
	before := req.Before.Int64
	if !req.Before.Valid {
		return nil, errors.New("backfill window must have a bounded end time")
	}

	stmt, err := b.db.PrepareNamedContext(ctx, backfillQuery)
	if err != nil {
		return nil, classify(errors.Wrap(err, "prepare backfill query"))
	}
	defer stmt.Close()

	var rows []topicMessageRow
	err = stmt.SelectContext(ctx, &rows, backfillParams{
		TopicID: int64(req.TopicID),
		After:   req.After,
		Before:  before,
		Limit:   req.Limit,
	})
	if err != nil {
		return nil, classify(errors.Wrap(err, "execute backfill query"))
	}

	out := make([]topic.Message, len(rows))
	for i, r := range rows {
		out[i] = r.toMessage()
	}
	return out, nil
}
