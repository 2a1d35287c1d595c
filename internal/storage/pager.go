package storage

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/store/memory"
	"gorm.io/gorm"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// topicMessageRow is the gorm scan target for a single row of the
// topic_message table: raw SQL rather than a gorm model with hooks, since
// this table is append-only and read through hand-written SQL throughout.
type topicMessageRow struct {
	TopicID            int64  `gorm:"column:topic_id" db:"topic_id"`
	SequenceNumber     int64  `gorm:"column:sequence_number" db:"sequence_number"`
	ConsensusTimestamp int64  `gorm:"column:consensus_timestamp" db:"consensus_timestamp"`
	Message            []byte `gorm:"column:message" db:"message"`
	RunningHash        []byte `gorm:"column:running_hash" db:"running_hash"`
	RunningHashVersion int32  `gorm:"column:running_hash_version" db:"running_hash_version"`
}

func (r topicMessageRow) toMessage() topic.Message {
	return topic.Message{
		TopicID:            topic.EntityID(r.TopicID),
		SequenceNumber:     uint64(r.SequenceNumber),
		ConsensusTimestamp: r.ConsensusTimestamp,
		Message:            r.Message,
		RunningHash:        r.RunningHash,
		RunningHashVersion: r.RunningHashVersion,
	}
}

// Pager is the gorm-backed topic.MessagePager. It applies a token-bucket
// rate limit (via ulule/limiter, in-memory store) to the throttled primary
// historical drain only; on-demand gap backfills (throttled=false) bypass
// both the limiter and gorm, going through the sqlx fast path in
// backfill.go instead's "fast path" requirement.
type Pager struct {
	db       *gorm.DB
	backfill *backfillReader
	limiter  *limiter.Limiter
}

// NewPager builds a Pager rate-limited to maxPagesPerSecond pages/sec for
// throttled reads, backed by the given gorm and sqlx handles to the same
// database.
func NewPager(db *gorm.DB, sqlxDB *sqlx.DB, maxPagesPerSecond int64) *Pager {
	rate := limiter.Rate{Period: time.Second, Limit: maxPagesPerSecond}
	return &Pager{
		db:       db,
		backfill: newBackfillReader(sqlxDB),
		limiter:  limiter.New(memory.NewStore(), rate),
	}
}

// Page implements topic.MessagePager: a single windowed SELECT
// ordered ascending by consensus_timestamp, limited to req.Limit rows.
func (p *Pager) Page(ctx context.Context, req topic.PageRequest, throttled bool) ([]topic.Message, error) {
	if !throttled {
		return p.backfill.page(ctx, req)
	}

	lctx, err := p.limiter.Get(ctx, "historical-pager")
	if err != nil {
		return nil, classify(errors.Wrap(err, "rate limiter"))
	}
	if lctx.Reached {
		time.Sleep(time.Until(time.Unix(0, lctx.Reset*int64(time.Second))))
	}

	stmt := `
		SELECT topic_id, sequence_number, consensus_timestamp, message, running_hash, running_hash_version
		FROM topic_message
		WHERE topic_id = ?
		  AND consensus_timestamp >= ?
	`
	args := []interface{}{int64(req.TopicID), req.After}
	if req.Before.Valid {
		stmt += " AND consensus_timestamp < ?"
		args = append(args, req.Before.Int64)
	}
	stmt += " ORDER BY consensus_timestamp ASC LIMIT ?"
	args = append(args, req.Limit)

	var rows []topicMessageRow
	if err := p.db.WithContext(ctx).Raw(stmt, args...).Scan(&rows).Error; err != nil {
		return nil, classify(errors.Wrap(err, "page topic_message"))
	}

	out := make([]topic.Message, len(rows))
	for i, r := range rows {
		out[i] = r.toMessage()
	}
	return out, nil
}
