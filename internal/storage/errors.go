// Package storage adapts the topic package's EntityLookup, MessagePager,
// and LiveBus ports onto concrete infrastructure: Postgres via gorm for the
// paged historical reads and entity lookups, a narrower sqlx-driven query
// for the fast backfill path, and lib/pq LISTEN/NOTIFY for the live bus.
package storage

import (
	"errors"

	"github.com/jackc/pgconn"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// transientPgCodes are the Postgres SQLSTATE classes worth retrying:
// connection failures, serialization/deadlock conflicts under concurrent
// load, and the pooler telling us to back off. Anything else — a bad
// query, a missing relation, a constraint violation — is a programmer
// error or schema drift and must fail fast as StorageFatal.
var transientPgCodes = map[string]bool{
	"08000": true, // connection_exception
	"08003": true, // connection_does_not_exist
	"08006": true, // connection_failure
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"53300": true, // too_many_connections
	"57P03": true, // cannot_connect_now
}

// classify wraps err as a topic.TransientStorageError when it looks
// recoverable, leaving everything else alone so the caller surfaces it as
// StorageFatal / Internal.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && transientPgCodes[pgErr.Code] {
		return &topic.TransientStorageError{Err: err}
	}
	return err
}
