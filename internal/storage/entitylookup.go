package storage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// EntityLookup is the gorm-backed topic.EntityLookup: raw SQL,
// RowsAffected == 0 treated as "not found" rather than an error.
type EntityLookup struct {
	db *gorm.DB
}

func NewEntityLookup(db *gorm.DB) *EntityLookup {
	return &EntityLookup{db: db}
}

type entityRow struct {
	ID   int64 `gorm:"column:id"`
	Type int32 `gorm:"column:type"`
}

// Find implements topic.EntityLookup.
func (l *EntityLookup) Find(ctx context.Context, id topic.EntityID) (*topic.Entity, error) {
	stmt := `SELECT id, type FROM entity WHERE id = ?;`

	row := entityRow{}
	result := l.db.WithContext(ctx).Raw(stmt, int64(id)).Scan(&row)
	if result.Error != nil {
		return nil, classify(errors.Wrap(result.Error, "lookup entity"))
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &topic.Entity{ID: topic.EntityID(row.ID), Type: topic.EntityType(row.Type)}, nil
}
