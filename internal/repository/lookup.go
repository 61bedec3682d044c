package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lookup answers validation existence queries against the database.
type Lookup struct {
	db *gorm.DB
}

// NewLookup creates a Lookup over db.
func NewLookup(db *gorm.DB) *Lookup {
	return &Lookup{db: db}
}

// Exists reports whether table holds a row matching every condition other
// than the row identified by exclude.
func (l *Lookup) Exists(ctx context.Context, table string, conds map[string]any, exclude uuid.UUID) (bool, error) {
	q := l.db.WithContext(ctx).Table(table).Where(conds)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to query %s: %w", table, err)
	}
	return n > 0, nil
}
