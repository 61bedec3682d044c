// Package repository persists domain entities through gorm.
package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tabler interface {
	TableName() string
}

// Repository is the gorm-backed store for one entity type.
type Repository[T any] struct {
	db     *gorm.DB
	entity string
	table  string
	spec   query.Spec
}

// New creates a repository for T. entity names T in errors.
func New[T any](db *gorm.DB, entity string, spec query.Spec) *Repository[T] {
	var zero T
	table := ""
	if t, ok := any(&zero).(tabler); ok {
		table = t.TableName()
	}
	return &Repository[T]{db: db, entity: entity, table: table, spec: spec}
}

// Create inserts e. Associations are never written through.
func (r *Repository[T]) Create(ctx context.Context, e *T) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
	return translateError(r.entity, "create", err)
}

// Get loads the row with id.
func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var e T
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(r.entity, id)
	}
	if err != nil {
		return nil, translateError(r.entity, "get", err)
	}
	return &e, nil
}

// Update writes every column of e.
func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, e *T) error {
	res := r.db.WithContext(ctx).
		Model(e).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Where("id = ?", id).
		Updates(e)
	if res.Error != nil {
		return translateError(r.entity, "update", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(r.entity, id)
	}
	return nil
}

// Delete removes the row with id together with its owned rows, nulling weak
// references to it, in one transaction.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dep := range ownership[r.table] {
			if err := dep.release(tx, id); err != nil {
				return translateError(r.entity, "delete", err)
			}
		}
		res := tx.Delete(new(T), "id = ?", id)
		if res.Error != nil {
			return translateError(r.entity, "delete", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(r.entity, id)
		}
		return nil
	})
}

// List returns one page of rows matching p and filters. A page past the
// last one is reported as not found.
func (r *Repository[T]) List(ctx context.Context, p query.Params, filters ...query.Filter) (*query.Page[T], error) {
	base := query.Apply(r.db.WithContext(ctx).Model(new(T)), r.spec, p, filters...).Session(&gorm.Session{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, translateError(r.entity, "count", err)
	}
	if p.Page > query.NumPages(count) {
		return nil, &apperr.NotFoundError{Entity: "page", ID: strconv.Itoa(p.Page)}
	}

	var items []T
	q := query.Order(base, r.spec, p, r.table+".id")
	if err := query.Paginate(q, p.Page).Find(&items).Error; err != nil {
		return nil, translateError(r.entity, "list", err)
	}
	return query.NewPage(items, count, p.Page), nil
}
