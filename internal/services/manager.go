// Package services composes normalization, validation and persistence into
// the lifecycle operations exposed by the API.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/authz"
	"github.com/otcheredev/remedium-hms/internal/metrics"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/otcheredev/remedium-hms/internal/query"
	"github.com/otcheredev/remedium-hms/internal/validation"
	"github.com/rs/zerolog/log"
)

// Store is the persistence a Manager writes through.
type Store[T any] interface {
	Create(ctx context.Context, e *T) error
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, id uuid.UUID, e *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, p query.Params, filters ...query.Filter) (*query.Page[T], error)
}

// AuditSink records lifecycle writes.
type AuditSink interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// Deps are the collaborators shared by every Manager.
type Deps struct {
	Lookup  validation.Lookup
	Audit   AuditSink
	Metrics *metrics.Metrics
	Clock   func() time.Time
}

func (d Deps) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now().UTC()
}

// Config describes one entity's pipeline stages.
type Config[T any] struct {
	Entity    string
	Normalize func(*T)
	Rules     []validation.Rule[T]
	// Defaults fills unset fields on create, before normalization.
	Defaults func(e *T, now time.Time)
	// Blank returns the starting value a create request is decoded onto.
	Blank func() *T
}

// Patch mutates a working copy of the stored entity.
type Patch[T any] func(e *T) error

// Manager runs normalize, validate, persist for one entity type.
type Manager[T any, P interface {
	*T
	models.Entity
}] struct {
	cfg   Config[T]
	store Store[T]
	deps  Deps
}

// NewManager creates a Manager.
func NewManager[T any, P interface {
	*T
	models.Entity
}](cfg Config[T], store Store[T], deps Deps) *Manager[T, P] {
	return &Manager[T, P]{cfg: cfg, store: store, deps: deps}
}

// Entity names the managed type.
func (m *Manager[T, P]) Entity() string {
	return m.cfg.Entity
}

// New returns a blank entity for a create request to fill.
func (m *Manager[T, P]) New() *T {
	if m.cfg.Blank != nil {
		return m.cfg.Blank()
	}
	return new(T)
}

// Create normalizes, validates and inserts e. Nothing is written when
// validation fails.
func (m *Manager[T, P]) Create(ctx context.Context, e *T) (*T, error) {
	start := time.Now()
	now := m.deps.now()

	*P(e).Meta() = models.Model{}
	if m.cfg.Defaults != nil {
		m.cfg.Defaults(e, now)
	}

	if err := m.check(ctx, e, nil, now); err != nil {
		m.record(ctx, "create", "", start, err)
		return nil, err
	}
	if err := m.store.Create(ctx, e); err != nil {
		m.record(ctx, "create", "", start, err)
		return nil, err
	}

	m.derive(e, now)
	m.record(ctx, "create", P(e).Meta().ID.String(), start, nil)
	return e, nil
}

// Update applies patch to a copy of the stored entity, then normalizes,
// validates and writes the result. Identity and creation time cannot be
// patched.
func (m *Manager[T, P]) Update(ctx context.Context, id uuid.UUID, patch Patch[T]) (*T, error) {
	start := time.Now()
	now := m.deps.now()

	orig, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	candidate, err := clone(orig)
	if err != nil {
		return nil, err
	}
	if err := patch(candidate); err != nil {
		m.record(ctx, "update", id.String(), start, err)
		return nil, err
	}
	meta := *P(orig).Meta()
	*P(candidate).Meta() = meta

	if err := m.check(ctx, candidate, orig, now); err != nil {
		m.record(ctx, "update", id.String(), start, err)
		return nil, err
	}
	if err := m.store.Update(ctx, id, candidate); err != nil {
		m.record(ctx, "update", id.String(), start, err)
		return nil, err
	}

	m.derive(candidate, now)
	m.record(ctx, "update", id.String(), start, nil)
	return candidate, nil
}

// Delete removes the entity, cascading to owned rows.
func (m *Manager[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := m.store.Delete(ctx, id)
	m.record(ctx, "delete", id.String(), start, err)
	return err
}

// Get loads one entity.
func (m *Manager[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	e, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.derive(e, m.deps.now())
	return e, nil
}

// List returns one page of entities.
func (m *Manager[T, P]) List(ctx context.Context, p query.Params, filters ...query.Filter) (*query.Page[T], error) {
	page, err := m.store.List(ctx, p, filters...)
	if err != nil {
		return nil, err
	}
	now := m.deps.now()
	for i := range page.Items {
		m.derive(&page.Items[i], now)
	}
	return page, nil
}

func (m *Manager[T, P]) check(ctx context.Context, e, orig *T, now time.Time) error {
	if m.cfg.Normalize != nil {
		m.cfg.Normalize(e)
	}

	vc := &validation.Context{Ctx: ctx, Now: now, Lookup: m.deps.Lookup}
	if orig != nil {
		vc.Original = orig
	}
	errs, err := validation.Validate(vc, e, m.cfg.Rules)
	if err != nil {
		return err
	}
	for _, field := range errs.Fields().Fields() {
		m.deps.Metrics.ObserveValidationFailure(m.cfg.Entity, field)
	}
	return errs.Err(m.cfg.Entity)
}

func (m *Manager[T, P]) derive(e *T, now time.Time) {
	if d, ok := any(e).(models.Deriver); ok {
		d.Derive(now)
	}
}

// record emits metrics and an audit row for one write.
func (m *Manager[T, P]) record(ctx context.Context, action, resourceID string, start time.Time, opErr error) {
	status := outcome(opErr)
	m.deps.Metrics.ObserveOperation(m.cfg.Entity, action, status)

	entry := &models.AuditLog{
		Action:       action,
		ResourceType: m.cfg.Entity,
		ResourceID:   resourceID,
		Status:       status,
		Duration:     time.Since(start).Milliseconds(),
	}
	if p := authz.PrincipalFrom(ctx); p != nil {
		uid := p.UserID
		entry.UserID = &uid
		entry.Username = p.Username
	}
	if opErr != nil {
		entry.ErrorMessage = opErr.Error()
	}

	switch status {
	case "failure":
		log.Error().Err(opErr).Str("entity", m.cfg.Entity).Str("action", action).Str("id", resourceID).Msg("Lifecycle operation failed")
	case "rejected":
		log.Debug().Err(opErr).Str("entity", m.cfg.Entity).Str("action", action).Msg("Lifecycle operation rejected")
	}

	if m.deps.Audit == nil {
		return
	}
	if err := m.deps.Audit.Create(context.WithoutCancel(ctx), entry); err != nil {
		log.Warn().Err(err).Str("entity", m.cfg.Entity).Str("action", action).Msg("Failed to write audit log")
	}
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var nf *apperr.NotFoundError
	if _, ok := apperr.FieldsOf(err); ok || errors.As(err, &nf) {
		return "rejected"
	}
	return "failure"
}

// clone deep-copies e through its JSON form so a patch never reaches the
// stored original through shared pointers.
func clone[T any](e *T) (*T, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to copy entity: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("failed to copy entity: %w", err)
	}
	return out, nil
}
