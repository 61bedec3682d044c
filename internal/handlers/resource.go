package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/authz"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/otcheredev/remedium-hms/internal/query"
	"github.com/otcheredev/remedium-hms/internal/services"
)

const maxBodyBytes = 1 << 20

// Guard wraps a handler with the check for one permission.
type Guard func(resource, action string) func(http.Handler) http.Handler

// Resource serves list, detail, create, update and delete for one entity.
type Resource[T any, P interface {
	*T
	models.Entity
}] struct {
	mgr *services.Manager[T, P]
}

// NewResource creates a Resource over mgr.
func NewResource[T any, P interface {
	*T
	models.Entity
}](mgr *services.Manager[T, P]) *Resource[T, P] {
	return &Resource[T, P]{mgr: mgr}
}

// Mount registers the CRUD routes on r, each behind its permission.
func (h *Resource[T, P]) Mount(r chi.Router, resource string, guard Guard) {
	r.With(guard(resource, authz.ActionView)).Get("/", h.List)
	r.With(guard(resource, authz.ActionAdd)).Post("/", h.Create)
	r.With(guard(resource, authz.ActionView)).Get("/{id}", h.Get)
	r.With(guard(resource, authz.ActionChange)).Put("/{id}", h.Update)
	r.With(guard(resource, authz.ActionChange)).Patch("/{id}", h.Update)
	r.With(guard(resource, authz.ActionDelete)).Delete("/{id}", h.Delete)
}

func (h *Resource[T, P]) List(w http.ResponseWriter, r *http.Request) {
	listWith(h.mgr.List)(w, r)
}

func (h *Resource[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.mgr.Entity())
	if !ok {
		return
	}
	e, err := h.mgr.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Resource[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	e := h.mgr.New()
	raw, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := decodeOnto(raw, e); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.mgr.Create(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update decodes the body over a copy of the stored entity, so absent
// fields keep their stored values.
func (h *Resource[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.mgr.Entity())
	if !ok {
		return
	}
	raw, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.mgr.Update(r.Context(), id, func(e *T) error {
		return decodeOnto(raw, e)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Resource[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.mgr.Entity())
	if !ok {
		return
	}
	if err := h.mgr.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listWith serves a paginated list produced by fn.
func listWith[T any](fn func(context.Context, query.Params, ...query.Filter) (*query.Page[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.ParseParams(r.URL.Query())
		if err != nil {
			writeError(w, r, err)
			return
		}
		page, err := fn(r.Context(), p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// pathID parses the {id} route parameter. A malformed id names no entity.
func pathID(w http.ResponseWriter, r *http.Request, entity string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, r, &apperr.NotFoundError{Entity: entity, ID: raw})
		return uuid.Nil, false
	}
	return id, true
}

func readBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, &errBadBody{err: err}
	}
	return raw, nil
}

func decodeOnto(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &errBadBody{err: err}
	}
	return nil
}
