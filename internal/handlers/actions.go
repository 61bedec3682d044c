package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/query"
	"github.com/otcheredev/remedium-hms/internal/services"
)

// listAction serves a filtered list that takes no extra filters.
func listAction[T any](fn func(context.Context, query.Params) (*query.Page[T], error)) http.HandlerFunc {
	return listWith(func(ctx context.Context, p query.Params, _ ...query.Filter) (*query.Page[T], error) {
		return fn(ctx, p)
	})
}

// itemAction serves a state change on one entity.
func itemAction[T any](entity string, fn func(context.Context, uuid.UUID) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, entity)
		if !ok {
			return
		}
		e, err := fn(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func staffByDepartment(svc *services.StaffService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		p, err := query.ParseParams(q)
		if err != nil {
			writeError(w, r, err)
			return
		}
		page, err := svc.ByDepartment(r.Context(), q.Get("department"), p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func reportDownload(svc *services.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "report")
		if !ok {
			return
		}
		name, data, err := svc.Download(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
