package authz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/cache"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/rs/zerolog/log"
)

// UserStore loads users and the permissions their groups grant.
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserPermissions(ctx context.Context, id uuid.UUID) ([]string, error)
}

// grantSet is the cached view of one user's access.
type grantSet struct {
	Active      bool     `json:"active"`
	Superuser   bool     `json:"superuser"`
	Permissions []string `json:"permissions"`
}

func (g grantSet) allows(permission string) bool {
	if g.Superuser {
		return true
	}
	_, found := slices.BinarySearch(g.Permissions, permission)
	return found
}

// Authorizer answers permission checks, caching each user's grant set.
type Authorizer struct {
	users UserStore
	cache cache.Cache
	ttl   time.Duration
}

// LocalCacheTTL caps how long a process-local cache holds a grant set.
// Invalidation cannot reach another process's memory, so a change made
// elsewhere is seen here once the entry expires.
const LocalCacheTTL = 30 * time.Second

// NewAuthorizer creates an Authorizer. A nil cache disables caching; a
// cache that is not shared keeps entries for at most LocalCacheTTL.
func NewAuthorizer(users UserStore, c cache.Cache, ttl time.Duration) *Authorizer {
	if c != nil && !cache.Shared(c) && (ttl <= 0 || ttl > LocalCacheTTL) {
		ttl = LocalCacheTTL
	}
	return &Authorizer{users: users, cache: c, ttl: ttl}
}

// SharedCache reports whether Invalidate and InvalidateAll reach every
// process using the same cache configuration.
func (a *Authorizer) SharedCache() bool {
	return a.cache != nil && cache.Shared(a.cache)
}

func permissionsKey(userID uuid.UUID) string {
	return cache.Key("perms", userID.String())
}

// Check returns nil when the principal holds permission,
// ErrAuthenticationRequired when there is no usable identity and
// ErrPermissionDenied otherwise.
func (a *Authorizer) Check(ctx context.Context, p *models.Principal, permission string) error {
	if p == nil || p.UserID == uuid.Nil {
		return apperr.ErrAuthenticationRequired
	}
	set, err := a.grants(ctx, p.UserID)
	if apperr.IsNotFound(err) {
		return apperr.ErrAuthenticationRequired
	}
	if err != nil {
		return err
	}
	if !set.Active {
		return apperr.ErrAuthenticationRequired
	}
	if !set.allows(permission) {
		return apperr.ErrPermissionDenied
	}
	return nil
}

// HasPermission reports whether the user holds permission.
func (a *Authorizer) HasPermission(ctx context.Context, userID uuid.UUID, permission string) (bool, error) {
	err := a.Check(ctx, &models.Principal{UserID: userID}, permission)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrPermissionDenied), errors.Is(err, apperr.ErrAuthenticationRequired):
		return false, nil
	default:
		return false, err
	}
}

func (a *Authorizer) grants(ctx context.Context, userID uuid.UUID) (grantSet, error) {
	var set grantSet
	key := permissionsKey(userID)
	if a.cache != nil {
		err := cache.GetJSON(ctx, a.cache, key, &set)
		if err == nil {
			return set, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Permission cache read failed")
		}
	}

	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return set, err
	}
	set.Active = user.IsActive
	set.Superuser = user.IsSuperuser
	if !user.IsSuperuser {
		perms, err := a.users.UserPermissions(ctx, userID)
		if err != nil {
			return set, fmt.Errorf("failed to resolve permissions: %w", err)
		}
		set.Permissions = slices.Clone(perms)
		slices.Sort(set.Permissions)
	}

	if a.cache != nil {
		if err := cache.SetJSON(ctx, a.cache, key, set, a.ttl); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Permission cache write failed")
		}
	}
	return set, nil
}

// Invalidate drops the cached grant set of one user.
func (a *Authorizer) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Delete(ctx, permissionsKey(userID))
}

// InvalidateAll drops every cached grant set, e.g. after provisioning.
func (a *Authorizer) InvalidateAll(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Clear(ctx, cache.Key("perms", "*"))
}
