package authz

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/cache"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryGroupStore keeps groups and grants in maps.
type memoryGroupStore struct {
	catalogue map[string]models.Permission
	groups    map[string]*models.Group
	grants    map[string][]string
	nextID    uint
}

func newMemoryGroupStore() *memoryGroupStore {
	s := &memoryGroupStore{
		catalogue: map[string]models.Permission{},
		groups:    map[string]*models.Group{},
		grants:    map[string][]string{},
	}
	for i, p := range Catalogue() {
		p.ID = uint(i + 1)
		s.catalogue[p.Codename] = p
	}
	return s
}

func (s *memoryGroupStore) EnsureGroup(_ context.Context, name string) (*models.Group, bool, error) {
	if g, ok := s.groups[name]; ok {
		return g, false, nil
	}
	s.nextID++
	g := &models.Group{ID: s.nextID, Name: name}
	s.groups[name] = g
	return g, true, nil
}

func (s *memoryGroupStore) PermissionsByCodename(_ context.Context, codenames []string) (map[string]models.Permission, error) {
	out := map[string]models.Permission{}
	for _, c := range codenames {
		if p, ok := s.catalogue[c]; ok {
			out[c] = p
		}
	}
	return out, nil
}

func (s *memoryGroupStore) ReplaceGroupPermissions(_ context.Context, g *models.Group, perms []models.Permission) error {
	codes := make([]string, 0, len(perms))
	for _, p := range perms {
		codes = append(codes, p.Codename)
	}
	sort.Strings(codes)
	s.grants[g.Name] = codes
	return nil
}

func (s *memoryGroupStore) snapshot() map[string][]string {
	out := make(map[string][]string, len(s.grants))
	for k, v := range s.grants {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func TestCatalogue(t *testing.T) {
	perms := Catalogue()
	assert.Len(t, perms, len(Resources)*4)

	seen := map[string]bool{}
	for _, p := range perms {
		assert.False(t, seen[p.Codename], "duplicate %s", p.Codename)
		seen[p.Codename] = true
		resource, action, ok := SplitCodename(p.Codename)
		require.True(t, ok)
		assert.Equal(t, p.Resource, resource)
		assert.Equal(t, p.Action, action)
	}
	assert.True(t, seen["appointments.view"])
}

func TestPlanMergesAndSorts(t *testing.T) {
	cmds := Plan([]Role{
		{Name: "Nurse", Permissions: []string{"patients.view", "care.add", "patients.view"}},
		{Name: "Clerk", Permissions: nil},
		{Name: "Nurse", Permissions: []string{"care.view"}},
	})
	require.Len(t, cmds, 2)
	assert.Equal(t, Command{Group: "Nurse", Permissions: []string{"care.add", "care.view", "patients.view"}}, cmds[0])
	assert.Equal(t, "Clerk", cmds[1].Group)
	assert.Empty(t, cmds[1].Permissions)
}

func TestApplyDefaultRoles(t *testing.T) {
	store := newMemoryGroupStore()
	results, err := Apply(context.Background(), store, Plan(DefaultRoles))
	require.NoError(t, err)
	require.Len(t, results, len(DefaultRoles))

	for _, r := range results {
		assert.True(t, r.Created)
		assert.Empty(t, r.Skipped, "group %s", r.Group)
	}
	assert.Len(t, store.grants["Admin"], len(Catalogue()))
	assert.Contains(t, store.grants["Doctor"], "appointments.add")
	assert.NotContains(t, store.grants["Nurse"], "appointments.add")
	assert.Equal(t, []string{"labtests.change", "labtests.view", "patients.view"}, store.grants["Lab Technician"])
}

func TestApplyIsConvergent(t *testing.T) {
	ctx := context.Background()
	store := newMemoryGroupStore()

	_, err := Apply(ctx, store, Plan(DefaultRoles))
	require.NoError(t, err)
	first := store.snapshot()

	results, err := Apply(ctx, store, Plan(DefaultRoles))
	require.NoError(t, err)
	assert.Equal(t, first, store.snapshot())
	for _, r := range results {
		assert.False(t, r.Created)
	}
}

func TestApplyReplacesInsteadOfMerging(t *testing.T) {
	ctx := context.Background()
	store := newMemoryGroupStore()

	_, err := Apply(ctx, store, []Command{{Group: "Clerk", Permissions: []string{"invoices.view", "invoices.change"}}})
	require.NoError(t, err)
	_, err = Apply(ctx, store, []Command{{Group: "Clerk", Permissions: []string{"invoices.view"}}})
	require.NoError(t, err)

	assert.Equal(t, []string{"invoices.view"}, store.grants["Clerk"])
}

func TestApplySkipsUnknownPermissions(t *testing.T) {
	store := newMemoryGroupStore()
	results, err := Apply(context.Background(), store, []Command{
		{Group: "Porter", Permissions: []string{"patients.view", "stretchers.move"}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"patients.view"}, results[0].Granted)
	assert.Equal(t, []string{"stretchers.move"}, results[0].Skipped)
	assert.Equal(t, []string{"patients.view"}, store.grants["Porter"])
}

type fakeUsers struct {
	users map[uuid.UUID]*models.User
	perms map[uuid.UUID][]string
	calls int
}

func (f *fakeUsers) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.calls++
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user", id)
	}
	return u, nil
}

func (f *fakeUsers) UserPermissions(_ context.Context, id uuid.UUID) ([]string, error) {
	return f.perms[id], nil
}

func TestAuthorizerCheck(t *testing.T) {
	clerk := uuid.New()
	root := uuid.New()
	gone := uuid.New()
	disabled := uuid.New()
	users := &fakeUsers{
		users: map[uuid.UUID]*models.User{
			clerk:    {ID: clerk, Username: "clerk", IsActive: true},
			root:     {ID: root, Username: "root", IsActive: true, IsSuperuser: true},
			disabled: {ID: disabled, Username: "old", IsActive: false},
		},
		perms: map[uuid.UUID][]string{clerk: {"patients.view", "invoices.view"}},
	}
	mc := cache.NewMemoryCache(time.Minute)
	defer mc.Close()
	a := NewAuthorizer(users, mc, time.Minute)
	ctx := context.Background()

	assert.NoError(t, a.Check(ctx, &models.Principal{UserID: clerk}, "invoices.view"))
	assert.ErrorIs(t, a.Check(ctx, &models.Principal{UserID: clerk}, "appointments.view"), apperr.ErrPermissionDenied)
	assert.NoError(t, a.Check(ctx, &models.Principal{UserID: root}, "appointments.delete"))
	assert.ErrorIs(t, a.Check(ctx, nil, "patients.view"), apperr.ErrAuthenticationRequired)
	assert.ErrorIs(t, a.Check(ctx, &models.Principal{UserID: gone}, "patients.view"), apperr.ErrAuthenticationRequired)
	assert.ErrorIs(t, a.Check(ctx, &models.Principal{UserID: disabled}, "patients.view"), apperr.ErrAuthenticationRequired)

	ok, err := a.HasPermission(ctx, clerk, "appointments.view")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorizerCachesUntilInvalidated(t *testing.T) {
	clerk := uuid.New()
	users := &fakeUsers{
		users: map[uuid.UUID]*models.User{clerk: {ID: clerk, IsActive: true}},
		perms: map[uuid.UUID][]string{clerk: {"patients.view"}},
	}
	mc := cache.NewMemoryCache(time.Minute)
	defer mc.Close()
	a := NewAuthorizer(users, mc, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, a.Check(ctx, &models.Principal{UserID: clerk}, "patients.view"))
	}
	assert.Equal(t, 1, users.calls)

	users.perms[clerk] = []string{"patients.view", "appointments.view"}
	require.NoError(t, a.InvalidateAll(ctx))
	assert.NoError(t, a.Check(ctx, &models.Principal{UserID: clerk}, "appointments.view"))
	assert.Equal(t, 2, users.calls)
}

func TestRevokedGrantReachesServerThroughRedis(t *testing.T) {
	clerk := uuid.New()
	users := &fakeUsers{
		users: map[uuid.UUID]*models.User{clerk: {ID: clerk, IsActive: true}},
		perms: map[uuid.UUID][]string{clerk: {"invoices.view", "patients.view"}},
	}
	mr := miniredis.RunT(t)
	serverCache, err := cache.NewRedisCache(mr.Addr(), "", 0)
	require.NoError(t, err)
	defer serverCache.Close()
	cliCache, err := cache.NewRedisCache(mr.Addr(), "", 0)
	require.NoError(t, err)
	defer cliCache.Close()

	server := NewAuthorizer(users, serverCache, time.Hour)
	cli := NewAuthorizer(users, cliCache, time.Hour)
	assert.True(t, cli.SharedCache())
	ctx := context.Background()
	p := &models.Principal{UserID: clerk}

	require.NoError(t, server.Check(ctx, p, "invoices.view"))
	users.perms[clerk] = []string{"patients.view"}
	assert.NoError(t, server.Check(ctx, p, "invoices.view"), "grant set is served from cache")

	require.NoError(t, cli.InvalidateAll(ctx))
	assert.ErrorIs(t, server.Check(ctx, p, "invoices.view"), apperr.ErrPermissionDenied)
	assert.NoError(t, server.Check(ctx, p, "patients.view"))
}

func TestLocalCacheBoundsStaleness(t *testing.T) {
	clerk := uuid.New()
	users := &fakeUsers{
		users: map[uuid.UUID]*models.User{clerk: {ID: clerk, IsActive: true}},
		perms: map[uuid.UUID][]string{clerk: {"invoices.view"}},
	}
	serverCache := cache.NewMemoryCache(time.Minute)
	defer serverCache.Close()
	cliCache := cache.NewMemoryCache(time.Minute)
	defer cliCache.Close()

	capped := NewAuthorizer(users, serverCache, time.Hour)
	assert.Equal(t, LocalCacheTTL, capped.ttl)
	assert.False(t, capped.SharedCache())
	assert.Equal(t, LocalCacheTTL, NewAuthorizer(users, serverCache, 0).ttl)

	server := NewAuthorizer(users, serverCache, 20*time.Millisecond)
	cli := NewAuthorizer(users, cliCache, time.Hour)
	ctx := context.Background()
	p := &models.Principal{UserID: clerk}

	require.NoError(t, server.Check(ctx, p, "invoices.view"))
	users.perms[clerk] = nil
	require.NoError(t, cli.InvalidateAll(ctx))
	assert.NoError(t, server.Check(ctx, p, "invoices.view"), "another process cannot clear this cache")

	time.Sleep(50 * time.Millisecond)
	assert.ErrorIs(t, server.Check(ctx, p, "invoices.view"), apperr.ErrPermissionDenied)
}
