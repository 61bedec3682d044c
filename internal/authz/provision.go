package authz

import (
	"context"
	"fmt"
	"sort"

	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/otcheredev/remedium-hms/pkg/logger"
)

// Command asks for Group to hold exactly Permissions.
type Command struct {
	Group       string
	Permissions []string
}

// Plan turns a role table into provisioning commands. It is pure: duplicate
// roles are merged, permissions are de-duplicated and sorted.
func Plan(roles []Role) []Command {
	merged := make(map[string]map[string]struct{})
	var order []string
	for _, role := range roles {
		set, ok := merged[role.Name]
		if !ok {
			set = make(map[string]struct{})
			merged[role.Name] = set
			order = append(order, role.Name)
		}
		for _, p := range role.Permissions {
			set[p] = struct{}{}
		}
	}

	cmds := make([]Command, 0, len(order))
	for _, name := range order {
		perms := make([]string, 0, len(merged[name]))
		for p := range merged[name] {
			perms = append(perms, p)
		}
		sort.Strings(perms)
		cmds = append(cmds, Command{Group: name, Permissions: perms})
	}
	return cmds
}

// GroupStore is the persistence Apply needs.
type GroupStore interface {
	EnsureGroup(ctx context.Context, name string) (*models.Group, bool, error)
	PermissionsByCodename(ctx context.Context, codenames []string) (map[string]models.Permission, error)
	ReplaceGroupPermissions(ctx context.Context, group *models.Group, perms []models.Permission) error
}

// GroupResult summarizes what Apply did to one group.
type GroupResult struct {
	Group   string
	Created bool
	Granted []string
	Skipped []string
}

// Apply executes cmds against store. Each group ends up with exactly the
// known permissions of its command; unknown identifiers are skipped with a
// warning.
func Apply(ctx context.Context, store GroupStore, cmds []Command) ([]GroupResult, error) {
	log := logger.WithComponent("provision")
	results := make([]GroupResult, 0, len(cmds))
	for _, cmd := range cmds {
		group, created, err := store.EnsureGroup(ctx, cmd.Group)
		if err != nil {
			return results, err
		}

		known, err := store.PermissionsByCodename(ctx, cmd.Permissions)
		if err != nil {
			return results, err
		}

		res := GroupResult{Group: cmd.Group, Created: created}
		perms := make([]models.Permission, 0, len(cmd.Permissions))
		for _, codename := range cmd.Permissions {
			p, ok := known[codename]
			if !ok {
				log.Warn().Str("group", cmd.Group).Str("permission", codename).Msg("Unknown permission skipped")
				res.Skipped = append(res.Skipped, codename)
				continue
			}
			perms = append(perms, p)
			res.Granted = append(res.Granted, codename)
		}

		if err := store.ReplaceGroupPermissions(ctx, group, perms); err != nil {
			return results, fmt.Errorf("failed to provision group %q: %w", cmd.Group, err)
		}
		log.Info().
			Str("group", cmd.Group).
			Bool("created", created).
			Int("granted", len(res.Granted)).
			Int("skipped", len(res.Skipped)).
			Msg("Group provisioned")
		results = append(results, res)
	}
	return results, nil
}
