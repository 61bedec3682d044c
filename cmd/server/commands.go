package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/authz"
	"github.com/otcheredev/remedium-hms/internal/config"
	"github.com/otcheredev/remedium-hms/internal/database"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/otcheredev/remedium-hms/internal/repository"
	"github.com/otcheredev/remedium-hms/pkg/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the permission catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return err
			}

			ctx, cancel := withTimeout()
			defer cancel()
			catalogue := authz.Catalogue()
			if err := repository.NewRBACRepository(db).SeedPermissions(ctx, catalogue); err != nil {
				return err
			}
			log.Info().Int("permissions", len(catalogue)).Msg("Schema migrated and permissions seeded")
			return nil
		},
	}
}

func provisionRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision-roles",
		Short: "Create the default groups and set their permissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx, cancel := withTimeout()
			defer cancel()

			rbacRepo := repository.NewRBACRepository(db)
			results, err := authz.Apply(ctx, rbacRepo, authz.Plan(authz.DefaultRoles))
			if err != nil {
				return err
			}

			for _, res := range results {
				state := "updated"
				if res.Created {
					state = "created"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-8s granted=%d skipped=%d\n",
					res.Group, state, len(res.Granted), len(res.Skipped))
			}

			dropCachedGrants(ctx, cfg, rbacRepo, nil)
			return nil
		},
	}
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			superuser, _ := cmd.Flags().GetBool("superuser")
			if strings.TrimSpace(username) == "" {
				return fmt.Errorf("--username is required")
			}

			_, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx, cancel := withTimeout()
			defer cancel()

			user := &models.User{Username: strings.TrimSpace(username), IsActive: true, IsSuperuser: superuser}
			if err := repository.NewRBACRepository(db).CreateUser(ctx, user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
	createCmd.Flags().String("username", "", "Login name")
	createCmd.Flags().Bool("superuser", false, "Grant every permission")

	grantCmd := &cobra.Command{
		Use:   "grant",
		Short: "Add a user to a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			group, _ := cmd.Flags().GetString("group")
			if username == "" || group == "" {
				return fmt.Errorf("--username and --group are required")
			}

			cfg, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx, cancel := withTimeout()
			defer cancel()

			rbacRepo := repository.NewRBACRepository(db)
			user, err := rbacRepo.GetUserByUsername(ctx, username)
			if err != nil {
				return err
			}
			g, err := rbacRepo.GetGroup(ctx, group)
			if err != nil {
				return err
			}
			if err := rbacRepo.AddUserToGroup(ctx, user, g); err != nil {
				return err
			}

			dropCachedGrants(ctx, cfg, rbacRepo, &user.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", user.Username, g.Name)
			return nil
		},
	}
	grantCmd.Flags().String("username", "", "Login name")
	grantCmd.Flags().String("group", "", "Group name")

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			if username == "" {
				return fmt.Errorf("--username is required")
			}

			cfg, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx, cancel := withTimeout()
			defer cancel()

			user, err := repository.NewRBACRepository(db).GetUserByUsername(ctx, username)
			if err != nil {
				return err
			}
			if !user.IsActive {
				return fmt.Errorf("user %s is inactive", user.Username)
			}
			token, err := authz.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL).Issue(user)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	tokenCmd.Flags().String("username", "", "Login name")

	cmd.AddCommand(createCmd, grantCmd, tokenCmd)
	return cmd
}

// dropCachedGrants clears cached permission sets after a grant change, for
// one user or for everyone when userID is nil. A memory cache belongs to
// each server process and cannot be cleared from here.
func dropCachedGrants(ctx context.Context, cfg *config.Config, users authz.UserStore, userID *uuid.UUID) {
	clog := logger.WithComponent("cli")
	if !cfg.Cache.Enabled {
		return
	}
	if cfg.Cache.Type != "redis" {
		clog.Warn().
			Str("cache", cfg.Cache.Type).
			Dur("max_delay", authz.LocalCacheTTL).
			Msg("Running servers keep cached permission sets until they expire")
		return
	}

	c, err := newCache(cfg)
	if err != nil {
		clog.Warn().Err(err).Msg("Cached permission sets not invalidated")
		return
	}
	defer c.Close()

	a := authz.NewAuthorizer(users, c, cfg.Cache.PermissionTTL)
	if userID != nil {
		err = a.Invalidate(ctx, *userID)
	} else {
		err = a.InvalidateAll(ctx)
	}
	if err != nil {
		clog.Warn().Err(err).Msg("Failed to invalidate cached permission sets")
	}
}
