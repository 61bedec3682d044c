package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RBACRepository stores permissions, groups and users.
type RBACRepository struct {
	db *gorm.DB
}

// NewRBACRepository creates a new RBAC repository
func NewRBACRepository(db *gorm.DB) *RBACRepository {
	return &RBACRepository{db: db}
}

// SeedPermissions inserts any catalogue entries that are missing.
func (r *RBACRepository) SeedPermissions(ctx context.Context, perms []models.Permission) error {
	if len(perms) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "codename"}}, DoNothing: true}).
		Create(&perms).Error
	if err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}
	return nil
}

// PermissionsByCodename loads the permissions whose codenames are listed.
// Unknown codenames are absent from the result.
func (r *RBACRepository) PermissionsByCodename(ctx context.Context, codenames []string) (map[string]models.Permission, error) {
	out := make(map[string]models.Permission, len(codenames))
	if len(codenames) == 0 {
		return out, nil
	}
	var perms []models.Permission
	if err := r.db.WithContext(ctx).Where("codename IN ?", codenames).Find(&perms).Error; err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}
	for _, p := range perms {
		out[p.Codename] = p
	}
	return out, nil
}

// EnsureGroup returns the group called name, creating it if absent. The
// boolean reports whether it was created.
func (r *RBACRepository) EnsureGroup(ctx context.Context, name string) (*models.Group, bool, error) {
	var group models.Group
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&group).Error
	if err == nil {
		return &group, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to load group %q: %w", name, err)
	}
	group = models.Group{Name: name}
	if err := r.db.WithContext(ctx).Create(&group).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create group %q: %w", name, err)
	}
	return &group, true, nil
}

// ReplaceGroupPermissions sets the group's permissions to exactly perms.
func (r *RBACRepository) ReplaceGroupPermissions(ctx context.Context, group *models.Group, perms []models.Permission) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assoc := tx.Model(group).Association("Permissions")
		if len(perms) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(perms)
	})
	if err != nil {
		return fmt.Errorf("failed to replace permissions of group %q: %w", group.Name, err)
	}
	return nil
}

// GetGroup loads a group by name.
func (r *RBACRepository) GetGroup(ctx context.Context, name string) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "group", ID: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

// CreateUser inserts a new user.
func (r *RBACRepository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	return translateError("user", "create", err)
}

// GetUser loads a user by id.
func (r *RBACRepository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername loads a user by username.
func (r *RBACRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// AddUserToGroup adds the user to group. Existing memberships are kept.
func (r *RBACRepository) AddUserToGroup(ctx context.Context, user *models.User, group *models.Group) error {
	if err := r.db.WithContext(ctx).Model(user).Association("Groups").Append(group); err != nil {
		return fmt.Errorf("failed to add user %q to group %q: %w", user.Username, group.Name, err)
	}
	return nil
}

// UserPermissions lists the codenames granted to the user through groups.
func (r *RBACRepository) UserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var codenames []string
	err := r.db.WithContext(ctx).
		Model(&models.Permission{}).
		Distinct("permissions.codename").
		Joins("JOIN group_permissions ON group_permissions.permission_id = permissions.id").
		Joins("JOIN user_groups ON user_groups.group_id = group_permissions.group_id").
		Where("user_groups.user_id = ?", userID).
		Order("permissions.codename").
		Pluck("permissions.codename", &codenames).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user permissions: %w", err)
	}
	return codenames, nil
}
