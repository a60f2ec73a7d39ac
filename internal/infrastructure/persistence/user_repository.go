package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/ssrlogistics/backend/internal/domain/identity"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateEntry(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a user by primary key
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByUserName finds a user by user name
func (r *GormUserRepository) FindByUserName(ctx context.Context, userName string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("user_name = ?", userName).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll returns all users ordered by primary key
func (r *GormUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	var users []identity.User
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateFields applies a partial update to a user
func (r *GormUserRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return shared.ErrNoValidFields
	}
	result := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("user_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		if isDuplicateEntry(result.Error) {
			return shared.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from an update that changed nothing.
		var count int64
		if err := r.db.WithContext(ctx).Model(&identity.User{}).
			Where("user_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
	}
	return nil
}

// UpdatePasswordByEmail replaces a user's password hash
func (r *GormUserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("email = ?", strings.ToLower(email)).
		Update("password", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a user
func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&identity.User{}, "user_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListRoles reads the role enum values from the table definition so the
// assignable roles always match the live schema.
func (r *GormUserRepository) ListRoles(ctx context.Context) ([]string, error) {
	var columnType string
	err := r.db.WithContext(ctx).Raw(
		`SELECT COLUMN_TYPE FROM information_schema.COLUMNS
		 WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = 'Users' AND COLUMN_NAME = 'role'`,
	).Scan(&columnType).Error
	if err != nil {
		return nil, err
	}

	roles, err := parseEnumColumn(columnType)
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// parseEnumColumn extracts the members of a MySQL enum column type,
// e.g. "enum('admin','sales')" yields ["admin", "sales"].
func parseEnumColumn(columnType string) ([]string, error) {
	if !strings.HasPrefix(columnType, "enum(") || !strings.HasSuffix(columnType, ")") {
		return nil, fmt.Errorf("column type %q is not an enum", columnType)
	}
	inner := columnType[len("enum(") : len(columnType)-1]

	var roles []string
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, "'")
		// MySQL doubles embedded quotes inside enum literals.
		part = strings.ReplaceAll(part, "''", "'")
		if part != "" {
			roles = append(roles, part)
		}
	}
	return roles, nil
}

// isDuplicateEntry reports whether err is a MySQL duplicate-key error (1062)
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
