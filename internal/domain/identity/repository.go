package identity

import "context"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUserName(ctx context.Context, userName string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	// UpdateFields applies a whitelist-filtered record to the user row.
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	// ListRoles returns the valid role set parsed from the Users role
	// column enum definition. The set is external mutable configuration,
	// not a compile-time constant.
	ListRoles(ctx context.Context) ([]string, error)
}
