package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/ssrlogistics/backend/internal/domain/identity"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// UserService handles user administration
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// List returns all users
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}

// Get returns a single user by id
func (s *UserService) Get(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update applies a partial update to a user. Only whitelisted fields
// survive; a submitted password is re-hashed, and a blank password is
// dropped rather than stored.
func (s *UserService) Update(ctx context.Context, id int64, submitted map[string]any) error {
	fields := identity.AllowedUpdateFields.Filter(submitted)

	if raw, ok := fields["password"]; ok {
		password, _ := raw.(string)
		if password == "" {
			delete(fields, "password")
		} else {
			if err := identity.ValidatePassword(password); err != nil {
				return err
			}
			hash, err := identity.HashPassword(password)
			if err != nil {
				return err
			}
			fields["password"] = hash
		}
	}

	if raw, ok := fields["role"]; ok {
		role, _ := raw.(string)
		validRoles, err := s.userRepo.ListRoles(ctx)
		if err != nil {
			return err
		}
		if !roleAllowed(role, validRoles) {
			return shared.NewDomainError("INVALID_ROLE", "Role is not one of the assignable roles")
		}
	}

	if len(fields) == 0 {
		return shared.ErrNoValidFields
	}

	if err := s.userRepo.UpdateFields(ctx, id, fields); err != nil {
		return err
	}

	s.logger.Info("user updated", zap.Int64("user_id", id))
	return nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

// Roles returns the assignable role set from the live schema
func (s *UserService) Roles(ctx context.Context) ([]string, error) {
	return s.userRepo.ListRoles(ctx)
}

func roleAllowed(role string, validRoles []string) bool {
	for _, r := range validRoles {
		if r == role {
			return true
		}
	}
	return false
}
