package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ssrlogistics/backend/internal/domain/identity"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	roles := []string{"admin", "accounts", "custom", "sales", "viewer", "new_user"}

	t.Run("drops unknown fields and hashes password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		repo.On("ListRoles", ctx).Return(roles, nil)
		repo.On("UpdateFields", ctx, int64(5), mock.MatchedBy(func(fields map[string]any) bool {
			if _, leaked := fields["user_id"]; leaked {
				return false
			}
			if fields["role"] != "sales" {
				return false
			}
			hash, ok := fields["password"].(string)
			if !ok {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password-123")) == nil
		})).Return(nil)

		err := svc.Update(ctx, 5, map[string]any{
			"role":     "sales",
			"password": "new-password-123",
			"user_id":  99,
			"garbage":  "x",
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("blank password is ignored", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		repo.On("UpdateFields", ctx, int64(5), mock.MatchedBy(func(fields map[string]any) bool {
			_, hasPassword := fields["password"]
			return !hasPassword && fields["is_active"] == false
		})).Return(nil)

		err := svc.Update(ctx, 5, map[string]any{
			"password":  "",
			"is_active": false,
		})

		require.NoError(t, err)
	})

	t.Run("role outside enum is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		repo.On("ListRoles", ctx).Return(roles, nil)

		err := svc.Update(ctx, 5, map[string]any{"role": "root"})

		assert.Equal(t, "INVALID_ROLE", domainCode(t, err))
	})

	t.Run("nothing valid to update", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		err := svc.Update(ctx, 5, map[string]any{"unknown": 1, "password": ""})

		assert.Equal(t, shared.ErrNoValidFields, err)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zap.NewNop())

	user := newActiveUser(t, "irrelevant-pass")
	repo.On("FindAll", ctx).Return([]identity.User{*user}, nil)

	responses, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "ops@example.com", responses[0].Email)
}
