package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ssrlogistics/backend/internal/domain/booking"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// MockRepository is a mock implementation of booking.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Insert(ctx context.Context, fields map[string]any) (int64, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) FindByJobNo(ctx context.Context, jobNo int64) (*booking.Booking, error) {
	args := m.Called(ctx, jobNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]booking.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockRepository) UpdateFields(ctx context.Context, jobNo int64, fields map[string]any) error {
	args := m.Called(ctx, jobNo, fields)
	return args.Error(0)
}

func (m *MockRepository) NextJobNo(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ booking.Repository = (*MockRepository)(nil)

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("filters payload through allow-list", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("Insert", ctx, map[string]any{
			"shipper": 12,
			"pol":     "INMAA",
			"pod":     "AEJEA",
		}).Return(int64(57), nil)

		resp, err := svc.Create(ctx, map[string]any{
			"shipper": 12,
			"pol":     "INMAA",
			"pod":     "AEJEA",
			"job_no":  999,
			"evil":    "drop me",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(57), resp.JobNo)
		repo.AssertExpectations(t)
	})

	t.Run("payload with nothing valid is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, zap.NewNop())

		_, err := svc.Create(ctx, map[string]any{"job_no": 1, "unknown": true})

		assert.Equal(t, shared.ErrNoValidFields, err)
		repo.AssertNotCalled(t, "Insert")
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("passes surviving fields through", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("UpdateFields", ctx, int64(57), map[string]any{
			"igm_filed": true,
			"igm_no":    "IGM-2204",
		}).Return(nil)

		err := svc.Update(ctx, 57, map[string]any{
			"igm_filed": true,
			"igm_no":    "IGM-2204",
			"job_no":    1,
		})

		require.NoError(t, err)
	})

	t.Run("empty filtered payload is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, zap.NewNop())

		err := svc.Update(ctx, 57, map[string]any{})

		assert.Equal(t, shared.ErrNoValidFields, err)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("writes status field", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("UpdateFields", ctx, int64(57), map[string]any{"status": booking.StatusConfirmed}).Return(nil)

		require.NoError(t, svc.UpdateStatus(ctx, 57, booking.StatusConfirmed))
	})

	t.Run("empty status rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, zap.NewNop())

		err := svc.UpdateStatus(ctx, 57, "")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})
}

func TestService_Init(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("NextJobNo", mock.Anything).Return(int64(101), nil)

	resp, err := svc.Init(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.NextJobNo)
}
