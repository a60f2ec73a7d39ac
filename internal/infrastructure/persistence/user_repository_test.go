package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// newMockDB creates a gorm DB backed by sqlmock with the MySQL dialector
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		rows := sqlmock.NewRows([]string{"user_id", "user_name", "email", "password", "role", "is_active"}).
			AddRow(1, "ops", "ops@example.com", "$2a$12$hash", "accounts", true)

		mock.ExpectQuery("SELECT \\* FROM `Users` WHERE email = \\?.*LIMIT.*").
			WithArgs("ops@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "OPS@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.UserID)
		assert.Equal(t, "accounts", user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing user to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		mock.ExpectQuery("SELECT \\* FROM `Users` WHERE email = \\?.*LIMIT.*").
			WithArgs("nobody@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_UpdateFields(t *testing.T) {
	t.Run("rejects empty field map", func(t *testing.T) {
		db, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		err := repo.UpdateFields(context.Background(), 1, map[string]any{})

		assert.ErrorIs(t, err, shared.ErrNoValidFields)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		mock.ExpectExec("UPDATE `Users` SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `Users`").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.UpdateFields(context.Background(), 99, map[string]any{"role": "sales"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_Delete(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormUserRepository(db)

	mock.ExpectExec("DELETE FROM `Users` WHERE user_id = \\?").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 3)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseEnumColumn(t *testing.T) {
	tests := []struct {
		name       string
		columnType string
		want       []string
		wantErr    bool
	}{
		{
			name:       "standard role enum",
			columnType: "enum('admin','accounts','custom','sales','viewer','new_user')",
			want:       []string{"admin", "accounts", "custom", "sales", "viewer", "new_user"},
		},
		{
			name:       "single member",
			columnType: "enum('admin')",
			want:       []string{"admin"},
		},
		{
			name:       "escaped quote inside member",
			columnType: "enum('it''s','other')",
			want:       []string{"it's", "other"},
		},
		{
			name:       "not an enum",
			columnType: "varchar(255)",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEnumColumn(tt.columnType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
