package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"jewelry_store/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create_DuplicatePhone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user := &model.User{Phone: "+93701234567", PasswordHash: "hash", Role: model.RoleStaff, CreatedAt: time.Now()}
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.Phone, user.PasswordHash, user.Role, user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err = NewUserRepository(mock).Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Find(t *testing.T) {
	created := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	columns := []string{"id", "phone", "password_hash", "role", "created_at"}

	tests := []struct {
		name    string
		pattern string
		find    func(UserRepository) (*model.User, error)
		rows    *pgxmock.Rows
		err     error
		wantID  int
		wantErr bool
	}{
		{
			name:    "by phone",
			pattern: `FROM users WHERE phone = \$1`,
			find: func(r UserRepository) (*model.User, error) {
				return r.FindByPhone(context.Background(), "+93701234567")
			},
			rows:   pgxmock.NewRows(columns).AddRow(4, "+93701234567", "hash", model.RoleAdmin, created),
			wantID: 4,
		},
		{
			name:    "by id",
			pattern: `FROM users WHERE id = \$1`,
			find: func(r UserRepository) (*model.User, error) {
				return r.FindByID(context.Background(), 4)
			},
			rows:   pgxmock.NewRows(columns).AddRow(4, "+93701234567", "hash", model.RoleAdmin, created),
			wantID: 4,
		},
		{
			name:    "missing account",
			pattern: `FROM users WHERE id = \$1`,
			find: func(r UserRepository) (*model.User, error) {
				return r.FindByID(context.Background(), 9)
			},
			rows: pgxmock.NewRows(columns),
		},
		{
			name:    "database error",
			pattern: `FROM users WHERE phone = \$1`,
			find: func(r UserRepository) (*model.User, error) {
				return r.FindByPhone(context.Background(), "+93701234567")
			},
			err:     errors.New("conn closed"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			q := mock.ExpectQuery(tt.pattern).WithArgs(pgxmock.AnyArg())
			if tt.err != nil {
				q.WillReturnError(tt.err)
			} else {
				q.WillReturnRows(tt.rows)
			}

			user, err := tt.find(NewUserRepository(mock))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantID == 0 {
				assert.Nil(t, user)
				return
			}
			require.NotNil(t, user)
			assert.Equal(t, tt.wantID, user.ID)
			assert.Equal(t, model.RoleAdmin, user.Role)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
