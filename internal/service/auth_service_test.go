package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"jewelry_store/internal/model"
	"jewelry_store/internal/ratelimit"
	"jewelry_store/internal/repository/mocks"
	"jewelry_store/internal/utils"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, maxAttempts int) (AuthService, *mocks.MockUserRepository) {
	return newAuthServiceWithStore(t, ratelimit.NewMemoryStore(), maxAttempts)
}

func newAuthServiceWithStore(t *testing.T, store ratelimit.Store, maxAttempts int) (AuthService, *mocks.MockUserRepository) {
	repo := mocks.NewMockUserRepository(gomock.NewController(t))
	limiter := ratelimit.New(store, maxAttempts, time.Minute)
	svc := NewAuthService(repo, utils.NewJWTUtil("secret", 1), limiter, AuthOptions{
		InitialAdminPhone: "0700000001",
		PhoneRegion:       "AF",
	})
	return svc, repo
}

func TestAuthService_Register_InitialAdmin(t *testing.T) {
	svc, repo := newAuthService(t, 5)
	repo.EXPECT().FindByPhone(gomock.Any(), "+93700000001").Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *model.User) error {
		u.ID = 1
		return nil
	})

	user, token, err := svc.Register(context.Background(), "+93 70 000 0001", "password123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NotEmpty(t, token)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, repo := newAuthService(t, 5)
	repo.EXPECT().FindByPhone(gomock.Any(), "+93701234567").Return(&model.User{ID: 2}, nil)

	_, _, err := svc.Register(context.Background(), "0701234567", "password123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login_LocksAfterFailures(t *testing.T) {
	svc, repo := newAuthService(t, 2)
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := &model.User{ID: 3, Phone: "+93701234567", PasswordHash: hash, Role: model.RoleStaff}
	repo.EXPECT().FindByPhone(gomock.Any(), "+93701234567").Return(user, nil).Times(2)

	for i := 0; i < 2; i++ {
		_, _, err := svc.Login(context.Background(), "0701234567", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// correct password is refused while the window is full
	_, _, err = svc.Login(context.Background(), "0701234567", "password123")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestAuthService_Login_SuccessResetsAttempts(t *testing.T) {
	svc, repo := newAuthService(t, 2)
	hash, _ := utils.HashPassword("password123")
	user := &model.User{ID: 3, Phone: "+93701234567", PasswordHash: hash, Role: model.RoleStaff}
	repo.EXPECT().FindByPhone(gomock.Any(), "+93701234567").Return(user, nil).Times(4)

	_, _, err := svc.Login(context.Background(), "0701234567", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, token, err := svc.Login(context.Background(), "0701234567", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "0701234567", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), "0701234567", "password123")
	assert.NoError(t, err, "one failure after a reset does not lock")
}

func TestAuthService_CreateUser_RequiresAdmin(t *testing.T) {
	svc, _ := newAuthService(t, 5)
	_, err := svc.CreateUser(context.Background(), model.RoleStaff, "0701234567", "password123", model.RoleStaff)
	assert.ErrorIs(t, err, ErrForbidden)
}

// downStore fails every call, like a Redis store that lost its connection.
type downStore struct{}

var errStoreDown = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func (downStore) Add(context.Context, string, time.Time, time.Duration) (int, error) {
	return 0, errStoreDown
}

func (downStore) Count(context.Context, string, time.Time, time.Duration) (int, error) {
	return 0, errStoreDown
}

func (downStore) Reset(context.Context, string) error { return errStoreDown }

func TestAuthService_Login_LimiterStoreDown(t *testing.T) {
	svc, repo := newAuthServiceWithStore(t, downStore{}, 1)
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := &model.User{ID: 3, Phone: "+93701234567", PasswordHash: hash, Role: model.RoleStaff}
	repo.EXPECT().FindByPhone(gomock.Any(), "+93701234567").Return(user, nil).Times(3)

	_, token, err := svc.Login(context.Background(), "0701234567", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	for i := 0; i < 2; i++ {
		_, _, err = svc.Login(context.Background(), "0701234567", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i+1)
		assert.NotErrorIs(t, err, errStoreDown)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, repo := newAuthService(t, 5)
	repo.EXPECT().FindByID(gomock.Any(), 3).Return(&model.User{ID: 3, Role: model.RoleStaff}, nil)
	repo.EXPECT().FindByID(gomock.Any(), 4).Return(nil, nil)

	user, err := svc.Me(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)

	_, err = svc.Me(context.Background(), 4)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
