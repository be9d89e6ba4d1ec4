package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/afrikanet/satellite-console/internal/lib/jwt"
	"github.com/afrikanet/satellite-console/internal/lib/password"
	"github.com/afrikanet/satellite-console/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UsersMock) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := password.GetHash("admin123")
	require.NoError(t, err)
	return &models.User{
		UUID:         "a3c8e9aa-0000-0000-0000-000000000001",
		Username:     "admin",
		Email:        "admin@afrikanet.com",
		FullName:     "Administrateur",
		PasswordHash: hash,
		Role:         "admin",
	}
}

func TestLogin_Success(t *testing.T) {
	users := new(UsersMock)
	user := adminUser(t)
	users.On("GetUserByUsername", mock.Anything, "admin").Return(user, nil)

	maker := jwt.NewJWTMaker("test_secret", time.Hour)
	svc := New(users, maker, discardLogger())

	token, got, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user, got)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(UsersMock)
	users.On("GetUserByUsername", mock.Anything, "admin").Return(adminUser(t), nil)

	svc := New(users, jwt.NewJWTMaker("test_secret", time.Hour), discardLogger())

	_, _, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(UsersMock)
	users.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, errors.New("no rows"))

	svc := New(users, jwt.NewJWTMaker("test_secret", time.Hour), discardLogger())

	_, _, err := svc.Login(context.Background(), "ghost", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken(t *testing.T) {
	users := new(UsersMock)
	user := adminUser(t)
	users.On("GetUserByUsername", mock.Anything, "admin").Return(user, nil)

	maker := jwt.NewJWTMaker("test_secret", time.Hour)
	svc := New(users, maker, discardLogger())

	token, err := maker.GenerateToken("admin", "admin", user.UUID)
	require.NoError(t, err)

	got, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestVerifyToken_Expired(t *testing.T) {
	users := new(UsersMock)
	expired := jwt.NewJWTMaker("test_secret", -time.Minute)
	svc := New(users, jwt.NewJWTMaker("test_secret", time.Hour), discardLogger())

	token, err := expired.GenerateToken("admin", "admin", "uid")
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), token)
	assert.Error(t, err)
	users.AssertNotCalled(t, "GetUserByUsername")
}

func TestEnsureDefaultAdmin_SeedsWhenEmpty(t *testing.T) {
	users := new(UsersMock)
	users.On("CountUsers", mock.Anything).Return(0, nil)
	users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "admin" && u.Role == "admin" &&
			password.CompareHash(u.PasswordHash, "admin123") == nil
	})).Return("uid", nil)

	svc := New(users, jwt.NewJWTMaker("test_secret", time.Hour), discardLogger())

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	users.AssertExpectations(t)
}

func TestEnsureDefaultAdmin_SkipsWhenUsersExist(t *testing.T) {
	users := new(UsersMock)
	users.On("CountUsers", mock.Anything).Return(3, nil)

	svc := New(users, jwt.NewJWTMaker("test_secret", time.Hour), discardLogger())

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	users.AssertNotCalled(t, "RegisterUser")
}
