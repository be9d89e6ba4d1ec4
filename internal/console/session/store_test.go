package session

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/afrikanet/satellite-console/internal/console/api"
	"github.com/afrikanet/satellite-console/internal/models"
)

type ClientMock struct{ mock.Mock }

func (m *ClientMock) Get(ctx context.Context, path string, out any) error {
	args := m.Called(ctx, path, out)
	if args.Error(0) == nil {
		*(out.(*models.User)) = models.User{Username: "admin", Role: "admin"}
	}
	return args.Error(0)
}

func (m *ClientMock) Post(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body, out)
	if args.Error(0) == nil {
		*(out.(*loginResponse)) = loginResponse{
			AccessToken: "tok-1",
			TokenType:   "bearer",
			User:        &models.User{Username: "admin", Role: "admin"},
		}
	}
	return args.Error(0)
}

func newStore(t *testing.T, client Client) (*Store, *Keeper, *Vault) {
	t.Helper()
	keeper := &Keeper{}
	vault, err := NewVault(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(keeper, vault, client, log), keeper, vault
}

func TestLogin_Success(t *testing.T) {
	client := new(ClientMock)
	client.On("Post", mock.Anything, "/login", loginRequest{Username: "admin", Password: "admin123"}, mock.Anything).
		Return(nil)

	store, keeper, vault := newStore(t, client)
	result := store.Login(context.Background(), "admin", "admin123")

	assert.True(t, result.Success)
	assert.Equal(t, "tok-1", keeper.Token())
	assert.True(t, store.Authenticated())
	assert.Equal(t, "admin", store.User().Username)

	persisted, err := vault.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", persisted)
}

func TestLogin_BadCredentials(t *testing.T) {
	client := new(ClientMock)
	client.On("Post", mock.Anything, "/login", mock.Anything, mock.Anything).
		Return(&api.AuthError{StatusCode: 401, Detail: "incorrect username or password"})

	store, keeper, vault := newStore(t, client)
	result := store.Login(context.Background(), "admin", "wrong")

	assert.False(t, result.Success)
	assert.Equal(t, "incorrect username or password", result.Error)
	assert.Empty(t, keeper.Token())
	assert.False(t, store.Authenticated())

	persisted, err := vault.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestLogin_ServerUnreachable(t *testing.T) {
	client := new(ClientMock)
	client.On("Post", mock.Anything, "/login", mock.Anything, mock.Anything).
		Return(&api.RequestError{Err: os.ErrDeadlineExceeded})

	store, _, _ := newStore(t, client)
	result := store.Login(context.Background(), "admin", "admin123")

	assert.False(t, result.Success)
	assert.Equal(t, "could not reach the server", result.Error)
}

func TestRestore_AcceptedToken(t *testing.T) {
	client := new(ClientMock)
	client.On("Get", mock.Anything, "/me", mock.Anything).Return(nil)

	store, keeper, vault := newStore(t, client)
	require.NoError(t, vault.Save("persisted-tok"))

	assert.True(t, store.Restore(context.Background()))
	assert.Equal(t, "persisted-tok", keeper.Token())
	assert.Equal(t, "admin", store.User().Username)
}

func TestRestore_RejectedTokenTearsDownSilently(t *testing.T) {
	client := new(ClientMock)
	client.On("Get", mock.Anything, "/me", mock.Anything).
		Return(&api.AuthError{StatusCode: 401, Detail: "invalid or expired token"})

	store, keeper, vault := newStore(t, client)
	require.NoError(t, vault.Save("stale-tok"))

	assert.False(t, store.Restore(context.Background()))
	assert.Empty(t, keeper.Token())
	assert.False(t, store.Authenticated())

	// The durable copy is gone too.
	persisted, err := vault.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestRestore_NoPersistedToken(t *testing.T) {
	client := new(ClientMock)
	store, _, _ := newStore(t, client)

	assert.False(t, store.Restore(context.Background()))
	client.AssertNotCalled(t, "Get")
}

func TestLogout_Idempotent(t *testing.T) {
	client := new(ClientMock)
	client.On("Post", mock.Anything, "/login", mock.Anything, mock.Anything).Return(nil)

	store, keeper, vault := newStore(t, client)
	require.True(t, store.Login(context.Background(), "admin", "admin123").Success)

	store.Logout()
	store.Logout()

	assert.Empty(t, keeper.Token())
	assert.Nil(t, store.User())
	persisted, err := vault.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}
