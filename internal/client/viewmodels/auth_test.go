package viewmodels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyventilateur/ovcli/internal/client/api"
	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/client/session"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

func TestAuthLogin_EstablishesSession(t *testing.T) {
	fake := newFakeAPI()
	fake.LoginFn = func(ctx context.Context, email, password string) (*api.AuthResult, error) {
		assert.Equal(t, "fan@example.com", email)
		return &api.AuthResult{
			Token: "tok-abc",
			User:  models.User{ID: "u1", Email: email, Username: "fan", SubscribedTo: []string{}},
		}, nil
	}

	dir := t.TempDir()
	store := session.NewStore(dir, logging.NewDiscardLogger())
	a := NewAuth(fake, store, testLog())

	require.NoError(t, a.Login(context.Background(), "fan@example.com", "secret"))
	require.True(t, a.IsAuthenticated())

	// identity and credential were persisted as one record
	restored := session.NewStore(dir, logging.NewDiscardLogger())
	user, token, ok := restored.Restore()
	require.True(t, ok)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "tok-abc", token)
}

func TestAuthLogin_FailureCarriesServerMessage(t *testing.T) {
	fake := newFakeAPI()
	fake.LoginFn = func(ctx context.Context, email, password string) (*api.AuthResult, error) {
		return nil, &api.Error{Status: 401, Message: "invalid credentials"}
	}

	a := NewAuth(fake, anonymousSession(t), testLog())
	err := a.Login(context.Background(), "fan@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.False(t, a.IsAuthenticated())
}

func TestAuthSignup_EstablishesSession(t *testing.T) {
	fake := newFakeAPI()
	fake.SignupFn = func(ctx context.Context, email, username, password string) (*api.AuthResult, error) {
		return &api.AuthResult{
			Token: "tok-new",
			User:  models.User{ID: "u2", Email: email, Username: username, SubscribedTo: []string{}},
		}, nil
	}

	a := NewAuth(fake, anonymousSession(t), testLog())
	require.NoError(t, a.Signup(context.Background(), "new@example.com", "newbie", "secret"))
	assert.True(t, a.IsAuthenticated())

	user, ok := a.User()
	require.True(t, ok)
	assert.Equal(t, "newbie", user.Username)
}

func TestAuthSignup_DuplicateEmailMessage(t *testing.T) {
	fake := newFakeAPI()
	fake.SignupFn = func(ctx context.Context, email, username, password string) (*api.AuthResult, error) {
		return nil, &api.Error{Status: 409, Message: "email already registered"}
	}

	a := NewAuth(fake, anonymousSession(t), testLog())
	err := a.Signup(context.Background(), "dup@example.com", "dup", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")
	assert.False(t, a.IsAuthenticated())
}

func TestAuthLogout_ClearsSession(t *testing.T) {
	a := NewAuth(newFakeAPI(), authenticatedSession(t), testLog())
	require.True(t, a.IsAuthenticated())

	require.NoError(t, a.Logout())
	assert.False(t, a.IsAuthenticated())
	_, ok := a.User()
	assert.False(t, ok)
}

func TestAuthRestore_NoSession(t *testing.T) {
	a := NewAuth(newFakeAPI(), anonymousSession(t), testLog())
	_, ok := a.Restore()
	assert.False(t, ok)
}
