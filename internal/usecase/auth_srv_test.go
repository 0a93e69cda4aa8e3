package usecase

import (
	"context"
	"testing"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (AuthService, *fakeStore) {
	repo, store := newFakeRepository()
	return NewAuthService(repo, testLogger()), store
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _ := newAuthService()

	account, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "sekrit42",
		ConfirmPassword: "sekrit42",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.NotEmpty(t, account.Token)

	// Login returns the token minted at registration, not a new one.
	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "sekrit42",
	})
	require.NoError(t, err)
	assert.Equal(t, account.Token, login.Token)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "sekrit42",
		ConfirmPassword: "sekrit43",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Password and Confirm Password fields must be the same!", err.Error())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "sekrit42",
		ConfirmPassword: "sekrit42",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Username:        "alice2",
		Email:           "alice@example.com",
		Password:        "sekrit42",
		ConfirmPassword: "sekrit42",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Email already exists!", err.Error())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "sekrit42",
		ConfirmPassword: "sekrit42",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Username:        "alice",
		Email:           "other@example.com",
		Password:        "sekrit42",
		ConfirmPassword: "sekrit42",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "A user with that username already exists.", err.Error())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "sekrit42",
		ConfirmPassword: "sekrit42",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "nobody",
		Password: "sekrit42",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newAuthService()

	account, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "sekrit42",
		ConfirmPassword: "sekrit42",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), account.Token))

	// A revoked token cannot be revoked again.
	err = svc.Logout(context.Background(), account.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Logging back in issues a fresh token.
	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "sekrit42",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.NotEqual(t, account.Token, login.Token)
}
