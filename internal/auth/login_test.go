package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
)

func newLoginFixture(t *testing.T) (*Authenticator, *fakeAdmins) {
	t.Helper()
	hasher := NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret")
	require.NoError(t, err)

	admins := &fakeAdmins{byName: map[string]*model.AdminUser{
		"admin": {ID: 7, Username: "admin", PasswordHash: hash},
	}}
	a, err := NewAuthenticator(admins, hasher, newTestTokens(t))
	require.NoError(t, err)
	return a, admins
}

func TestAuthenticator_Login(t *testing.T) {
	a, _ := newLoginFixture(t)

	tok, err := a.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, TokenTypeBearer, tok.TokenType)

	sub, err := a.Tokens.Verify(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
}

func TestAuthenticator_BadCredentials(t *testing.T) {
	a, _ := newLoginFixture(t)

	cases := map[string][2]string{
		"wrong password":   {"admin", "nope"},
		"unknown username": {"nobody", "secret"},
		"username case":    {"Admin", "secret"},
		"password case":    {"admin", "Secret"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			tok, err := a.Login(context.Background(), c[0], c[1])
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, tok.AccessToken)
		})
	}
}

func TestAuthenticator_LookupFailure(t *testing.T) {
	a, admins := newLoginFixture(t)
	admins.err = errors.New("db down")

	_, err := a.Login(context.Background(), "admin", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
