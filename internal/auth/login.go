package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/bike-catalog-admin/internal/repository"
)

// TokenTypeBearer is the only token type this service hands out.
const TokenTypeBearer = "bearer"

// Token is the result of a successful login.
type Token struct {
	AccessToken string
	TokenType   string
}

// Authenticator checks admin credentials and issues access tokens.
type Authenticator struct {
	Admins AdminFinder
	Hasher Hasher
	Tokens *TokenService

	// dummyHash is compared against when the username is unknown so that
	// both failure paths run one bcrypt comparison.
	dummyHash string
}

// NewAuthenticator builds an Authenticator. It hashes a throwaway password
// once at the hasher's cost for use on the unknown-username path.
func NewAuthenticator(admins AdminFinder, hasher Hasher, tokens *TokenService) (*Authenticator, error) {
	dummy, err := hasher.Hash("unknown-admin-placeholder")
	if err != nil {
		return nil, err
	}
	return &Authenticator{Admins: admins, Hasher: hasher, Tokens: tokens, dummyHash: dummy}, nil
}

// Login returns a bearer token whose subject is username when password
// matches the stored hash. Unknown usernames and wrong passwords both yield
// ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, username, password string) (Token, error) {
	admin, err := a.Admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			a.Hasher.Verify(password, a.dummyHash)
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, fmt.Errorf("load admin: %w", err)
	}
	if !a.Hasher.Verify(password, admin.PasswordHash) {
		return Token{}, ErrInvalidCredentials
	}
	access, err := a.Tokens.Issue(admin.Username)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: access, TokenType: TokenTypeBearer}, nil
}
