package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
	"github.com/iliyamo/bike-catalog-admin/internal/repository"
)

// AdminFinder is the persistence lookup the gate and login depend on. It
// must return repository.ErrAdminNotFound when no admin has the username.
type AdminFinder interface {
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)
}

// Gate resolves an Authorization header into the admin it authenticates.
type Gate struct {
	Tokens *TokenService
	Admins AdminFinder
}

// NewGate wires a Gate from its collaborators.
func NewGate(tokens *TokenService, admins AdminFinder) *Gate {
	return &Gate{Tokens: tokens, Admins: admins}
}

// Authenticate verifies the bearer token in header and loads its admin.
// It returns ErrUnauthenticated when no bearer token is present and an error
// wrapping ErrInvalidToken when the token is rejected or its subject no
// longer exists. Other errors come from the persistence lookup.
func (g *Gate) Authenticate(ctx context.Context, header string) (*model.AdminUser, error) {
	raw, ok := BearerToken(header)
	if !ok {
		return nil, ErrUnauthenticated
	}
	username, err := g.Tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	admin, err := g.Admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
		}
		return nil, fmt.Errorf("load admin: %w", err)
	}
	return admin, nil
}

// BearerToken extracts the credential from an Authorization header value of
// the form "Bearer <token>". The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
