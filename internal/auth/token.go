package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when a TokenService is built with a non-positive TTL.
const DefaultTokenTTL = 30 * time.Minute

// TokenService issues and verifies HMAC-signed JWT access tokens. The secret,
// algorithm and default TTL are fixed at construction; a TokenService is safe
// for concurrent use.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService. alg must name an HMAC method
// (HS256, HS384 or HS512); an empty alg selects HS256.
func NewTokenService(secret, alg string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: empty signing secret")
	}
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("token service: unsupported signing algorithm %q", alg)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// TTL reports the default lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for subject with the default TTL.
func (s *TokenService) Issue(subject any) (string, error) {
	return s.IssueWithTTL(subject, s.ttl)
}

// IssueWithTTL signs a token for subject expiring ttl from now. The subject
// is stored in its string form, so numeric identifiers verify back as their
// decimal text. A negative ttl yields a token that is already expired.
func (s *TokenService) IssueWithTTL(subject any, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprint(subject),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks raw's signature and expiry and returns its subject. Every
// failure wraps ErrInvalidToken; expiry is deliberately not distinguished
// from tampering or malformed input.
func (s *TokenService) Verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
