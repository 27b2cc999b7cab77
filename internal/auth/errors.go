// Package auth holds the admin authentication core: password hashing, signed
// bearer tokens, the gate that resolves a request's Authorization header into
// an admin identity, and the login flow. It imports no HTTP framework; the
// middleware and handler packages translate its errors into responses.
package auth

import "errors"

// ErrInvalidCredentials is returned by Login for an unknown username or a
// wrong password. Both cases share this value so callers cannot tell them
// apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated is returned by the gate when the request carries no
// bearer token at all.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrInvalidToken covers every way a presented token can be rejected:
// malformed, mis-signed, expired, missing a subject, or naming an admin that
// no longer exists. Causes are wrapped around it for logging but callers
// should only ever test with errors.Is.
var ErrInvalidToken = errors.New("invalid token")
