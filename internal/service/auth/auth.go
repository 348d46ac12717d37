// Package auth verifies identity tokens for the HTTP surface. The websocket
// pipeline never touches it.
package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Verifier resolves a bearer token to a user id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}
