// Package identity resolves bearer tokens to user IDs at the serve boundary.
package identity

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrUnauthorized is returned when a token is missing or unknown.
var ErrUnauthorized = eris.New("identity: unauthorized")

// Verifier resolves a bearer token to a stable user ID.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// StaticVerifier maps pre-shared tokens to user IDs from configuration.
type StaticVerifier struct {
	tokens map[string]string
}

// NewStaticVerifier builds a verifier over a token -> userID map. The map is
// copied so later mutation of the argument has no effect.
func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	m := make(map[string]string, len(tokens))
	for tok, uid := range tokens {
		m[tok] = uid
	}
	return &StaticVerifier{tokens: m}
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	uid, ok := v.tokens[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return uid, nil
}
