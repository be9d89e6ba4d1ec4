// Package jwt implements generation and parsing of the bearer tokens issued
// to console operators.
//
// Maker defines the interface for producing and verifying tokens carrying
// the username, role and user id. MakerImpl is the HS256 implementation
// backed by a secret key and a token TTL.
package jwt

import (
	"time"
)

// Maker describes generation and parsing of bearer tokens.
type Maker interface {
	// GenerateToken issues a signed token for the given identity.
	GenerateToken(username, role, userUID string) (string, error)
	// ParseToken verifies a token and returns its claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker with an HS256 secret key and a token TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker creates a MakerImpl from a secret key and a TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
